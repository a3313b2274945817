package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/avilov/bookshelf/internal/models"
)

// DateLayout is the wire format for published_date.
const DateLayout = "2006-01-02"

// ==========================
// BookRepo
// ==========================
type BookRepo struct {
	DB *sql.DB
}

func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{DB: db}
}

// List returns every book, ordered by id.
func (r *BookRepo) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, author, published_date, user_id FROM book ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetByID returns the book with that id, or sql.ErrNoRows when absent.
func (r *BookRepo) GetByID(ctx context.Context, id int) (*models.Book, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, title, author, published_date, user_id FROM book WHERE id = $1`, id)

	b, err := scanBook(row)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a book. The id comes from the table's sequence, so
// concurrent creates never collide.
func (r *BookRepo) Create(ctx context.Context, title, author, publishedDate string, userID int) (*models.Book, error) {
	book := &models.Book{
		Title:         title,
		Author:        author,
		PublishedDate: publishedDate,
		UserID:        userID,
	}

	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO book (title, author, published_date, user_id)
		 VALUES ($1, $2, $3::date, $4)
		 RETURNING id`,
		title, author, publishedDate, userID,
	).Scan(&book.ID)

	if err != nil {
		return nil, err
	}

	return book, nil
}

// Update overwrites only the supplied non-empty fields in a single statement;
// empty strings leave the stored values untouched. The owner never changes.
func (r *BookRepo) Update(ctx context.Context, id int, title, author, publishedDate string) (*models.Book, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE book
		 SET title = COALESCE(NULLIF($1, ''), title),
		     author = COALESCE(NULLIF($2, ''), author),
		     published_date = COALESCE(NULLIF($3, '')::date, published_date)
		 WHERE id = $4
		 RETURNING id, title, author, published_date, user_id`,
		title, author, publishedDate, id,
	)

	b, err := scanBook(row)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes the book. sql.ErrNoRows when nothing matched.
func (r *BookRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM book WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var b models.Book
	var published time.Time
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &published, &b.UserID); err != nil {
		return models.Book{}, err
	}
	b.PublishedDate = published.Format(DateLayout)
	return b, nil
}
