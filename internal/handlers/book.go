package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avilov/bookshelf/internal/metrics"
	"github.com/avilov/bookshelf/internal/middleware"
	"github.com/avilov/bookshelf/internal/models"
	"github.com/avilov/bookshelf/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// BookHandler
// ==========================
type BookHandler struct {
	Repo  *repo.BookRepo
	Audit *repo.AuditRepo
}

// ==========================
// List Books (public; owner ids are not exposed here)
// ==========================
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list books", "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	out := make([]models.BookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, b.Summary())
	}

	JSON(w, out, http.StatusOK)
}

// ==========================
// Get Book (public)
// ==========================
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.loadBook(w, r)
	if !ok {
		return
	}

	JSON(w, book, http.StatusOK)
}

// ==========================
// Create Book
// ==========================
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.PostFormValue("user_id")
	if userIDStr == "" {
		JSONMessage(w, "user_id is required", http.StatusBadRequest)
		return
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		JSONMessage(w, "user_id must be an integer", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	author := r.PostFormValue("author")
	publishedDate := r.PostFormValue("published_date")

	if msg := validateBookFields(title, author, publishedDate, false); msg != "" {
		JSONMessage(w, msg, http.StatusBadRequest)
		return
	}

	book, err := h.Repo.Create(r.Context(), title, author, publishedDate, userID)
	if err != nil {
		if repo.IsForeignKeyViolation(err) {
			JSONMessage(w, "User does not exist", http.StatusBadRequest)
			return
		}
		slog.Error("create book", "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncBooksMutated("create")
	h.audit(r, "create", book.ID, fmt.Sprintf("title=%q", book.Title))

	JSONMessage(w, "Book added successfully", http.StatusCreated)
}

// ==========================
// Update Book (owner only; empty fields keep their stored values)
// ==========================
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.loadBook(w, r)
	if !ok {
		return
	}
	if !h.requireOwner(w, r, book) {
		return
	}

	title := r.PostFormValue("title")
	author := r.PostFormValue("author")
	publishedDate := r.PostFormValue("published_date")

	if msg := validateBookFields(title, author, publishedDate, true); msg != "" {
		JSONMessage(w, msg, http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.Update(r.Context(), book.ID, title, author, publishedDate); err != nil {
		slog.Error("update book", "id", book.ID, "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncBooksMutated("update")
	h.audit(r, "update", book.ID, "")

	JSONMessage(w, "Book updated successfully", http.StatusOK)
}

// ==========================
// Delete Book (owner only)
// ==========================
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.loadBook(w, r)
	if !ok {
		return
	}
	if !h.requireOwner(w, r, book) {
		return
	}

	if err := h.Repo.Delete(r.Context(), book.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("delete book", "id", book.ID, "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncBooksMutated("delete")
	h.audit(r, "delete", book.ID, fmt.Sprintf("title=%q", book.Title))

	JSONMessage(w, "Book deleted successfully", http.StatusOK)
}

// loadBook resolves the {id} route param. A non-integer id looks the same as
// a missing book to the caller, so both cases answer 404.
func (h *BookHandler) loadBook(w http.ResponseWriter, r *http.Request) (*models.Book, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONMessage(w, "Book not found", http.StatusNotFound)
		return nil, false
	}

	book, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONMessage(w, "Book not found", http.StatusNotFound)
			return nil, false
		}
		slog.Error("get book", "id", id, "error", err)
		JSONMessage(w, ErrMessageInternal, http.StatusInternalServerError)
		return nil, false
	}

	return book, true
}

// requireOwner rejects mutations by anyone other than the book's creator.
func (h *BookHandler) requireOwner(w http.ResponseWriter, r *http.Request, book *models.Book) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		JSONMessage(w, "Invalid or expired token", http.StatusUnauthorized)
		return false
	}
	if claims.UserID != book.UserID {
		JSONMessage(w, "You can't update this book yourself", http.StatusForbidden)
		return false
	}
	return true
}

func (h *BookHandler) audit(r *http.Request, action string, bookID int, details string) {
	if h.Audit == nil {
		return
	}
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		if err := h.Audit.Log(r.Context(), claims.UserID, action, "book", bookID, details); err != nil {
			slog.Warn("audit log", "action", action, "book_id", bookID, "error", err)
		}
	}
}
