package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avilov/bookshelf/internal/middleware"
	"github.com/avilov/bookshelf/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

func newBookHandler(db *sqlmockDB) *BookHandler {
	return &BookHandler{Repo: repo.NewBookRepo(db.DB)}
}

// withURLParam attaches a chi route param so handlers can be tested without a router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// asUser attaches authenticated claims for the given user id.
func asUser(req *http.Request, userID int, username string) *http.Request {
	claims := &middleware.Claims{UserID: userID}
	claims.Subject = username
	return req.WithContext(middleware.ContextWithClaims(req.Context(), claims))
}

func bookRow(id int, title, author string, published time.Time, userID int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "author", "published_date", "user_id"}).
		AddRow(id, title, author, published, userID)
}

func TestBookHandler_ListBooks(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	published := time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)
	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book ORDER BY id`).
		WillReturnRows(bookRow(1, "Dune", "Herbert", published, 1))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	h.ListBooks(rr, httptest.NewRequest("GET", "/books", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListBooks status: got %d, want 200", rr.Code)
	}
	var out []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 || out[0]["title"] != "Dune" || out[0]["published_date"] != "1965-06-01" {
		t.Errorf("unexpected response: %+v", out)
	}
	if _, ok := out[0]["user_id"]; ok {
		t.Error("list items must not expose user_id")
	}
	db.expectationsMet(t)
}

func TestBookHandler_GetBook(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	published := time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)
	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(bookRow(1, "Dune", "Herbert", published, 1))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest("GET", "/books/1", nil), "id", "1")
	h.GetBook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GetBook status: got %d, want 200", rr.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["title"] != "Dune" || out["user_id"] != float64(1) {
		t.Errorf("unexpected response: %+v", out)
	}
	db.expectationsMet(t)
}

func TestBookHandler_GetBook_NotFound(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest("GET", "/books/999", nil), "id", "999")
	h.GetBook(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetBook status: got %d, want 404", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Book not found" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_GetBook_NonIntegerID(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest("GET", "/books/abc", nil), "id", "abc")
	h.GetBook(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetBook status: got %d, want 404", rr.Code)
	}
	db.expectationsMet(t)
}

func TestBookHandler_CreateBook(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	db.mock.ExpectQuery(`INSERT INTO book \(title, author, published_date, user_id\)`).
		WithArgs("Dune", "Herbert", "1965-06-01", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(formRequest("POST", "/books", url.Values{
		"title":          {"Dune"},
		"author":         {"Herbert"},
		"published_date": {"1965-06-01"},
		"user_id":        {"1"},
	}), 1, "alice")
	h.CreateBook(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateBook status: got %d, want 201", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Book added successfully" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_CreateBook_MissingUserID(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(formRequest("POST", "/books", url.Values{
		"title":          {"Dune"},
		"author":         {"Herbert"},
		"published_date": {"1965-06-01"},
	}), 1, "alice")
	h.CreateBook(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreateBook status: got %d, want 400", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "user_id is required" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_CreateBook_BadDate(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(formRequest("POST", "/books", url.Values{
		"title":          {"Dune"},
		"author":         {"Herbert"},
		"published_date": {"06/01/1965"},
		"user_id":        {"1"},
	}), 1, "alice")
	h.CreateBook(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreateBook status: got %d, want 400", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Invalid date format. Use YYYY-MM-DD" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_CreateBook_UnknownOwner(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	db.mock.ExpectQuery(`INSERT INTO book \(title, author, published_date, user_id\)`).
		WithArgs("Dune", "Herbert", "1965-06-01", 42).
		WillReturnError(&pq.Error{Code: "23503"})

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(formRequest("POST", "/books", url.Values{
		"title":          {"Dune"},
		"author":         {"Herbert"},
		"published_date": {"1965-06-01"},
		"user_id":        {"42"},
	}), 1, "alice")
	h.CreateBook(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreateBook status: got %d, want 400", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "User does not exist" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_UpdateBook_PartialTitle(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	published := time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)
	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(bookRow(7, "Dune", "Herbert", published, 1))
	db.mock.ExpectQuery(`UPDATE book`).
		WithArgs("Dune Messiah", "", "", 7).
		WillReturnRows(bookRow(7, "Dune Messiah", "Herbert", published, 1))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(withURLParam(formRequest("PUT", "/books/7", url.Values{
		"title": {"Dune Messiah"},
	}), "id", "7"), 1, "alice")
	h.UpdateBook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("UpdateBook status: got %d, want 200", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Book updated successfully" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_UpdateBook_NotOwner(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	published := time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)
	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(bookRow(7, "Dune", "Herbert", published, 1))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(withURLParam(formRequest("PUT", "/books/7", url.Values{
		"title": {"Hijacked"},
	}), "id", "7"), 2, "mallory")
	h.UpdateBook(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("UpdateBook status: got %d, want 403", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "You can't update this book yourself" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_DeleteBook(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	published := time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)
	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(bookRow(7, "Dune", "Herbert", published, 1))
	db.mock.ExpectExec(`DELETE FROM book WHERE id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(withURLParam(httptest.NewRequest("DELETE", "/books/7", nil), "id", "7"), 1, "alice")
	h.DeleteBook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("DeleteBook status: got %d, want 200", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Book deleted successfully" {
		t.Errorf("unexpected message: %q", msg)
	}
	db.expectationsMet(t)
}

func TestBookHandler_DeleteBook_NotFound(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(withURLParam(httptest.NewRequest("DELETE", "/books/999", nil), "id", "999"), 1, "alice")
	h.DeleteBook(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("DeleteBook status: got %d, want 404", rr.Code)
	}
	db.expectationsMet(t)
}

func TestBookHandler_DeleteBook_NotOwner(t *testing.T) {
	db := newSqlmockDB(t)
	defer db.Close()

	published := time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC)
	db.mock.ExpectQuery(`SELECT id, title, author, published_date, user_id FROM book WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(bookRow(7, "Dune", "Herbert", published, 1))

	h := newBookHandler(db)
	rr := httptest.NewRecorder()
	req := asUser(withURLParam(httptest.NewRequest("DELETE", "/books/7", nil), "id", "7"), 2, "mallory")
	h.DeleteBook(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("DeleteBook status: got %d, want 403", rr.Code)
	}
	db.expectationsMet(t)
}
