package handlers

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockDB bundles the mock DB handle with its expectation recorder.
type sqlmockDB struct {
	DB   *sql.DB
	mock sqlmock.Sqlmock
}

func newSqlmockDB(t *testing.T) *sqlmockDB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return &sqlmockDB{DB: db, mock: mock}
}

func (d *sqlmockDB) Close() {
	d.DB.Close()
}

func (d *sqlmockDB) expectationsMet(t *testing.T) {
	t.Helper()
	if err := d.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
