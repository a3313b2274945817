package handlers

import (
	"strings"
	"testing"
)

func TestValidateBookFields_Create(t *testing.T) {
	tests := []struct {
		name                string
		title, author, date string
		want                string
	}{
		{"valid", "Dune", "Herbert", "1965-06-01", ""},
		{"missing title", "", "Herbert", "1965-06-01", "Title, author, and published_date are required"},
		{"missing date", "Dune", "Herbert", "", "Title, author, and published_date are required"},
		{"title too long", strings.Repeat("x", 201), "Herbert", "1965-06-01", "Title exceeds maximum length"},
		{"author too long", "Dune", strings.Repeat("x", 101), "1965-06-01", "Author exceeds maximum length"},
		{"bad date", "Dune", "Herbert", "June 1965", "Invalid date format. Use YYYY-MM-DD"},
		{"unpadded date", "Dune", "Herbert", "1965-6-1", "Invalid date format. Use YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateBookFields(tt.title, tt.author, tt.date, false); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateBookFields_PartialUpdate(t *testing.T) {
	// Empty fields are "keep stored value" on update, not errors.
	if got := validateBookFields("New Title", "", "", true); got != "" {
		t.Errorf("partial title-only update should pass, got %q", got)
	}
	if got := validateBookFields("", "", "not-a-date", true); got != "Invalid date format. Use YYYY-MM-DD" {
		t.Errorf("supplied bad date must still fail, got %q", got)
	}
	if got := validateBookFields(strings.Repeat("x", 201), "", "", true); got != "Title exceeds maximum length" {
		t.Errorf("supplied long title must still fail, got %q", got)
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name               string
		username, password string
		want               string
	}{
		{"valid", "alice", "secret1", ""},
		{"missing password", "alice", "", "Username and password are required"},
		{"username too short", "ab", "secret1", "Username must be between 3 and 50 characters"},
		{"username too long", strings.Repeat("x", 51), "secret1", "Username must be between 3 and 50 characters"},
		{"password too short", "alice", "12345", "Password must be between 6 and 100 characters"},
		{"password too long", "alice", strings.Repeat("x", 101), "Password must be between 6 and 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateCredentials(tt.username, tt.password); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
