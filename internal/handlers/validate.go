package handlers

import (
	"time"
	"unicode/utf8"

	"github.com/avilov/bookshelf/internal/repo"
)

const (
	maxTitleLen  = 200
	maxAuthorLen = 100

	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 100
)

// validateBookFields checks title/author/published_date against the field
// rules. On create all three are required; on a partial update only the
// supplied (non-empty) fields are checked, so an empty field means "keep the
// stored value". Returns an empty string when everything passes.
func validateBookFields(title, author, publishedDate string, partial bool) string {
	if !partial && (title == "" || author == "" || publishedDate == "") {
		return "Title, author, and published_date are required"
	}

	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title exceeds maximum length"
	}

	if utf8.RuneCountInString(author) > maxAuthorLen {
		return "Author exceeds maximum length"
	}

	if publishedDate != "" {
		if _, err := time.Parse(repo.DateLayout, publishedDate); err != nil {
			return "Invalid date format. Use YYYY-MM-DD"
		}
	}

	return ""
}

// validateCredentials checks the registration bounds for username and
// password. Returns an empty string when everything passes.
func validateCredentials(username, password string) string {
	if username == "" || password == "" {
		return "Username and password are required"
	}

	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return "Username must be between 3 and 50 characters"
	}

	if n := utf8.RuneCountInString(password); n < minPasswordLen || n > maxPasswordLen {
		return "Password must be between 6 and 100 characters"
	}

	return ""
}
