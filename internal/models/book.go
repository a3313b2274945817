package models

// Book is a catalog record. PublishedDate is always rendered as YYYY-MM-DD.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
	UserID        int    `json:"user_id"`
}

// BookSummary is the list-view shape: the owner id is only exposed on the
// single-book endpoint.
type BookSummary struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
}

// Summary strips the owner id for list responses.
func (b Book) Summary() BookSummary {
	return BookSummary{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: b.PublishedDate,
	}
}
