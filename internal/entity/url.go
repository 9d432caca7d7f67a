// Package entity defines the entities and errors used in the application.
// It includes the URL and User structs along with the pagination and token
// types exchanged between the use case and delivery layers.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL cannot be found, or is not owned by the caller.
	ErrURLNotFound = errors.New("url not found")
)

// URL represents a shortened URL.
type URL struct {
	ID          int64      // ID is the internal identifier of the URL in the database.
	ExternalID  string     // ExternalID is the public identifier of the record.
	ShortCode   string     // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string     // OriginalURL is the full URL that the short code resolves to.
	URLStats               // URLStats contains statistics about the URL.
	UserID      *int64     // UserID references the owner; nil for anonymously created URLs.
	CreatedAt   time.Time  // CreatedAt is the timestamp when the URL was created.
	UpdatedAt   time.Time  // UpdatedAt is the timestamp when the URL was last updated.
	DeletedAt   *time.Time // DeletedAt is set once the URL has been soft deleted.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	Clicks int64 // Clicks is the number of times the shortened URL has been followed.
}

// URLPage is a single page of URLs together with the total number of matching records.
type URLPage struct {
	URLs  []*URL
	Total int64
}

// TotalPages returns the number of pages of the given size needed to hold Total records.
func (p *URLPage) TotalPages(limit int) int {
	if limit <= 0 {
		return 0
	}

	return int((p.Total + int64(limit) - 1) / int64(limit))
}
