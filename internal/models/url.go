package models

import "time"

// URL represents a shortened URL and its associated metadata.
type URL struct {
	// ShortCode is the 6-character alphanumeric code associated with the original URL.
	ShortCode string
	// OriginalURL is the normalized, full-length URL that the short code points to.
	OriginalURL string
	// Clicks tracks the number of times the shortened URL has been resolved.
	Clicks int64
	// CreatedAt is the timestamp indicating when the shortened URL was created.
	CreatedAt time.Time
}
