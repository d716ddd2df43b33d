package service

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL is returned when the provided URL is empty, malformed
	// or uses a disallowed scheme.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidShortCode is returned when a short code is not exactly
	// 6 alphanumeric characters.
	ErrInvalidShortCode = errors.New("invalid short code")
)

var (
	shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

	// Shape check applied on top of structural parsing: dotted domain
	// labels, localhost or a dotted-quad host, optional port, optional
	// path or query.
	urlPattern = regexp.MustCompile(`(?i)^https?://` +
		`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?` +
		`|localhost` +
		`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)
)

// NormalizeURL turns user input into a canonical absolute URL. Input
// without a scheme gets an https:// prefix. The result must survive both
// a structural parse and the URL shape pattern; either failing returns
// ErrInvalidURL.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrInvalidURL
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if u.Host == "" {
		return "", ErrInvalidURL
	}

	if !urlPattern.MatchString(rawURL) {
		return "", ErrInvalidURL
	}

	return rawURL, nil
}

// IsValidShortCode reports whether s is exactly 6 alphanumeric characters.
func IsValidShortCode(s string) bool {
	return shortCodePattern.MatchString(s)
}
