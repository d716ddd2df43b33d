package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManiacAyu/RetainSure-urlShortner/internal/models"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/storage"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	shortCodeLength   = 6
	shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrMaxAttemptsExceeded is returned when the maximum number of attempts
// for generating a unique short code is exceeded.
var ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded for generating short code")

// URLStorage defines the interface for working with URLs at the business logic layer.
type URLStorage interface {
	// Put stores a new shortened URL with a zero click count.
	// Returns storage.ErrShortCodeExists if the short code is already taken.
	Put(ctx context.Context, shortCode, originalURL string) (*models.URL, error)

	// Get retrieves a URL by its short code.
	// Returns storage.ErrURLNotFound if the short code doesn't exist.
	Get(ctx context.Context, shortCode string) (*models.URL, error)

	// RecordClick increments the click count for an existing short code.
	// Returns storage.ErrURLNotFound if the short code doesn't exist.
	RecordClick(ctx context.Context, shortCode string) error

	// Contains reports whether a short code is already taken.
	Contains(ctx context.Context, shortCode string) (bool, error)
}

// URLService provides methods to manage URL shortening operations.
type URLService struct {
	storage     URLStorage
	maxAttempts int
}

// NewURLService creates a new URLService backed by the provided storage.
// maxAttempts bounds the collision retries during short code generation.
func NewURLService(storage URLStorage, maxAttempts int) *URLService {
	return &URLService{
		storage:     storage,
		maxAttempts: maxAttempts,
	}
}

// ShortenURL normalizes the provided URL, generates a unique short code
// and stores the mapping. Validation happens before any code is generated
// or stored. It returns ErrMaxAttemptsExceeded when every attempt collided
// with an existing code.
func (s *URLService) ShortenURL(ctx context.Context, rawURL string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"

	originalURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := 0; i < s.maxAttempts; i++ {
		shortCode, err := gonanoid.Generate(shortCodeAlphabet, shortCodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		exists, err := s.storage.Contains(ctx, shortCode)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to probe short code: %w", op, err)
		}
		if exists {
			continue
		}

		url, err := s.storage.Put(ctx, shortCode, originalURL)
		if err != nil {
			// Lost the race between probe and insert; burns an attempt.
			if errors.Is(err, storage.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to store url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxAttemptsExceeded)
}

// ResolveShortCode retrieves the URL associated with the provided short
// code and records the click. The returned model reflects the click count
// after the increment.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	if !IsValidShortCode(shortCode) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidShortCode)
	}

	url, err := s.storage.Get(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	if err := s.storage.RecordClick(ctx, shortCode); err != nil {
		return nil, fmt.Errorf("%s: failed to record click: %w", op, err)
	}
	url.Clicks++

	return url, nil
}

// GetURLStats retrieves the URL associated with the provided short code
// without recording a click.
func (s *URLService) GetURLStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.GetURLStats"

	if !IsValidShortCode(shortCode) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidShortCode)
	}

	url, err := s.storage.Get(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}
