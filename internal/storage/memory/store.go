package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ManiacAyu/RetainSure-urlShortner/internal/models"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/storage"
)

// Store is an in-memory implementation of URL storage. All records live
// in a single map guarded by one RWMutex; the lock is held only for the
// duration of the map operation. Records survive until process exit.
type Store struct {
	mu   sync.RWMutex
	urls map[string]*models.URL
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		urls: make(map[string]*models.URL),
	}
}

// Put stores a new shortened URL with a zero click count.
// It returns storage.ErrShortCodeExists if the short code is already taken.
func (s *Store) Put(ctx context.Context, shortCode, originalURL string) (*models.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.urls[shortCode]; exists {
		return nil, storage.ErrShortCodeExists
	}

	url := &models.URL{
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   time.Now().UTC(),
	}
	s.urls[shortCode] = url

	return copyURL(url), nil
}

// Get retrieves a URL record by its short code.
// It returns storage.ErrURLNotFound if the short code doesn't exist.
func (s *Store) Get(ctx context.Context, shortCode string) (*models.URL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	url, exists := s.urls[shortCode]
	if !exists {
		return nil, storage.ErrURLNotFound
	}

	return copyURL(url), nil
}

// RecordClick increments the click count for an existing short code.
// It returns storage.ErrURLNotFound if the short code doesn't exist.
func (s *Store) RecordClick(ctx context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	url, exists := s.urls[shortCode]
	if !exists {
		return storage.ErrURLNotFound
	}

	url.Clicks++
	return nil
}

// Contains reports whether a short code is already taken. Used by the
// short code generator for collision probing.
func (s *Store) Contains(ctx context.Context, shortCode string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.urls[shortCode]
	return exists, nil
}

// copyURL returns a copy to prevent external modification of stored records.
func copyURL(url *models.URL) *models.URL {
	c := *url
	return &c
}
