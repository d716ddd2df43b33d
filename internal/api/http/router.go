package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/ManiacAyu/RetainSure-urlShortner/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
)

// URLService defines the interface for the core URL shortening business logic.
type URLService interface {
	// ShortenURL creates a shortened version of the provided original URL.
	// It returns the stored URL details or an error if the input is invalid
	// or the short code space is exhausted.
	ShortenURL(ctx context.Context, originalURL string) (*models.URL, error)

	// ResolveShortCode retrieves the original URL for a given short code
	// and records the click.
	ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// GetURLStats retrieves the click statistics of the URL associated
	// with the short code without recording a click.
	GetURLStats(ctx context.Context, shortCode string) (*models.URL, error)
}

// getValidate initializes a validator instance for incoming request
// payloads, extracting field names from JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes a new HTTP router with all routes and middleware
// configured. baseURL is used to build the short URL returned on creation.
func NewRouter(logger *httplog.Logger, urlSvc URLService, baseURL string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", handleHealthCheck)
	r.Get("/{shortCode}", handleRedirect(urlSvc))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://*"},
			AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           84600,
		}))

		validate := getValidate()

		r.Get("/health", handleAPIHealth)

		r.With(middleware.AllowContentType("application/json")).
			Post("/shorten", handleShortenURL(urlSvc, validate, baseURL))

		r.Get("/stats/{shortCode}", handleGetURLStats(urlSvc))
	})

	return r
}
