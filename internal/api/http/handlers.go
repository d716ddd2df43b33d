package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ManiacAyu/RetainSure-urlShortner/internal/models"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/service"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/storage"
	"github.com/ManiacAyu/RetainSure-urlShortner/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleHealthCheck handles liveness requests to the service root.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{
		Status:  "healthy",
		Service: "URL Shortener API",
	})
}

// handleAPIHealth handles liveness requests to the API prefix.
func handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{
		Status:  "ok",
		Message: "URL Shortener API is running",
	})
}

// shortenRequest represents the request payload for creating a shortened URL.
type shortenRequest struct {
	URL string `json:"url" validate:"required"`
}

// shortenResponse represents the response payload for a created short URL.
type shortenResponse struct {
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// statsResponse represents the response payload for short URL statistics.
type statsResponse struct {
	URL       string    `json:"url"`
	ShortCode string    `json:"short_code"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}

func toStatsResponse(url *models.URL) statsResponse {
	return statsResponse{
		URL:       url.OriginalURL,
		ShortCode: url.ShortCode,
		Clicks:    url.Clicks,
		CreatedAt: url.CreatedAt,
	}
}

// handleShortenURL handles POST requests to shorten a URL.
//
// The request must contain a URL; input without a scheme is accepted and
// normalized by the service. The handler returns the generated short code
// together with the short and original URLs.
func handleShortenURL(svc URLService, validate *validator.Validate, baseURL string) http.HandlerFunc {
	const op = "api.http.handleShortenURL"

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		url, err := svc.ShortenURL(r.Context(), req.URL)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidURL):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.InvalidURLResponse)
			case errors.Is(err, service.ErrMaxAttemptsExceeded):
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ShortCodeExhaustedResponse)
			default:
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, shortenResponse{
			ShortCode:   url.ShortCode,
			ShortURL:    baseURL + "/" + url.ShortCode,
			OriginalURL: url.OriginalURL,
		})
	}
}

// handleRedirect handles GET requests to a short code, redirecting to the
// original URL and recording the click.
func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.ResolveShortCode(r.Context(), shortCode)
		if err != nil {
			renderLookupError(w, r, op, err)
			return
		}

		http.Redirect(w, r, url.OriginalURL, http.StatusFound)
	}
}

// handleGetURLStats handles GET requests for the click statistics of a
// short code.
func handleGetURLStats(svc URLService) http.HandlerFunc {
	const op = "api.http.handleGetURLStats"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.GetURLStats(r.Context(), shortCode)
		if err != nil {
			renderLookupError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, toStatsResponse(url))
	}
}

// renderLookupError maps short code lookup failures to client or server
// error responses.
func renderLookupError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidShortCode):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.InvalidShortCodeResponse)
	case errors.Is(err, storage.ErrURLNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.ResourceNotFoundResponse)
	default:
		httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ServerErrorResponse)
	}
}
