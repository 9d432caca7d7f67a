package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	clickTimeout = 5 * time.Second
)

type urlUseCase interface {
	ShortenURL(ctx context.Context, originalURL string, owner *entity.User) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RecordClick(ctx context.Context, shortCode string) error
	ListURLs(ctx context.Context, owner *entity.User, limit, offset int) (*entity.URLPage, error)
	ModifyURL(ctx context.Context, externalID string, owner *entity.User, originalURL string) (*entity.URL, error)
	DeactivateURL(ctx context.Context, externalID string, owner *entity.User) error
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, baseURL string) *urlHandler {
	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  baseURL,
	}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest

	if !decodeRequest(w, r, h.validate, &req) {
		return
	}

	url, err := h.useCase.ShortenURL(r.Context(), req.Original, userFromContext(r.Context()))
	if err != nil {
		respondServerError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toURLResponse(url, h.baseURL))
}

// resolveShortCode redirects to the original URL and counts the click once
// the redirect has been sent. Click accounting failures never fail the redirect.
func (h *urlHandler) resolveShortCode(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, urlNotFoundResponse)
			return
		}

		respondServerError(w, r, err)
		return
	}

	http.Redirect(w, r, url.OriginalURL, http.StatusTemporaryRedirect)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), clickTimeout)
	defer cancel()

	if err := h.useCase.RecordClick(ctx, shortCode); err != nil {
		httplog.LogEntrySetField(r.Context(), "click_err", slog.AnyValue(err))
	}
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := parsePagination(r)
	if !ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryResponse)
		return
	}

	result, err := h.useCase.ListURLs(r.Context(), userFromContext(r.Context()), limit, (page-1)*limit)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			respondUnauthorized(w, r)
			return
		}

		respondServerError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLPageResponse(result, page, limit, h.baseURL))
}

func (h *urlHandler) modifyURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest

	if !decodeRequest(w, r, h.validate, &req) {
		return
	}

	externalID := chi.URLParam(r, "id")

	url, err := h.useCase.ModifyURL(r.Context(), externalID, userFromContext(r.Context()), req.Original)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrURLNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, urlNotFoundResponse)
		case errors.Is(err, entity.ErrUnauthorized):
			respondUnauthorized(w, r)
		default:
			respondServerError(w, r, err)
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLResponse(url, h.baseURL))
}

func (h *urlHandler) deactivateURL(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "id")

	err := h.useCase.DeactivateURL(r.Context(), externalID, userFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrURLNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, urlNotFoundResponse)
		case errors.Is(err, entity.ErrUnauthorized):
			respondUnauthorized(w, r)
		default:
			respondServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parsePagination reads the page and limit query parameters. Missing values
// fall back to defaults and limit is capped at maxLimit. Pages whose offset
// does not fit in an int are rejected.
func parsePagination(r *http.Request) (page, limit int, ok bool) {
	page, limit = defaultPage, defaultLimit
	query := r.URL.Query()

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		page = n
	}

	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		limit = min(n, maxLimit)
	}

	if page-1 > math.MaxInt/limit {
		return 0, 0, false
	}

	return page, limit, true
}
