package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"movieroulette/internal/catalog"
	"movieroulette/internal/discovery"
	"movieroulette/internal/logging"
	"movieroulette/internal/roulette"
	"movieroulette/internal/seen"
)

const maxRequestBody = 1 << 20 // 1 MiB

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.Health(ctx); err != nil {
		s.respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "seen store unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	names, err := s.service.Genres(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.respondJSON(w, http.StatusOK, GenreListResponse{Genres: names})
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	filter, err := buildFilter(r.URL.Query())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	movie, err := s.service.Suggest(r.Context(), filter)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, FromMovie(movie))
}

// buildFilter treats a present-but-empty parameter as a supplied filter so
// validation can reject it.
func buildFilter(query url.Values) (discovery.Filter, error) {
	var filter discovery.Filter
	if query.Has("year") {
		year, err := strconv.Atoi(strings.TrimSpace(query.Get("year")))
		if err != nil {
			return filter, fmt.Errorf("%w: %q", roulette.ErrInvalidYear, query.Get("year"))
		}
		filter.Year = &year
	}
	if query.Has("genre") {
		genre := strings.TrimSpace(query.Get("genre"))
		filter.Genre = &genre
	}
	return filter, nil
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieIDParam(w, r)
	if !ok {
		return
	}
	movie, err := s.service.Show(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, FromMovie(movie))
}

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieIDParam(w, r)
	if !ok {
		return
	}
	movie, err := s.service.Show(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if movie.Poster == nil {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "movie has no poster")
		return
	}
	w.Header().Set("Content-Type", movie.Poster.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(movie.Poster.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(movie.Poster.Data)
}

func (s *Server) handleSeenList(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Seen(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, FromRecords(records))
}

func (s *Server) handleSeenAdd(w http.ResponseWriter, r *http.Request) {
	var req SeenRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Title = strings.TrimSpace(req.Title)
	if req.ID == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "id is required")
		return
	}
	if err := s.service.MarkSeen(r.Context(), req.ID, req.Title); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, SeenRecord{ID: req.ID, Title: req.Title})
}

func (s *Server) handleSeenRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieIDParam(w, r)
	if !ok {
		return
	}
	if err := s.service.Forget(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeenReset(w http.ResponseWriter, r *http.Request) {
	removed, err := s.service.Reset(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ResetResponse{Removed: removed})
}

func (s *Server) movieIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(id) == "" {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid movie id")
		return "", false
	}
	return strings.TrimSpace(id), true
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unable to parse request body")
	}
}

// respondServiceError maps session errors to HTTP statuses. The message is
// the user-facing description; the full error is logged.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context(), s.logger).Warn("api request failed",
			logging.String(logging.FieldEventType, "api_request_failed"),
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check tmdb connectivity and the seen store"),
			logging.String(logging.FieldImpact, "client received an error response"),
		)
	}
	s.respondError(w, status, code, roulette.Describe(err))
}

func classify(err error) (int, string) {
	var statusErr *catalog.StatusError
	switch {
	case errors.Is(err, roulette.ErrInvalidFilter):
		return http.StatusBadRequest, "INVALID_FILTER"
	case errors.Is(err, seen.ErrInvalidID):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, discovery.ErrNoQualifyingMovie):
		return http.StatusNotFound, "NO_QUALIFYING_MOVIE"
	case errors.Is(err, seen.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "CANCELLED"
	case errors.Is(err, catalog.ErrTransport), errors.Is(err, catalog.ErrMalformedResponse):
		return http.StatusBadGateway, "CATALOG_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
