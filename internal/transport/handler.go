package transport

import (
	"errors"
	"eventfinder/internal/domain"
	"eventfinder/internal/logging"
	"eventfinder/internal/service"
	"eventfinder/internal/session"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/goccy/go-json"
)

// Services bundles what the router serves.
type Services struct {
	Events   service.EventService
	Genres   service.GenreService
	Profiles service.ProfileService
	Views    *session.Registry
}

// NewRouter initializes the main HTTP handler using Go 1.22+ ServeMux
func NewRouter(svc Services) http.Handler {
	mux := http.NewServeMux()

	// Requests to /events (no slash) will be redirected to /events/ by ServeMux
	mux.Handle("/events/", http.StripPrefix("/events", NewEventHandler(svc.Events)))
	mux.Handle("/genres/", http.StripPrefix("/genres", NewGenreHandler(svc.Genres)))
	mux.Handle("/profiles/", http.StripPrefix("/profiles", NewProfileHandler(svc.Profiles, svc.Genres)))
	mux.Handle("/views/", http.StripPrefix("/views", NewViewHandler(svc.Views)))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("Invalid JSON body")
	}
	return nil
}

// respondError maps err to a status code. Causes of server errors are
// logged, never returned to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "internal error"

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Message
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrBusy):
		status, msg = http.StatusConflict, domain.ErrBusy.Error()
	case errors.Is(err, domain.ErrQueryFailed):
		msg = domain.ErrQueryFailed.Error()
	}

	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, domain.APIResponse{Error: msg})
}

func WithCompression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")
		br := brotli.NewWriter(w)
		defer func(br *brotli.Writer) {
			_ = br.Close()
		}(br)
		cw := &compressedWriter{w: w, cw: br}
		next.ServeHTTP(cw, r)
	})
}

type compressedWriter struct {
	w  http.ResponseWriter
	cw *brotli.Writer
}

func (cw *compressedWriter) Header() http.Header         { return cw.w.Header() }
func (cw *compressedWriter) Write(b []byte) (int, error) { return cw.cw.Write(b) }
func (cw *compressedWriter) WriteHeader(statusCode int)  { cw.w.WriteHeader(statusCode) }
