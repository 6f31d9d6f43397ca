package transport

import (
	"eventfinder/internal/domain"
	"eventfinder/internal/service"
	"net/http"
)

type GenreHandler struct {
	service service.GenreService
	mux     *http.ServeMux
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	h := &GenreHandler{
		service: svc,
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.handleList)
	return h
}

func (h *GenreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleList lists the genres events can be filtered by
// @Summary List Genres
// @Tags genres
// @Produce json
// @Success 200 {object} domain.APIResponse{data=[]domain.Genre}
// @Failure 500 {object} domain.APIResponse{error=string}
// @Router /genres [get]
func (h *GenreHandler) handleList(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: genres})
}
