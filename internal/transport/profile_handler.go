package transport

import (
	"eventfinder/internal/auth"
	"eventfinder/internal/domain"
	"eventfinder/internal/service"
	"net/http"
)

type ProfileHandler struct {
	profiles service.ProfileService
	genres   service.GenreService
	mux      *http.ServeMux
}

func NewProfileHandler(profiles service.ProfileService, genres service.GenreService) *ProfileHandler {
	h := &ProfileHandler{
		profiles: profiles,
		genres:   genres,
		mux:      http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *ProfileHandler) routes() {
	h.mux.HandleFunc("GET /{id}", h.handleGet)
	h.mux.HandleFunc("PUT /{id}", h.handleUpdate)
	h.mux.HandleFunc("GET /{id}/genres", h.handleFavoriteGenres)
	h.mux.HandleFunc("GET /{id}/friends", h.handleListFriends)
	h.mux.HandleFunc("PUT /{id}/friends/{friendId}", h.handleAddFriend)
	h.mux.HandleFunc("DELETE /{id}/friends/{friendId}", h.handleRemoveFriend)
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleGet returns a profile
// @Summary Get Profile
// @Tags profiles
// @Produce json
// @Param id path string true "User Id"
// @Success 200 {object} domain.APIResponse{data=domain.Profile}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /profiles/{id} [get]
func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: profile})
}

// handleUpdate updates the caller's own profile
// @Summary Update Profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User Id"
// @Param profile body domain.ProfileDTO true "Profile Data"
// @Success 200 {object} domain.APIResponse{data=domain.Profile}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 401 {object} domain.APIResponse{error=string}
// @Failure 403 {object} domain.APIResponse{error=string}
// @Router /profiles/{id} [put]
func (h *ProfileHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var dto domain.ProfileDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, r, err)
		return
	}
	profile, err := h.profiles.UpdateProfile(r.Context(), auth.UserIDFromContext(r.Context()), r.PathValue("id"), dto)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: profile})
}

// handleFavoriteGenres lists the genres a user picked
// @Summary Favorite Genres
// @Tags profiles
// @Produce json
// @Param id path string true "User Id"
// @Success 200 {object} domain.APIResponse{data=[]domain.Genre}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /profiles/{id}/genres [get]
func (h *ProfileHandler) handleFavoriteGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.FavoriteGenres(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: genres})
}

// @Summary List Friends
// @Tags profiles
// @Produce json
// @Param id path string true "User Id"
// @Success 200 {object} domain.APIResponse{data=[]domain.Profile}
// @Router /profiles/{id}/friends [get]
func (h *ProfileHandler) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.profiles.ListFriends(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: friends})
}

// @Summary Add Friend
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "User Id"
// @Param friendId path string true "Friend User Id"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 403 {object} domain.APIResponse{error=string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /profiles/{id}/friends/{friendId} [put]
func (h *ProfileHandler) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.profiles.AddFriend(ctx, auth.UserIDFromContext(ctx), r.PathValue("id"), r.PathValue("friendId")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: "Friend added"})
}

// @Summary Remove Friend
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "User Id"
// @Param friendId path string true "Friend User Id"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 403 {object} domain.APIResponse{error=string}
// @Router /profiles/{id}/friends/{friendId} [delete]
func (h *ProfileHandler) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.profiles.RemoveFriend(ctx, auth.UserIDFromContext(ctx), r.PathValue("id"), r.PathValue("friendId")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: "Friend removed"})
}
