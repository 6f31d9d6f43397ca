package transport

import (
	"eventfinder/internal/auth"
	"eventfinder/internal/domain"
	"eventfinder/internal/filterform"
	"eventfinder/internal/pagination"
	"eventfinder/internal/session"
	"net/http"
)

// ViewHandler serves mounted list views. Every mutating route answers with
// the re-rendered view and the outcome of the call.
type ViewHandler struct {
	views *session.Registry
	mux   *http.ServeMux
}

// ViewMeta reports what a list view call did.
type ViewMeta struct {
	Outcome string `json:"outcome"`
}

// SortRequest is the body of POST /views/{id}/sort and /sort/toggle.
type SortRequest struct {
	Column    string `json:"column"`
	Direction string `json:"direction,omitempty"`
}

func NewViewHandler(views *session.Registry) *ViewHandler {
	h := &ViewHandler{
		views: views,
		mux:   http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *ViewHandler) routes() {
	h.mux.HandleFunc("POST /{$}", h.handleOpen)
	h.mux.HandleFunc("GET /{id}", h.handleGet)
	h.mux.HandleFunc("DELETE /{id}", h.handleClose)
	h.mux.HandleFunc("POST /{id}/filter", h.handleFilter)
	h.mux.HandleFunc("POST /{id}/sort", h.handleSort)
	h.mux.HandleFunc("POST /{id}/sort/toggle", h.handleToggleSort)
	h.mux.HandleFunc("POST /{id}/more", h.handleLoadMore)
	h.mux.HandleFunc("POST /{id}/refresh", h.handleRefresh)
}

func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

func signedIn(r *http.Request) bool {
	return auth.UserIDFromContext(r.Context()) != ""
}

func (h *ViewHandler) respondView(w http.ResponseWriter, r *http.Request, status int, v *session.View, outcome pagination.Outcome) {
	writeJSON(w, status, domain.APIResponse{
		Data: v.Render(signedIn(r)),
		Meta: ViewMeta{Outcome: outcome.String()},
	})
}

// handleOpen mounts a list view
// @Summary Open List View
// @Description Mount an event list view holding the first page of events
// @Tags views
// @Produce json
// @Success 201 {object} domain.APIResponse{data=listview.View}
// @Failure 500 {object} domain.APIResponse{error=string}
// @Router /views [post]
func (h *ViewHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Open(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondView(w, r, http.StatusCreated, v, pagination.OutcomeApplied)
}

// @Summary Get List View
// @Tags views
// @Produce json
// @Param id path string true "View Id"
// @Success 200 {object} domain.APIResponse{data=listview.View}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /views/{id} [get]
func (h *ViewHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: v.Render(signedIn(r))})
}

// @Summary Close List View
// @Tags views
// @Produce json
// @Param id path string true "View Id"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /views/{id} [delete]
func (h *ViewHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.views.Close(r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.APIResponse{Data: "Closed"})
}

// handleFilter applies the filter form
// @Summary Filter List View
// @Description Apply a filter and reload the view from page 1
// @Tags views
// @Accept json
// @Produce json
// @Param id path string true "View Id"
// @Param filter body filterform.RawFilter true "Filter form"
// @Success 200 {object} domain.APIResponse{data=listview.View,meta=ViewMeta}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /views/{id}/filter [post]
func (h *ViewHandler) handleFilter(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	var raw filterform.RawFilter
	if err := decodeJSON(r, &raw); err != nil {
		respondError(w, r, err)
		return
	}
	outcome, err := v.Surface.Submit(r.Context(), raw)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondView(w, r, http.StatusOK, v, outcome)
}

// handleSort applies a single-column sort
// @Summary Sort List View
// @Description Sort by one column and reload from page 1. Rejected while the view is loading.
// @Tags views
// @Accept json
// @Produce json
// @Param id path string true "View Id"
// @Param sort body SortRequest true "Column (country, name, date) and direction (asc, desc)"
// @Success 200 {object} domain.APIResponse{data=listview.View,meta=ViewMeta}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 409 {object} domain.APIResponse{error=string}
// @Router /views/{id}/sort [post]
func (h *ViewHandler) handleSort(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req SortRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	column, err := domain.ParseSortColumn(req.Column)
	if err != nil {
		respondError(w, r, err)
		return
	}
	direction, err := domain.ParseSortDirection(req.Direction)
	if err != nil {
		respondError(w, r, err)
		return
	}
	outcome, err := v.Surface.Sort(r.Context(), column, direction)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondView(w, r, http.StatusOK, v, outcome)
}

// @Summary Toggle Sort
// @Description Cycle a column through ascending, descending and unsorted
// @Tags views
// @Accept json
// @Produce json
// @Param id path string true "View Id"
// @Param sort body SortRequest true "Column"
// @Success 200 {object} domain.APIResponse{data=listview.View,meta=ViewMeta}
// @Failure 409 {object} domain.APIResponse{error=string}
// @Router /views/{id}/sort/toggle [post]
func (h *ViewHandler) handleToggleSort(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req SortRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	column, err := domain.ParseSortColumn(req.Column)
	if err != nil {
		respondError(w, r, err)
		return
	}
	outcome, err := v.Surface.ToggleSort(r.Context(), column)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondView(w, r, http.StatusOK, v, outcome)
}

// handleLoadMore appends the next page
// @Summary Load More
// @Description Append the next page. A no-op while loading or at the end of the list.
// @Tags views
// @Produce json
// @Param id path string true "View Id"
// @Success 200 {object} domain.APIResponse{data=listview.View,meta=ViewMeta}
// @Failure 500 {object} domain.APIResponse{error=string}
// @Router /views/{id}/more [post]
func (h *ViewHandler) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	outcome, err := v.Controller.LoadMore(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondView(w, r, http.StatusOK, v, outcome)
}

// handleRefresh reloads page 1 with the current filter and sort
// @Summary Refresh List View
// @Description Reload the view from page 1, e.g. after a failed or abandoned load
// @Tags views
// @Produce json
// @Param id path string true "View Id"
// @Success 200 {object} domain.APIResponse{data=listview.View,meta=ViewMeta}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Failure 500 {object} domain.APIResponse{error=string}
// @Router /views/{id}/refresh [post]
func (h *ViewHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	v, err := h.views.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	outcome, err := v.Controller.Refresh(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.respondView(w, r, http.StatusOK, v, outcome)
}
