package transport

import (
	"eventfinder/internal/auth"
	"eventfinder/internal/domain"
	"eventfinder/internal/service"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type EventHandler struct {
	service service.EventService
	mux     *http.ServeMux
}

func NewEventHandler(svc service.EventService) *EventHandler {
	h := &EventHandler{
		service: svc,
		mux:     http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *EventHandler) routes() {
	// Collection routes (matched at root of stripped prefix)
	h.mux.HandleFunc("GET /{$}", h.handleList)
	h.mux.HandleFunc("POST /batch", h.handleBatchImport)

	// Item routes (matched with path value)
	h.mux.HandleFunc("GET /{id}", h.handleGet)
}

func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleList lists events with strict validation and filtering
// @Summary List Events
// @Description Get a page of events. Events named like parking listings are never returned.
// @Tags events
// @Accept json
// @Produce json
// @Param q query string false "Event name contains"
// @Param genre query []string false "Genre IDs (repeatable or comma separated, any match)"
// @Param from query string false "From date (YYYY-MM-DD or RFC3339), inclusive"
// @Param to query string false "To date (YYYY-MM-DD or RFC3339), inclusive"
// @Param sort query string false "Sort column (country, name, date)"
// @Param dir query string false "Sort direction (asc, desc)"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page Size (1-100)"
// @Param page_token query string false "Pagination Token"
// @Success 200 {object} domain.APIPaginationResponse
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 500 {object} domain.APIResponse{error=string}
// @Router /events [get]
func (h *EventHandler) handleList(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}

	events, meta, err := h.service.ListEvents(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.APIPaginationResponse{Data: events, Meta: meta})
}

func parseSearchRequest(q url.Values) (domain.SearchRequest, error) {
	// 1. Bind Query Params to DTO
	dto := domain.EventListDTO{
		Query:     q.Get("q"),
		GenreIDs:  splitList(q["genre"]),
		StartDate: q.Get("from"),
		EndDate:   q.Get("to"),
		SortKey:   strings.ToLower(q.Get("sort")),
		SortDir:   strings.ToLower(q.Get("dir")),
		PageToken: q.Get("page_token"),
	}

	var err error
	if dto.Page, err = intParam(q, "page"); err != nil {
		return domain.SearchRequest{}, err
	}
	if dto.PageSize, err = intParam(q, "page_size"); err != nil {
		return domain.SearchRequest{}, err
	}

	// 2. Struct Validation
	if err := domain.Validate.Struct(dto); err != nil {
		return domain.SearchRequest{}, domain.ErrValidation(err.Error())
	}

	// 3. Convert DTO to Domain Request
	from, err := domain.ParseDateBound(dto.StartDate, false)
	if err != nil {
		return domain.SearchRequest{}, err
	}
	to, err := domain.ParseDateBound(dto.EndDate, true)
	if err != nil {
		return domain.SearchRequest{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return domain.SearchRequest{}, domain.ErrValidation("to cannot be before from")
	}

	column, err := domain.ParseSortColumn(dto.SortKey)
	if err != nil {
		return domain.SearchRequest{}, err
	}
	direction, err := domain.ParseSortDirection(dto.SortDir)
	if err != nil {
		return domain.SearchRequest{}, err
	}
	// A column alone sorts ascending.
	if column != domain.SortNone && direction == domain.DirectionNone {
		direction = domain.DirectionAsc
	}

	return domain.SearchRequest{
		Filter: domain.FilterDescription{
			TextQuery: dto.Query,
			GenreIDs:  dto.GenreIDs,
			DateFrom:  from,
			DateTo:    to,
		},
		Sort:      domain.NormalizeSort(column, direction),
		Page:      dto.Page,
		PageSize:  dto.PageSize,
		PageToken: dto.PageToken,
	}, nil
}

func intParam(q url.Values, name string) (int, error) {
	val := q.Get(name)
	if val == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, domain.ErrValidation(name + " must be a valid integer")
	}
	return i, nil
}

// splitList accepts both ?genre=a&genre=b and ?genre=a,b.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// handleGet retrieves a single event
// @Summary Get Event
// @Description Get an event with its venue and genres
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=domain.EventDetail}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id} [get]
func (h *EventHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, r, domain.ErrValidation("Missing id path parameter"))
		return
	}

	event, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.APIResponse{Data: event})
}

// handleBatchImport imports venues, genres and events
// @Summary Batch Import Catalog
// @Description Upsert venues, genres and events in one transaction
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param batch body domain.BatchEventRequest true "Batch Data"
// @Success 201 {object} domain.APIResponse{data=string}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 401 {object} domain.APIResponse{error=string}
// @Router /events/batch [post]
func (h *EventHandler) handleBatchImport(w http.ResponseWriter, r *http.Request) {
	if auth.UserIDFromContext(r.Context()) == "" {
		respondError(w, r, domain.ErrUnauthorized)
		return
	}

	var req domain.BatchEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := domain.Validate.Struct(req); err != nil {
		respondError(w, r, domain.ErrValidation(err.Error()))
		return
	}

	catalog, err := domain.BatchRequestToCatalog(&req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.service.ImportCatalog(r.Context(), catalog); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, domain.APIResponse{
		Data: fmt.Sprintf("Successfully imported %d events", len(catalog.Events)),
	})
}
