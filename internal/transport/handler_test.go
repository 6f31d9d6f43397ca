package transport_test

import (
	"context"
	"eventfinder/internal/auth"
	"eventfinder/internal/domain"
	"eventfinder/internal/listview"
	"eventfinder/internal/session"
	"eventfinder/internal/transport"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// MockEventService implements EventService for handler testing
type MockEventService struct {
	ListFunc   func(ctx context.Context, req domain.SearchRequest) ([]domain.EventListItem, *domain.Meta, error)
	QueryFunc  func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error)
	GetFunc    func(ctx context.Context, id string) (*domain.EventDetail, error)
	ImportFunc func(ctx context.Context, catalog *domain.Catalog) error
}

func (m *MockEventService) ListEvents(ctx context.Context, req domain.SearchRequest) ([]domain.EventListItem, *domain.Meta, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return []domain.EventListItem{}, &domain.Meta{Page: 1}, nil
}

func (m *MockEventService) QueryEvents(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	return []domain.EventListItem{}, nil
}

func (m *MockEventService) GetEvent(ctx context.Context, id string) (*domain.EventDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEventService) ImportCatalog(ctx context.Context, catalog *domain.Catalog) error {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, catalog)
	}
	return nil
}

type MockGenreService struct {
	ListFunc      func(ctx context.Context) ([]domain.Genre, error)
	FavoritesFunc func(ctx context.Context, userID string) ([]domain.Genre, error)
}

func (m *MockGenreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Genre{}, nil
}

func (m *MockGenreService) FavoriteGenres(ctx context.Context, userID string) ([]domain.Genre, error) {
	if m.FavoritesFunc != nil {
		return m.FavoritesFunc(ctx, userID)
	}
	return []domain.Genre{}, nil
}

type MockProfileService struct {
	GetFunc          func(ctx context.Context, id string) (*domain.Profile, error)
	UpdateFunc       func(ctx context.Context, callerID, id string, dto domain.ProfileDTO) (*domain.Profile, error)
	AddFriendFunc    func(ctx context.Context, callerID, userID, friendID string) error
	RemoveFriendFunc func(ctx context.Context, callerID, userID, friendID string) error
	ListFriendsFunc  func(ctx context.Context, id string) ([]domain.Profile, error)
}

func (m *MockProfileService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Profile{ID: id}, nil
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, callerID, id string, dto domain.ProfileDTO) (*domain.Profile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, callerID, id, dto)
	}
	return &domain.Profile{ID: id}, nil
}

func (m *MockProfileService) AddFriend(ctx context.Context, callerID, userID, friendID string) error {
	if m.AddFriendFunc != nil {
		return m.AddFriendFunc(ctx, callerID, userID, friendID)
	}
	return nil
}

func (m *MockProfileService) RemoveFriend(ctx context.Context, callerID, userID, friendID string) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, callerID, userID, friendID)
	}
	return nil
}

func (m *MockProfileService) ListFriends(ctx context.Context, id string) ([]domain.Profile, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, id)
	}
	return []domain.Profile{}, nil
}

func newRouter(events *MockEventService, profiles *MockProfileService) (http.Handler, *session.Registry) {
	if events == nil {
		events = &MockEventService{}
	}
	if profiles == nil {
		profiles = &MockProfileService{}
	}
	views := session.NewRegistry(events, session.Config{PageSize: 2}, zerolog.Nop())
	return transport.NewRouter(transport.Services{
		Events:   events,
		Genres:   &MockGenreService{},
		Profiles: profiles,
		Views:    views,
	}), views
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
}

func TestHandler_ListEvents_QueryParams(t *testing.T) {
	mockSvc := &MockEventService{
		ListFunc: func(ctx context.Context, req domain.SearchRequest) ([]domain.EventListItem, *domain.Meta, error) {
			if req.Filter.TextQuery != "Rock" {
				t.Errorf("Expected TextQuery 'Rock', got '%s'", req.Filter.TextQuery)
			}
			if got := strings.Join(req.Filter.GenreIDs, ","); got != "g1,g2,g3" {
				t.Errorf("Expected genres g1,g2,g3, got %s", got)
			}
			if req.Filter.DateFrom == nil || !req.Filter.DateFrom.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("unexpected DateFrom %v", req.Filter.DateFrom)
			}
			if req.Filter.DateTo == nil || req.Filter.DateTo.Day() != 31 || req.Filter.DateTo.Hour() != 23 {
				t.Errorf("expected end of day DateTo, got %v", req.Filter.DateTo)
			}
			if req.Sort.Column != domain.SortCountry || req.Sort.Direction != domain.DirectionDesc {
				t.Errorf("unexpected sort %+v", req.Sort)
			}
			if req.PageSize != 10 || req.Page != 2 {
				t.Errorf("Expected page 2 size 10, got %d/%d", req.Page, req.PageSize)
			}
			return []domain.EventListItem{{EventID: "e1"}}, &domain.Meta{Page: 2, PageSize: 10, HasMore: false}, nil
		},
	}
	router, _ := newRouter(mockSvc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/events/?q=Rock&genre=g1,g2&genre=g3&from=2025-01-01&to=2025-01-31&sort=country&dir=desc&page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp domain.APIPaginationResponse
	decodeBody(t, w, &resp)
	if len(resp.Data) != 1 || resp.Meta == nil || resp.Meta.Page != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_ListEvents_InvalidParams(t *testing.T) {
	mockSvc := &MockEventService{
		ListFunc: func(ctx context.Context, req domain.SearchRequest) ([]domain.EventListItem, *domain.Meta, error) {
			t.Error("service must not be called for invalid input")
			return nil, nil, nil
		},
	}
	router, _ := newRouter(mockSvc, nil)

	for _, query := range []string{
		"page=0x",
		"page=-1",
		"page_size=101",
		"sort=price",
		"dir=sideways",
		"from=yesterday",
		"from=2025-02-01&to=2025-01-01",
	} {
		t.Run(query, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/?"+query, nil))
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"NotFound", fmt.Errorf("event x: %w", domain.ErrNotFound), http.StatusNotFound, "event x: not found"},
		{"QueryFailed", fmt.Errorf("%w: disk I/O error", domain.ErrQueryFailed), http.StatusInternalServerError, "query failed"},
		{"Validation", domain.ErrValidation("bad"), http.StatusBadRequest, "bad"},
		{"Unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockEventService{
				GetFunc: func(ctx context.Context, id string) (*domain.EventDetail, error) {
					return nil, tt.err
				},
			}
			router, _ := newRouter(mockSvc, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/x", nil))

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			var resp domain.APIResponse
			decodeBody(t, w, &resp)
			if resp.Error != tt.message {
				t.Errorf("Expected error %q, got %q", tt.message, resp.Error)
			}
		})
	}
}

func TestHandler_BatchImport(t *testing.T) {
	var got *domain.Catalog
	mockSvc := &MockEventService{
		ImportFunc: func(ctx context.Context, catalog *domain.Catalog) error {
			got = catalog
			return nil
		},
	}
	router, _ := newRouter(mockSvc, nil)
	body := `{"venues":[{"id":"v1","name":"Hall","address":"1 St","country":"Poland","zip_code":"00-001"}],
		"events":[{"name":"Gig","datetime":"2025-01-10T20:00:00Z","venue_id":"v1","genre_ids":["g1"]}]}`

	// Case 1: Guest
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events/batch", strings.NewReader(body)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	// Case 2: Signed in
	req := httptest.NewRequest(http.MethodPost, "/events/batch", strings.NewReader(body))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if got == nil || len(got.Events) != 1 || got.Events[0].ID == "" || len(got.Venues) != 1 {
		t.Errorf("unexpected catalog: %+v", got)
	}

	// Case 3: Invalid body
	req = httptest.NewRequest(http.MethodPost, "/events/batch", strings.NewReader(`{"events":[]}`))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestProfileHandler_UpdatePassesCaller(t *testing.T) {
	var caller, target string
	profiles := &MockProfileService{
		UpdateFunc: func(ctx context.Context, callerID, id string, dto domain.ProfileDTO) (*domain.Profile, error) {
			caller, target = callerID, id
			if callerID != id {
				return nil, domain.ErrForbidden
			}
			return &domain.Profile{ID: id, Username: dto.Username}, nil
		},
	}
	router, _ := newRouter(nil, profiles)

	req := httptest.NewRequest(http.MethodPut, "/profiles/u2", strings.NewReader(`{"username":"alice"}`))
	req = req.WithContext(auth.ContextWithUserID(req.Context(), "u1"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if caller != "u1" || target != "u2" {
		t.Errorf("service called with caller %q target %q", caller, target)
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestProfileHandler_FriendRoutes(t *testing.T) {
	var added, removed string
	profiles := &MockProfileService{
		AddFriendFunc: func(ctx context.Context, callerID, userID, friendID string) error {
			added = userID + "->" + friendID
			return nil
		},
		RemoveFriendFunc: func(ctx context.Context, callerID, userID, friendID string) error {
			removed = userID + "->" + friendID
			return nil
		},
	}
	router, _ := newRouter(nil, profiles)

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/profiles/u1/friends/u2", nil)
		req = req.WithContext(auth.ContextWithUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: Expected status 200, got %d", method, w.Code)
		}
	}
	if added != "u1->u2" || removed != "u1->u2" {
		t.Errorf("added %q removed %q", added, removed)
	}
}

type viewResponse struct {
	Data listview.View      `json:"data"`
	Meta transport.ViewMeta `json:"meta"`
}

func TestViewHandler_Lifecycle(t *testing.T) {
	var queries []domain.EventQuery
	events := &MockEventService{
		QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
			queries = append(queries, q)
			if q.Page == 1 && q.Filter.TextQuery == "" {
				return []domain.EventListItem{{EventID: "a"}, {EventID: "b"}}, nil
			}
			return []domain.EventListItem{{EventID: fmt.Sprintf("%s-%d", q.Filter.TextQuery, q.Page)}}, nil
		},
	}
	router, views := newRouter(events, nil)

	// Open
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var opened viewResponse
	decodeBody(t, w, &opened)
	id := opened.Data.ID
	if len(opened.Data.Items) != 2 || !opened.Data.HasMore || opened.Data.Items[0].Href != listview.SignInHref {
		t.Fatalf("unexpected opened view: %+v", opened.Data)
	}

	// Load more
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+id+"/more", nil))
	var more viewResponse
	decodeBody(t, w, &more)
	if len(more.Data.Items) != 3 || more.Data.HasMore || more.Meta.Outcome != "applied" {
		t.Errorf("unexpected view after load more: %+v %+v", more.Data, more.Meta)
	}

	// Load more at the end is ignored
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+id+"/more", nil))
	decodeBody(t, w, &more)
	if more.Meta.Outcome != "ignored" {
		t.Errorf("Expected ignored, got %s", more.Meta.Outcome)
	}

	// Filter replaces from page 1
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+id+"/filter",
		strings.NewReader(`{"eventName":"Jazz","genres":["g1"]}`)))
	var filtered viewResponse
	decodeBody(t, w, &filtered)
	if len(filtered.Data.Items) != 1 || filtered.Data.Items[0].ID != "Jazz-1" || filtered.Data.Page != 1 {
		t.Errorf("unexpected filtered view: %+v", filtered.Data)
	}

	// Easter egg toggles without a query
	before := len(queries)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+id+"/filter",
		strings.NewReader(`{"eventName":"Somebody once?"}`)))
	var egg viewResponse
	decodeBody(t, w, &egg)
	if !egg.Data.EasterEgg || egg.Data.SortButtons[0].Label != "SOMEBODY" || len(queries) != before {
		t.Errorf("easter egg not applied: %+v", egg.Data)
	}

	// Sort
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+id+"/sort",
		strings.NewReader(`{"column":"date","direction":"desc"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	last := queries[len(queries)-1]
	if last.Sort.Column != domain.SortDate || last.Sort.Direction != domain.DirectionDesc || last.Filter.TextQuery != "Jazz" {
		t.Errorf("unexpected sort query: %+v", last)
	}

	// Close
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/views/"+id, nil))
	if w.Code != http.StatusOK || views.Len() != 0 {
		t.Errorf("close failed: %d, %d views left", w.Code, views.Len())
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/views/"+id, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestViewHandler_Refresh(t *testing.T) {
	var queries int
	events := &MockEventService{
		QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
			queries++
			return []domain.EventListItem{{EventID: fmt.Sprintf("q%d", queries)}}, nil
		},
	}
	router, views := newRouter(events, nil)
	v, err := views.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+v.ID+"/refresh", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp viewResponse
	decodeBody(t, w, &resp)
	if queries != 2 || resp.Meta.Outcome != "applied" || len(resp.Data.Items) != 1 || resp.Data.Items[0].ID != "q2" {
		t.Errorf("unexpected refresh result after %d queries: %+v %+v", queries, resp.Data, resp.Meta)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/missing/refresh", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestViewHandler_SortWhileLoadingConflicts(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	events := &MockEventService{
		QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
			if q.Page == 1 && q.Filter.TextQuery == "" && q.Sort.IsZero() {
				return []domain.EventListItem{{EventID: "a"}, {EventID: "b"}}, nil
			}
			close(started)
			<-release
			return []domain.EventListItem{}, nil
		},
	}
	router, views := newRouter(events, nil)
	v, err := views.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+v.ID+"/more", nil))
	}()
	<-started

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+v.ID+"/sort",
		strings.NewReader(`{"column":"name","direction":"asc"}`)))
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}

	close(release)
	<-done
}
