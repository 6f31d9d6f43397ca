package service_test

import (
	"context"
	"errors"
	"eventfinder/internal/domain"
	"eventfinder/internal/service"
	"testing"
)

// MockRepository manually implements repository.EventRepository for testing
type MockRepository struct {
	QueryFunc   func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.EventDetail, error)
	ImportFunc  func(ctx context.Context, catalog *domain.Catalog) error
}

func (m *MockRepository) Query(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.EventDetail, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) Import(ctx context.Context, catalog *domain.Catalog) error {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, catalog)
	}
	return nil
}

func itemsN(n int) []domain.EventListItem {
	items := make([]domain.EventListItem, n)
	for i := range items {
		items[i].EventID = string(rune('a' + i%26))
	}
	return items
}

var limits = service.PageLimits{Default: 20, Max: 100}

func TestListEvents_ClampsPageSize(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		want     int
	}{
		{"Default", 0, 20},
		{"Explicit", 5, 5},
		{"ClampedToMax", 500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.EventQuery
			repo := &MockRepository{
				QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
					got = q
					return nil, nil
				},
			}
			svc := service.NewEventService(repo, limits)
			_, meta, err := svc.ListEvents(context.Background(), domain.SearchRequest{PageSize: tt.pageSize})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.PageSize != tt.want || meta.PageSize != tt.want {
				t.Errorf("page size = %d (meta %d), want %d", got.PageSize, meta.PageSize, tt.want)
			}
			if got.Page != 1 {
				t.Errorf("page = %d, want 1", got.Page)
			}
		})
	}
}

func TestListEvents_PageTokenRoundTrip(t *testing.T) {
	var pages []int
	repo := &MockRepository{
		QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
			pages = append(pages, q.Page)
			if q.Page == 1 {
				return itemsN(q.PageSize), nil
			}
			return itemsN(1), nil
		},
	}
	svc := service.NewEventService(repo, limits)
	req := domain.SearchRequest{
		Filter:   domain.FilterDescription{TextQuery: "rock", GenreIDs: []string{"b", "a"}},
		Sort:     domain.SortDescription{Column: domain.SortName, Direction: domain.DirectionAsc},
		PageSize: 3,
	}

	_, meta, err := svc.ListEvents(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !meta.HasMore || meta.NextPageToken == "" {
		t.Fatalf("expected a next page token, got %+v", meta)
	}

	// Same filter with genres in another order is the same filter.
	req.Filter.GenreIDs = []string{"a", "b", "a"}
	req.PageToken = meta.NextPageToken
	_, meta, err = svc.ListEvents(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if meta.HasMore || meta.NextPageToken != "" || meta.Page != 2 {
		t.Errorf("expected last page 2, got %+v", meta)
	}
	if len(pages) != 2 || pages[1] != 2 {
		t.Errorf("queried pages = %v, want [1 2]", pages)
	}
}

func TestListEvents_RejectsForeignPageToken(t *testing.T) {
	repo := &MockRepository{
		QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
			return itemsN(q.PageSize), nil
		},
	}
	svc := service.NewEventService(repo, limits)

	_, meta, err := svc.ListEvents(context.Background(), domain.SearchRequest{
		Filter: domain.FilterDescription{GenreIDs: []string{"rock"}}, PageSize: 2,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	repo.QueryFunc = func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
		t.Error("query must not run with a mismatched token")
		return nil, nil
	}
	for _, token := range []string{meta.NextPageToken, "not-base64!", "e30"} {
		_, _, err = svc.ListEvents(context.Background(), domain.SearchRequest{
			Filter: domain.FilterDescription{GenreIDs: []string{"jazz"}}, PageSize: 2, PageToken: token,
		})
		if !domain.IsValidation(err) {
			t.Errorf("token %q: expected validation error, got %v", token, err)
		}
	}
}

func TestListEvents_PropagatesQueryFailure(t *testing.T) {
	repo := &MockRepository{
		QueryFunc: func(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
			return nil, errors.Join(domain.ErrQueryFailed, errors.New("disk I/O error"))
		},
	}
	svc := service.NewEventService(repo, limits)
	_, _, err := svc.ListEvents(context.Background(), domain.SearchRequest{})
	if !errors.Is(err, domain.ErrQueryFailed) {
		t.Errorf("Expected ErrQueryFailed, got %v", err)
	}
}

func TestGetEventValidation(t *testing.T) {
	svc := service.NewEventService(&MockRepository{}, limits)
	_, err := svc.GetEvent(context.Background(), "")

	if err == nil {
		t.Error("Expected error for empty ID")
	}
}

func TestImportCatalog(t *testing.T) {
	imported := false
	repo := &MockRepository{
		ImportFunc: func(ctx context.Context, catalog *domain.Catalog) error {
			imported = true
			return nil
		},
	}
	svc := service.NewEventService(repo, limits)

	// Case 1: Nothing to import
	if err := svc.ImportCatalog(context.Background(), &domain.Catalog{}); !domain.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	// Case 2: Missing venue
	bad := &domain.Catalog{Events: []domain.Event{{ID: "e1", Name: "Gig"}}}
	if err := svc.ImportCatalog(context.Background(), bad); !domain.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if imported {
		t.Fatal("invalid catalog reached the repository")
	}

	// Case 3: Valid
	ok := &domain.Catalog{Events: []domain.Event{{ID: "e1", Name: "Gig", VenueID: "v1"}}}
	if err := svc.ImportCatalog(context.Background(), ok); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !imported {
		t.Error("Expected repository import")
	}
}
