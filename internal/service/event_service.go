package service

import (
	"context"
	"eventfinder/internal/domain"
	"eventfinder/internal/repository"
)

type EventService interface {
	ListEvents(ctx context.Context, req domain.SearchRequest) ([]domain.EventListItem, *domain.Meta, error)
	QueryEvents(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error)
	GetEvent(ctx context.Context, id string) (*domain.EventDetail, error)
	ImportCatalog(ctx context.Context, catalog *domain.Catalog) error
}

// PageLimits bound the page size of stateless list requests.
type PageLimits struct {
	Default int
	Max     int
}

type eventService struct {
	repo   repository.EventRepository
	limits PageLimits
}

func NewEventService(repo repository.EventRepository, limits PageLimits) EventService {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max <= 0 {
		limits.Max = 100
	}
	if limits.Default > limits.Max {
		limits.Default = limits.Max
	}
	return &eventService{repo: repo, limits: limits}
}

func (s *eventService) ListEvents(ctx context.Context, req domain.SearchRequest) ([]domain.EventListItem, *domain.Meta, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = s.limits.Default
	}
	if pageSize > s.limits.Max {
		pageSize = s.limits.Max
	}

	filter := req.Filter.Normalize()
	sort := domain.NormalizeSort(req.Sort.Column, req.Sort.Direction)
	fp := fingerprint(filter, sort)

	page := req.Page
	if req.PageToken != "" {
		p, err := decodePageToken(req.PageToken, fp)
		if err != nil {
			return nil, nil, err
		}
		page = p
	}
	if page == 0 {
		page = 1
	}

	q := domain.EventQuery{Filter: filter, Sort: sort, Page: page, PageSize: pageSize}
	items, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	meta := &domain.Meta{Page: page, PageSize: pageSize, HasMore: len(items) == pageSize}
	if meta.HasMore {
		meta.NextPageToken = encodePageToken(page+1, fp)
	}
	return items, meta, nil
}

// QueryEvents runs q as given. It backs the list-view controllers, which
// manage their own page numbers.
func (s *eventService) QueryEvents(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
	return s.repo.Query(ctx, q)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.EventDetail, error) {
	if id == "" {
		return nil, domain.ErrValidation("id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) ImportCatalog(ctx context.Context, catalog *domain.Catalog) error {
	if catalog == nil || len(catalog.Events) == 0 {
		return domain.ErrValidation("no events to import")
	}
	for _, e := range catalog.Events {
		if e.Name == "" {
			return domain.ErrValidation("event name is required for all items")
		}
		if e.VenueID == "" {
			return domain.ErrValidation("venue id is required for all items")
		}
	}
	return s.repo.Import(ctx, catalog)
}
