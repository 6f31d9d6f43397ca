// Package pagination owns the state of one infinite-scroll event list.
//
// A Controller holds the loaded items, the current page, the has-more flag
// and the loading flag of a single list view. Filter and sort changes start
// a new epoch and reload page 1; LoadMore appends the next page of the
// current epoch. At most one query is in flight per controller. A result
// that lands after its epoch was superseded is discarded, never applied.
package pagination

import (
	"context"
	"eventfinder/internal/domain"
	"eventfinder/internal/metrics"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultPageSize is used when New is given a non-positive page size.
const DefaultPageSize = 50

// Querier reads one page of events.
type Querier interface {
	QueryEvents(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error)
}

// Intent says whether a fetch replaces the list or appends to it.
type Intent int

const (
	IntentReplace Intent = iota
	IntentAppend
)

func (i Intent) String() string {
	if i == IntentAppend {
		return "append"
	}
	return "replace"
}

// Outcome reports what a controller call did to the list.
type Outcome int

const (
	// OutcomeApplied means the fetched page was written to the list.
	OutcomeApplied Outcome = iota
	// OutcomeIgnored means the call was a no-op and nothing was queried.
	OutcomeIgnored
	// OutcomeSuperseded means a newer filter or sort won; any result was discarded.
	OutcomeSuperseded
	// OutcomeFailed accompanies a non-nil error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return "failed"
	}
}

// State is a point-in-time copy of the controller state.
type State struct {
	Items     []domain.EventListItem
	Page      int
	PageSize  int
	HasMore   bool
	Loading   bool
	Epoch     uint64
	Filter    domain.FilterDescription
	Sort      domain.SortDescription
	LastError error
}

type Controller struct {
	querier  Querier
	pageSize int
	logger   zerolog.Logger

	mu      sync.Mutex
	items   []domain.EventListItem
	page    int
	hasMore bool
	loading bool
	epoch   uint64
	filter  domain.FilterDescription
	sort    domain.SortDescription
	lastErr error
	// idle is closed when the in-flight fetch settles. Valid while loading.
	idle chan struct{}
}

// New returns a controller whose first page is initial, fetched with an
// empty filter and no sort.
func New(querier Querier, pageSize int, initial []domain.EventListItem, logger zerolog.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	items := make([]domain.EventListItem, len(initial))
	copy(items, initial)
	return &Controller{
		querier:  querier,
		pageSize: pageSize,
		logger:   logger,
		items:    items,
		page:     1,
		hasMore:  len(initial) == pageSize,
	}
}

// ApplyFilter replaces the filter and reloads the list from page 1. When a
// fetch is in flight the call waits for it to settle, then fetches unless a
// later change has superseded it in the meantime.
func (c *Controller) ApplyFilter(ctx context.Context, filter domain.FilterDescription) (Outcome, error) {
	filter = filter.Normalize()
	return c.replace(ctx, func(f *domain.FilterDescription, _ *domain.SortDescription) {
		*f = filter
	})
}

// ApplySort replaces the sort and reloads the list from page 1. A column
// without a direction, or the reverse, is treated as no sort.
func (c *Controller) ApplySort(ctx context.Context, sort domain.SortDescription) (Outcome, error) {
	sort = domain.NormalizeSort(sort.Column, sort.Direction)
	return c.replace(ctx, func(_ *domain.FilterDescription, s *domain.SortDescription) {
		*s = sort
	})
}

// Refresh reloads page 1 with the current filter and sort.
func (c *Controller) Refresh(ctx context.Context) (Outcome, error) {
	return c.replace(ctx, func(*domain.FilterDescription, *domain.SortDescription) {})
}

// LoadMore appends the next page. It is a no-op while loading or once a
// short page has been seen.
func (c *Controller) LoadMore(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.loading || !c.hasMore {
		c.mu.Unlock()
		metrics.ListLoadMoreIgnored.Inc()
		return OutcomeIgnored, nil
	}
	c.page++
	return c.fetch(ctx, IntentAppend)
}

func (c *Controller) replace(ctx context.Context, change func(*domain.FilterDescription, *domain.SortDescription)) (Outcome, error) {
	c.mu.Lock()
	filter, sort := c.filter, c.sort
	change(&filter, &sort)
	probe := domain.EventQuery{Filter: filter, Sort: sort, Page: 1, PageSize: c.pageSize}
	if err := probe.Validate(); err != nil {
		c.mu.Unlock()
		return OutcomeFailed, err
	}

	c.epoch++
	epoch := c.epoch
	c.filter, c.sort = filter, sort
	c.items = []domain.EventListItem{}
	c.page = 1
	c.hasMore = false
	c.lastErr = nil

	for c.loading {
		idle := c.idle
		c.mu.Unlock()
		select {
		case <-idle:
		case <-ctx.Done():
			// The list is already reset for this epoch; make the missing page visible.
			c.mu.Lock()
			if c.epoch == epoch {
				c.lastErr = ctx.Err()
			}
			c.mu.Unlock()
			return OutcomeFailed, ctx.Err()
		}
		c.mu.Lock()
		if c.epoch != epoch {
			c.mu.Unlock()
			return OutcomeSuperseded, nil
		}
	}
	return c.fetch(ctx, IntentReplace)
}

// fetch runs one query for the current epoch and page. It must be called
// with c.mu held and c.loading false; it returns with c.mu released.
func (c *Controller) fetch(ctx context.Context, intent Intent) (Outcome, error) {
	c.loading = true
	c.idle = make(chan struct{})
	epoch := c.epoch
	q := domain.EventQuery{Filter: c.filter, Sort: c.sort, Page: c.page, PageSize: c.pageSize}
	c.mu.Unlock()

	metrics.ListFetches.WithLabelValues(intent.String()).Inc()
	result, err := c.querier.QueryEvents(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	close(c.idle)

	log := c.logger.With().
		Str("intent", intent.String()).
		Uint64("epoch", epoch).
		Int("page", q.Page).
		Logger()

	if epoch != c.epoch {
		metrics.ListStaleResults.Inc()
		log.Debug().Uint64("current_epoch", c.epoch).Msg("discarded stale page")
		return OutcomeSuperseded, nil
	}

	if err != nil {
		if intent == IntentAppend {
			c.page--
		}
		c.lastErr = err
		log.Warn().Err(err).Msg("list fetch failed")
		return OutcomeFailed, err
	}

	if intent == IntentAppend {
		c.items = append(c.items, result...)
	} else {
		c.items = make([]domain.EventListItem, len(result))
		copy(c.items, result)
	}
	c.hasMore = len(result) == c.pageSize
	c.lastErr = nil
	log.Debug().Int("count", len(result)).Bool("has_more", c.hasMore).Msg("list page applied")
	return OutcomeApplied, nil
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.EventListItem, len(c.items))
	copy(items, c.items)
	return State{
		Items:     items,
		Page:      c.page,
		PageSize:  c.pageSize,
		HasMore:   c.hasMore,
		Loading:   c.loading,
		Epoch:     c.epoch,
		Filter:    c.filter,
		Sort:      c.sort,
		LastError: c.lastErr,
	}
}
