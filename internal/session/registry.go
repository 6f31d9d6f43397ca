// Package session keeps the server-side list views mounted by clients.
//
// Each view owns one pagination controller, one filter surface and one
// easter egg. Views live in memory only and are evicted after sitting idle
// for longer than the configured TTL.
package session

import (
	"context"
	"eventfinder/internal/domain"
	"eventfinder/internal/filterform"
	"eventfinder/internal/listview"
	"eventfinder/internal/metrics"
	"eventfinder/internal/pagination"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Config struct {
	// PageSize is the page size of every view. Defaults to pagination.DefaultPageSize.
	PageSize int
	// TTL is how long an untouched view survives. Defaults to 30 minutes.
	TTL time.Duration
	// SweepInterval is the period of Run. Defaults to one minute.
	SweepInterval time.Duration
	// MaxViews caps the mounted views. Opening one more evicts the least
	// recently seen view. Defaults to DefaultMaxViews.
	MaxViews int
}

// DefaultMaxViews bounds memory when MaxViews is unset.
const DefaultMaxViews = 1000

// View is one mounted event list.
type View struct {
	ID         string
	Controller *pagination.Controller
	Surface    *filterform.Surface
	EasterEgg  *filterform.EasterEgg
	CreatedAt  time.Time

	lastSeen time.Time // guarded by Registry.mu
}

// Render builds the current render model of v.
func (v *View) Render(signedIn bool) listview.View {
	return listview.Build(listview.Input{
		ID:          v.ID,
		State:       v.Controller.Snapshot(),
		Sort:        v.Surface.SortState(),
		EasterEggOn: v.EasterEgg.IsOn(),
		SignedIn:    signedIn,
	})
}

type Registry struct {
	querier pagination.Querier
	cfg     Config
	logger  zerolog.Logger
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*View
}

func NewRegistry(querier pagination.Querier, cfg Config, logger zerolog.Logger) *Registry {
	if cfg.PageSize <= 0 {
		cfg.PageSize = pagination.DefaultPageSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.MaxViews <= 0 {
		cfg.MaxViews = DefaultMaxViews
	}
	return &Registry{
		querier: querier,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		views:   make(map[string]*View),
	}
}

// Open mounts a new view with the first page of the unfiltered, unsorted list.
func (r *Registry) Open(ctx context.Context) (*View, error) {
	initial, err := r.querier.QueryEvents(ctx, domain.EventQuery{Page: 1, PageSize: r.cfg.PageSize})
	if err != nil {
		return nil, fmt.Errorf("open list view: %w", err)
	}

	id := uuid.New().String()
	logger := r.logger.With().Str("view", id).Logger()
	ctrl := pagination.New(r.querier, r.cfg.PageSize, initial, logger)
	egg := &filterform.EasterEgg{}
	now := r.now()
	v := &View{
		ID:         id,
		Controller: ctrl,
		Surface:    filterform.NewSurface(ctrl, egg),
		EasterEgg:  egg,
		CreatedAt:  now,
		lastSeen:   now,
	}

	r.mu.Lock()
	evicted := ""
	if len(r.views) >= r.cfg.MaxViews {
		evicted = r.evictOldestLocked()
	}
	r.views[id] = v
	r.mu.Unlock()
	metrics.ListViewsActive.Inc()

	if evicted != "" {
		logger.Info().Str("evicted", evicted).Int("max_views", r.cfg.MaxViews).Msg("evicted least recently seen list view")
	}
	logger.Debug().Int("initial", len(initial)).Msg("list view opened")
	return v, nil
}

// evictOldestLocked drops the least recently seen view and returns its ID.
// r.mu must be held.
func (r *Registry) evictOldestLocked() string {
	var oldest *View
	for _, v := range r.views {
		if oldest == nil || v.lastSeen.Before(oldest.lastSeen) {
			oldest = v
		}
	}
	if oldest == nil {
		return ""
	}
	delete(r.views, oldest.ID)
	metrics.ListViewsActive.Dec()
	return oldest.ID
}

// Get returns the view and marks it as used.
func (r *Registry) Get(id string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		return nil, fmt.Errorf("list view %s: %w", id, domain.ErrNotFound)
	}
	v.lastSeen = r.now()
	return v, nil
}

func (r *Registry) Close(id string) error {
	r.mu.Lock()
	_, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("list view %s: %w", id, domain.ErrNotFound)
	}
	metrics.ListViewsActive.Dec()
	r.logger.Debug().Str("view", id).Msg("list view closed")
	return nil
}

// Sweep evicts views not used since now minus the TTL and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, v := range r.views {
		if now.Sub(v.lastSeen) > r.cfg.TTL {
			delete(r.views, id)
			evicted++
		}
	}
	if evicted > 0 {
		metrics.ListViewsActive.Sub(float64(evicted))
		r.logger.Info().Int("evicted", evicted).Int("remaining", len(r.views)).Msg("swept idle list views")
	}
	return evicted
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(r.now())
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
