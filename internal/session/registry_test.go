package session

import (
	"context"
	"errors"
	"eventfinder/internal/domain"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuerier struct {
	queries []domain.EventQuery
	err     error
}

func (s *stubQuerier) QueryEvents(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	items := make([]domain.EventListItem, q.PageSize)
	for i := range items {
		items[i].EventID = fmt.Sprintf("p%d-%d", q.Page, i)
	}
	return items, nil
}

func TestRegistry_OpenGetClose(t *testing.T) {
	q := &stubQuerier{}
	r := NewRegistry(q, Config{PageSize: 4}, zerolog.Nop())

	v, err := r.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, q.queries, 1)
	assert.Equal(t, domain.EventQuery{Page: 1, PageSize: 4}, q.queries[0])

	s := v.Controller.Snapshot()
	assert.Len(t, s.Items, 4)
	assert.True(t, s.HasMore)

	got, err := r.Get(v.ID)
	require.NoError(t, err)
	assert.Same(t, v, got)
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Close(v.ID))
	_, err = r.Get(v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Close(v.ID), domain.ErrNotFound)
}

func TestRegistry_ViewsAreIndependent(t *testing.T) {
	r := NewRegistry(&stubQuerier{}, Config{PageSize: 2}, zerolog.Nop())
	a, err := r.Open(context.Background())
	require.NoError(t, err)
	b, err := r.Open(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	a.EasterEgg.Toggle()
	assert.True(t, a.Render(false).EasterEgg)
	assert.False(t, b.Render(false).EasterEgg)

	_, err = a.Controller.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, a.Controller.Snapshot().Page)
	assert.Equal(t, 1, b.Controller.Snapshot().Page)
}

func TestRegistry_OpenFailure(t *testing.T) {
	r := NewRegistry(&stubQuerier{err: domain.ErrQueryFailed}, Config{}, zerolog.Nop())
	_, err := r.Open(context.Background())
	assert.True(t, errors.Is(err, domain.ErrQueryFailed))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&stubQuerier{}, Config{PageSize: 1, TTL: 10 * time.Minute}, zerolog.Nop())
	r.now = func() time.Time { return clock }

	stale, err := r.Open(context.Background())
	require.NoError(t, err)
	fresh, err := r.Open(context.Background())
	require.NoError(t, err)

	clock = clock.Add(8 * time.Minute)
	_, err = r.Get(fresh.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Sweep(clock.Add(time.Minute)))
	assert.Equal(t, 1, r.Sweep(clock.Add(5*time.Minute)))

	_, err = r.Get(stale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestRegistry_MaxViewsEvictsLeastRecentlySeen(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&stubQuerier{}, Config{PageSize: 1, MaxViews: 3}, zerolog.Nop())
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		v, err := r.Open(context.Background())
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}
	// The oldest view was used again, so the second one is now the idlest.
	_, err := r.Get(ids[0])
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		_, err := r.Open(context.Background())
		require.NoError(t, err)
		assert.LessOrEqual(t, r.Len(), 3)
	}
	assert.Equal(t, 3, r.Len())

	_, err = r.Get(ids[1])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_MaxViewsKeepsRecentView(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&stubQuerier{}, Config{PageSize: 1, MaxViews: 2}, zerolog.Nop())
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first, err := r.Open(context.Background())
	require.NoError(t, err)
	second, err := r.Open(context.Background())
	require.NoError(t, err)
	_, err = r.Get(first.ID)
	require.NoError(t, err)

	third, err := r.Open(context.Background())
	require.NoError(t, err)

	for _, id := range []string{first.ID, third.ID} {
		_, err := r.Get(id)
		assert.NoError(t, err)
	}
	_, err = r.Get(second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	r := NewRegistry(&stubQuerier{}, Config{SweepInterval: time.Millisecond}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
