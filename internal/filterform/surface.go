// Package filterform turns raw filter and sort input of a list view into
// the normalized descriptions the pagination controller works with.
package filterform

import (
	"context"
	"eventfinder/internal/domain"
	"eventfinder/internal/pagination"
	"sync"
)

// Target is the list a surface drives. *pagination.Controller implements it.
type Target interface {
	Loading() bool
	ApplyFilter(ctx context.Context, filter domain.FilterDescription) (pagination.Outcome, error)
	ApplySort(ctx context.Context, sort domain.SortDescription) (pagination.Outcome, error)
}

// RawFilter is the filter form as submitted. Dates are YYYY-MM-DD or RFC3339;
// empty dates are no bound.
type RawFilter struct {
	EventName string   `json:"eventName" validate:"max=200"`
	Genres    []string `json:"genres" validate:"max=50,dive,required"`
	FromDate  string   `json:"fromDate"`
	ToDate    string   `json:"toDate"`
}

type Surface struct {
	target Target
	egg    *EasterEgg

	mu      sync.Mutex
	sort    domain.SortDescription
	sorting bool
}

func NewSurface(target Target, egg *EasterEgg) *Surface {
	if egg == nil {
		egg = &EasterEgg{}
	}
	return &Surface{target: target, egg: egg}
}

// Submit applies the filter form. The easter egg phrase toggles the easter
// egg and reaches no query.
func (s *Surface) Submit(ctx context.Context, raw RawFilter) (pagination.Outcome, error) {
	if raw.EventName == EasterEggPhrase {
		s.egg.Toggle()
		return pagination.OutcomeIgnored, nil
	}
	filter, err := ParseFilter(raw)
	if err != nil {
		return pagination.OutcomeFailed, err
	}
	return s.target.ApplyFilter(ctx, filter)
}

// ParseFilter validates raw and converts it to a normalized FilterDescription.
func ParseFilter(raw RawFilter) (domain.FilterDescription, error) {
	if err := domain.Validate.Struct(raw); err != nil {
		return domain.FilterDescription{}, domain.ErrValidation(err.Error())
	}
	from, err := domain.ParseDateBound(raw.FromDate, false)
	if err != nil {
		return domain.FilterDescription{}, err
	}
	to, err := domain.ParseDateBound(raw.ToDate, true)
	if err != nil {
		return domain.FilterDescription{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return domain.FilterDescription{}, domain.ErrValidation("toDate cannot be before fromDate")
	}
	f := domain.FilterDescription{
		TextQuery: raw.EventName,
		GenreIDs:  raw.Genres,
		DateFrom:  from,
		DateTo:    to,
	}
	return f.Normalize(), nil
}

// Sort makes column the only sorted column. While the list is loading, or
// another sort from this surface is still being applied, the request is
// dropped: state and list are untouched, but the caller gets
// OutcomeIgnored together with domain.ErrBusy, which HTTP clients see as
// 409 Conflict rather than a silent success.
func (s *Surface) Sort(ctx context.Context, column domain.SortColumn, direction domain.SortDirection) (pagination.Outcome, error) {
	if !column.Valid() || !direction.Valid() {
		return pagination.OutcomeFailed, domain.ErrValidation("unknown sort column or direction")
	}
	desc := domain.NormalizeSort(column, direction)

	s.mu.Lock()
	if s.sorting || s.target.Loading() {
		s.mu.Unlock()
		return pagination.OutcomeIgnored, domain.ErrBusy
	}
	s.sorting = true
	s.sort = desc
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sorting = false
		s.mu.Unlock()
	}()
	return s.target.ApplySort(ctx, desc)
}

// ToggleSort advances column through asc, desc and unsorted. A column that
// is not the active one starts at asc.
func (s *Surface) ToggleSort(ctx context.Context, column domain.SortColumn) (pagination.Outcome, error) {
	if column == domain.SortNone || !column.Valid() {
		return pagination.OutcomeFailed, domain.ErrValidation("unknown sort column")
	}
	current := s.SortState()

	next := domain.DirectionAsc
	if current.Column == column {
		switch current.Direction {
		case domain.DirectionAsc:
			next = domain.DirectionDesc
		case domain.DirectionDesc:
			next = domain.DirectionNone
		}
	}
	return s.Sort(ctx, column, next)
}

// SortState is the sort the surface last applied.
func (s *Surface) SortState() domain.SortDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

func (s *Surface) EasterEgg() *EasterEgg {
	return s.egg
}

// Loading reports whether the target list is loading, for disabling controls.
func (s *Surface) Loading() bool {
	return s.target.Loading()
}
