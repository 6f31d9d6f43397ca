package domain

import (
	"sort"
	"strings"
	"time"
)

// MinTimestamp and MaxTimestamp bracket every representable event time.
// They replace unset date bounds because the store's range predicate always
// takes two sides. The values are the limits of an ECMAScript Date
// (+-8.64e15 ms), which is where the event data originates.
var (
	MinTimestamp = time.UnixMilli(-8_640_000_000_000_000).UTC()
	MaxTimestamp = time.UnixMilli(8_640_000_000_000_000).UTC()
)

type SortColumn string

const (
	SortNone    SortColumn = ""
	SortCountry SortColumn = "country"
	SortName    SortColumn = "name"
	SortDate    SortColumn = "date"
)

// SortColumns lists the sortable columns in display order.
var SortColumns = []SortColumn{SortCountry, SortName, SortDate}

func (c SortColumn) Valid() bool {
	switch c {
	case SortNone, SortCountry, SortName, SortDate:
		return true
	}
	return false
}

type SortDirection string

const (
	DirectionNone SortDirection = ""
	DirectionAsc  SortDirection = "asc"
	DirectionDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	switch d {
	case DirectionNone, DirectionAsc, DirectionDesc:
		return true
	}
	return false
}

// ParseSortColumn accepts the wire names of the sortable columns.
func ParseSortColumn(s string) (SortColumn, error) {
	c := SortColumn(strings.ToLower(strings.TrimSpace(s)))
	if c == "none" {
		return SortNone, nil
	}
	if !c.Valid() {
		return SortNone, ErrValidation("sort column must be one of country, name, date")
	}
	return c, nil
}

// ParseSortDirection accepts asc/desc and the up/down aliases used by the sort buttons.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return DirectionNone, nil
	case "asc", "up":
		return DirectionAsc, nil
	case "desc", "down":
		return DirectionDesc, nil
	}
	return DirectionNone, ErrValidation("sort direction must be one of asc, desc")
}

// SortDescription is a single-column sort. Column is SortNone iff Direction is DirectionNone.
type SortDescription struct {
	Column    SortColumn    `json:"column"`
	Direction SortDirection `json:"direction"`
}

// NormalizeSort collapses a half-set description (a column without a
// direction or the reverse) to no sort at all.
func NormalizeSort(column SortColumn, direction SortDirection) SortDescription {
	if column == SortNone || direction == DirectionNone {
		return SortDescription{}
	}
	return SortDescription{Column: column, Direction: direction}
}

func (s SortDescription) IsZero() bool {
	return s.Column == SortNone && s.Direction == DirectionNone
}

// FilterDescription is the last applied filter. Nil dates mean "no bound".
type FilterDescription struct {
	TextQuery string     `json:"textQuery"`
	GenreIDs  []string   `json:"genreIds"`
	DateFrom  *time.Time `json:"dateFrom,omitempty"`
	DateTo    *time.Time `json:"dateTo,omitempty"`
}

// Normalize returns a copy with genre IDs de-duplicated, trimmed and sorted.
func (f FilterDescription) Normalize() FilterDescription {
	out := f
	out.GenreIDs = nil
	seen := make(map[string]struct{}, len(f.GenreIDs))
	for _, id := range f.GenreIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out.GenreIDs = append(out.GenreIDs, id)
	}
	sort.Strings(out.GenreIDs)
	return out
}

// Bounds returns concrete range bounds, substituting the sentinels for unset ones.
func (f FilterDescription) Bounds() (from, to time.Time) {
	from, to = MinTimestamp, MaxTimestamp
	if f.DateFrom != nil {
		from = *f.DateFrom
	}
	if f.DateTo != nil {
		to = *f.DateTo
	}
	return from, to
}

// EventQuery is everything the query builder needs to read one page.
type EventQuery struct {
	Filter   FilterDescription
	Sort     SortDescription
	Page     int
	PageSize int
}

func (q EventQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Validate rejects queries that must never reach the store.
func (q EventQuery) Validate() error {
	if q.Page <= 0 {
		return ErrValidation("page must be a positive integer")
	}
	if q.PageSize <= 0 {
		return ErrValidation("page size must be a positive integer")
	}
	if !q.Sort.Column.Valid() || !q.Sort.Direction.Valid() {
		return ErrValidation("unknown sort column or direction")
	}
	if (q.Sort.Column == SortNone) != (q.Sort.Direction == DirectionNone) {
		return ErrValidation("sort column and direction must be set together")
	}
	if q.Filter.DateFrom != nil && q.Filter.DateTo != nil && q.Filter.DateTo.Before(*q.Filter.DateFrom) {
		return ErrValidation("dateTo cannot be before dateFrom")
	}
	return nil
}

// SearchRequest is a stateless list request. PageToken, when set, takes
// precedence over Page and must have been issued for the same filter and sort.
type SearchRequest struct {
	Filter    FilterDescription
	Sort      SortDescription
	Page      int
	PageSize  int
	PageToken string
}
