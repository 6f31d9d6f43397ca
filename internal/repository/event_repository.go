package repository

import (
	"context"
	"eventfinder/internal/domain"
	"eventfinder/internal/metrics"
	"fmt"
	"strings"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ExcludedNameFragment hides events whose name contains it, whatever the text query.
const ExcludedNameFragment = "Parking"

type EventRepository interface {
	Query(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error)
	GetByID(ctx context.Context, id string) (*domain.EventDetail, error)
	Import(ctx context.Context, catalog *domain.Catalog) error
}

type eventRepo struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	return &eventRepo{db: db}
}

var sortExpressions = map[domain.SortColumn]string{
	domain.SortCountry: "v.country",
	domain.SortName:    "e.name",
	domain.SortDate:    "e.datetime",
}

const eventListColumns = `e.id, e.name, e.image_url, e.description, e.datetime, e.is_deleted,
	e.venue_id, v.name, v.address, v.country, v.zip_code`

// buildEventQuery renders q as a single SELECT and its positional arguments.
// q must already be valid.
func buildEventQuery(q domain.EventQuery) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 6+len(q.Filter.GenreIDs))

	sb.WriteString("SELECT DISTINCT ")
	sb.WriteString(eventListColumns)
	sb.WriteString("\nFROM events e\nINNER JOIN venues v ON v.id = e.venue_id")
	if len(q.Filter.GenreIDs) > 0 {
		sb.WriteString("\nINNER JOIN events_to_genres eg ON eg.event_id = e.id")
	}

	sb.WriteString("\nWHERE e.name LIKE ? ESCAPE '\\'")
	args = append(args, "%"+escapeLike(q.Filter.TextQuery)+"%")

	sb.WriteString("\n  AND e.name NOT LIKE ?")
	args = append(args, "%"+ExcludedNameFragment+"%")

	if n := len(q.Filter.GenreIDs); n > 0 {
		sb.WriteString("\n  AND eg.genre_id IN (")
		sb.WriteString(strings.TrimSuffix(strings.Repeat("?, ", n), ", "))
		sb.WriteString(")")
		for _, id := range q.Filter.GenreIDs {
			args = append(args, id)
		}
	}

	from, to := q.Filter.Bounds()
	sb.WriteString("\n  AND e.datetime BETWEEN ? AND ?")
	args = append(args, from.UnixMilli(), to.UnixMilli())

	direction := "ASC"
	if q.Sort.Direction == domain.DirectionDesc {
		direction = "DESC"
	}
	// Unsorted lists are in date order.
	order := sortExpressions[domain.SortDate]
	if !q.Sort.IsZero() {
		order = sortExpressions[q.Sort.Column]
	}
	fmt.Fprintf(&sb, "\nORDER BY %s %s, e.id ASC", order, direction)

	sb.WriteString("\nLIMIT ? OFFSET ?")
	args = append(args, int64(q.PageSize), int64(q.Offset()))

	return sb.String(), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *eventRepo) Query(ctx context.Context, q domain.EventQuery) ([]domain.EventListItem, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	q.Filter = q.Filter.Normalize()
	query, args := buildEventQuery(q)

	start := time.Now()
	defer func() {
		metrics.EventQueryDuration.Observe(time.Since(start).Seconds())
	}()

	items := make([]domain.EventListItem, 0, q.PageSize)
	err := r.db.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				items = append(items, scanEventListItem(stmt))
				return nil
			},
		})
	})
	if err != nil {
		metrics.EventQueryErrors.Inc()
		return nil, fmt.Errorf("%w: list events: %w", domain.ErrQueryFailed, err)
	}
	return items, nil
}

func scanEventListItem(stmt *sqlite.Stmt) domain.EventListItem {
	return domain.EventListItem{
		EventID:          stmt.ColumnText(0),
		EventName:        stmt.ColumnText(1),
		EventImageURL:    columnNullableText(stmt, 2),
		EventDescription: columnNullableText(stmt, 3),
		EventDateTime:    time.UnixMilli(stmt.ColumnInt64(4)).UTC(),
		EventIsDeleted:   columnNullableBool(stmt, 5),
		VenueID:          stmt.ColumnText(6),
		VenueName:        stmt.ColumnText(7),
		VenueAddress:     stmt.ColumnText(8),
		VenueCountry:     stmt.ColumnText(9),
		VenueZipCode:     stmt.ColumnText(10),
	}
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*domain.EventDetail, error) {
	var detail *domain.EventDetail
	err := r.db.withConn(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			"SELECT "+eventListColumns+"\nFROM events e\nINNER JOIN venues v ON v.id = e.venue_id\nWHERE e.id = ?",
			&sqlitex.ExecOptions{
				Args: []any{id},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					detail = &domain.EventDetail{EventListItem: scanEventListItem(stmt)}
					return nil
				},
			})
		if err != nil || detail == nil {
			return err
		}
		return sqlitex.Execute(conn, `SELECT g.id, g.name, g.icon, g.is_deleted
			FROM genres g
			INNER JOIN events_to_genres eg ON eg.genre_id = g.id
			WHERE eg.event_id = ?
			ORDER BY g.name`,
			&sqlitex.ExecOptions{
				Args: []any{id},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					detail.Genres = append(detail.Genres, scanGenre(stmt))
					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get event %s: %w", domain.ErrQueryFailed, id, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return detail, nil
}

// Import upserts the catalog in one immediate transaction. An event's genre
// links are replaced by the ones in the catalog.
func (r *eventRepo) Import(ctx context.Context, catalog *domain.Catalog) error {
	return r.db.withConn(ctx, func(conn *sqlite.Conn) (err error) {
		endFn, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return fmt.Errorf("import: begin: %w", err)
		}
		defer endFn(&err)

		for _, v := range catalog.Venues {
			err = sqlitex.Execute(conn, `INSERT INTO venues (id, name, address, country, zip_code)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, address = excluded.address,
					country = excluded.country, zip_code = excluded.zip_code`,
				&sqlitex.ExecOptions{Args: []any{v.ID, v.Name, v.Address, v.Country, v.ZipCode}})
			if err != nil {
				return fmt.Errorf("import venue %s: %w", v.ID, err)
			}
		}

		for _, g := range catalog.Genres {
			err = sqlitex.Execute(conn, `INSERT INTO genres (id, name, icon, is_deleted)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, icon = excluded.icon,
					is_deleted = excluded.is_deleted`,
				&sqlitex.ExecOptions{Args: []any{g.ID, g.Name, nullableText(g.Icon), nullableBool(&g.IsDeleted)}})
			if err != nil {
				return fmt.Errorf("import genre %s: %w", g.ID, err)
			}
		}

		for _, e := range catalog.Events {
			err = sqlitex.Execute(conn, `INSERT INTO events (id, name, image_url, description, datetime, is_deleted, venue_id)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, image_url = excluded.image_url,
					description = excluded.description, datetime = excluded.datetime,
					is_deleted = excluded.is_deleted, venue_id = excluded.venue_id`,
				&sqlitex.ExecOptions{Args: []any{
					e.ID, e.Name, nullableText(e.ImageURL), nullableText(e.Description),
					e.DateTime.UnixMilli(), nullableBool(e.IsDeleted), e.VenueID,
				}})
			if err != nil {
				return fmt.Errorf("import event %s: %w", e.ID, err)
			}

			err = sqlitex.Execute(conn, "DELETE FROM events_to_genres WHERE event_id = ?",
				&sqlitex.ExecOptions{Args: []any{e.ID}})
			if err != nil {
				return fmt.Errorf("import event %s genres: %w", e.ID, err)
			}
			for _, genreID := range e.GenreIDs {
				err = sqlitex.Execute(conn,
					"INSERT OR IGNORE INTO events_to_genres (event_id, genre_id) VALUES (?, ?)",
					&sqlitex.ExecOptions{Args: []any{e.ID, genreID}})
				if err != nil {
					return fmt.Errorf("import event %s genre %s: %w", e.ID, genreID, err)
				}
			}
		}
		return nil
	})
}
