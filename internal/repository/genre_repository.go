package repository

import (
	"context"
	"eventfinder/internal/domain"
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type GenreRepository interface {
	ListActive(ctx context.Context) ([]domain.Genre, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Genre, error)
}

type genreRepo struct {
	db *DB
}

func NewGenreRepository(db *DB) GenreRepository {
	return &genreRepo{db: db}
}

func (r *genreRepo) ListActive(ctx context.Context) ([]domain.Genre, error) {
	return r.list(ctx, "SELECT id, name, icon, is_deleted FROM genres WHERE is_deleted = 0 ORDER BY name, id", nil)
}

// GetByIDs returns the genres among ids that exist, deleted or not. Unknown IDs are skipped.
func (r *genreRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return []domain.Genre{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := "SELECT id, name, icon, is_deleted FROM genres WHERE id IN (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ") ORDER BY name, id"
	return r.list(ctx, query, args)
}

func (r *genreRepo) list(ctx context.Context, query string, args []any) ([]domain.Genre, error) {
	genres := []domain.Genre{}
	err := r.db.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				genres = append(genres, scanGenre(stmt))
				return nil
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list genres: %w", domain.ErrQueryFailed, err)
	}
	return genres, nil
}

func scanGenre(stmt *sqlite.Stmt) domain.Genre {
	return domain.Genre{
		ID:        stmt.ColumnText(0),
		Name:      stmt.ColumnText(1),
		Icon:      columnNullableText(stmt, 2),
		IsDeleted: stmt.ColumnInt64(3) != 0,
	}
}
