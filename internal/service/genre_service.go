package service

import (
	"context"
	"eventfinder/internal/domain"
	"eventfinder/internal/repository"
)

type GenreService interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	FavoriteGenres(ctx context.Context, userID string) ([]domain.Genre, error)
}

type genreService struct {
	genres   repository.GenreRepository
	profiles repository.ProfileRepository
}

func NewGenreService(genres repository.GenreRepository, profiles repository.ProfileRepository) GenreService {
	return &genreService{genres: genres, profiles: profiles}
}

func (s *genreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.ListActive(ctx)
}

// FavoriteGenres resolves the genre IDs stored on a profile. Genres removed
// from the catalog since they were picked are left out.
func (s *genreService) FavoriteGenres(ctx context.Context, userID string) ([]domain.Genre, error) {
	if userID == "" {
		return nil, domain.ErrValidation("user id is required")
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	found, err := s.genres.GetByIDs(ctx, profile.GenreIDs)
	if err != nil {
		return nil, err
	}
	favorites := make([]domain.Genre, 0, len(found))
	for _, g := range found {
		if !g.IsDeleted {
			favorites = append(favorites, g)
		}
	}
	return favorites, nil
}
