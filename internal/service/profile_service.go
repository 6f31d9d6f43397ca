package service

import (
	"context"
	"errors"
	"eventfinder/internal/domain"
	"eventfinder/internal/repository"
	"strings"
	"time"
)

type ProfileService interface {
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, callerID, id string, dto domain.ProfileDTO) (*domain.Profile, error)
	AddFriend(ctx context.Context, callerID, userID, friendID string) error
	RemoveFriend(ctx context.Context, callerID, userID, friendID string) error
	ListFriends(ctx context.Context, id string) ([]domain.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	genres   repository.GenreRepository
	now      func() time.Time
}

func NewProfileService(profiles repository.ProfileRepository, genres repository.GenreRepository) ProfileService {
	return &profileService{
		profiles: profiles,
		genres:   genres,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	if id == "" {
		return nil, domain.ErrValidation("id is required")
	}
	return s.profiles.Get(ctx, id)
}

// UpdateProfile writes the editable fields of the caller's own profile,
// creating the document on first save.
func (s *profileService) UpdateProfile(ctx context.Context, callerID, id string, dto domain.ProfileDTO) (*domain.Profile, error) {
	if err := authorizeSelf(callerID, id); err != nil {
		return nil, err
	}
	dto.Username = strings.TrimSpace(dto.Username)
	if err := domain.Validate.Struct(dto); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	genreIDs := (domain.FilterDescription{GenreIDs: dto.GenreIDs}).Normalize().GenreIDs
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		profile = &domain.Profile{ID: id}
	} else if err != nil {
		return nil, err
	}

	profile.Username = dto.Username
	profile.Bio = dto.Bio
	profile.ImageURL = dto.ImageURL
	profile.GenreIDs = genreIDs
	profile.UpdatedAt = s.now()

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) checkGenres(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.genres.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	active := make(map[string]bool, len(found))
	for _, g := range found {
		if !g.IsDeleted {
			active[g.ID] = true
		}
	}
	for _, id := range ids {
		if !active[id] {
			return domain.ErrValidation("unknown genre: " + id)
		}
	}
	return nil
}

func (s *profileService) AddFriend(ctx context.Context, callerID, userID, friendID string) error {
	if err := s.checkFriendship(callerID, userID, friendID); err != nil {
		return err
	}
	if _, err := s.profiles.Get(ctx, friendID); err != nil {
		return err
	}
	return s.profiles.AddFriend(ctx, userID, friendID)
}

func (s *profileService) RemoveFriend(ctx context.Context, callerID, userID, friendID string) error {
	if err := s.checkFriendship(callerID, userID, friendID); err != nil {
		return err
	}
	return s.profiles.RemoveFriend(ctx, userID, friendID)
}

func (s *profileService) checkFriendship(callerID, userID, friendID string) error {
	if err := authorizeSelf(callerID, userID); err != nil {
		return err
	}
	if friendID == "" {
		return domain.ErrValidation("friend id is required")
	}
	if friendID == userID {
		return domain.ErrValidation("cannot befriend yourself")
	}
	return nil
}

func (s *profileService) ListFriends(ctx context.Context, id string) ([]domain.Profile, error) {
	if id == "" {
		return nil, domain.ErrValidation("id is required")
	}
	return s.profiles.ListFriends(ctx, id)
}

func authorizeSelf(callerID, id string) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	if id == "" {
		return domain.ErrValidation("id is required")
	}
	if callerID != id {
		return domain.ErrForbidden
	}
	return nil
}
