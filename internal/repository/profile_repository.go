package repository

import (
	"context"
	"errors"
	"eventfinder/internal/domain"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CollectionProfiles = "profiles"

type ProfileRepository interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Save(ctx context.Context, profile *domain.Profile) error
	AddFriend(ctx context.Context, userID, friendID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
	ListFriends(ctx context.Context, userID string) ([]domain.Profile, error)
}

type profileRepo struct {
	client *firestore.Client
}

func NewProfileRepository(client *firestore.Client) ProfileRepository {
	return &profileRepo{client: client}
}

func (r *profileRepo) Get(ctx context.Context, id string) (*domain.Profile, error) {
	doc, err := r.client.Collection(CollectionProfiles).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var profile domain.Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save writes the editable profile fields and leaves friend_ids untouched.
func (r *profileRepo) Save(ctx context.Context, profile *domain.Profile) error {
	genreIDs := profile.GenreIDs
	if genreIDs == nil {
		genreIDs = []string{}
	}
	_, err := r.client.Collection(CollectionProfiles).Doc(profile.ID).Set(ctx, map[string]interface{}{
		"id":         profile.ID,
		"username":   profile.Username,
		"bio":        profile.Bio,
		"image_url":  profile.ImageURL,
		"genre_ids":  genreIDs,
		"updated_at": profile.UpdatedAt,
	}, firestore.MergeAll)
	return err
}

// AddFriend links both profiles in one batch; friendship is symmetric.
func (r *profileRepo) AddFriend(ctx context.Context, userID, friendID string) error {
	return r.updateFriendship(ctx, userID, friendID, true)
}

func (r *profileRepo) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return r.updateFriendship(ctx, userID, friendID, false)
}

func (r *profileRepo) updateFriendship(ctx context.Context, a, b string, add bool) error {
	op := func(id string) interface{} {
		if add {
			return firestore.ArrayUnion(id)
		}
		return firestore.ArrayRemove(id)
	}
	now := time.Now().UTC()
	col := r.client.Collection(CollectionProfiles)
	batch := r.client.Batch()
	batch.Set(col.Doc(a), map[string]interface{}{
		"id": a, "friend_ids": op(b), "updated_at": now,
	}, firestore.MergeAll)
	batch.Set(col.Doc(b), map[string]interface{}{
		"id": b, "friend_ids": op(a), "updated_at": now,
	}, firestore.MergeAll)
	_, err := batch.Commit(ctx)
	return err
}

func (r *profileRepo) ListFriends(ctx context.Context, userID string) ([]domain.Profile, error) {
	iter := r.client.Collection(CollectionProfiles).
		Where("friend_ids", "array-contains", userID).
		OrderBy("username", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	friends := []domain.Profile{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var p domain.Profile
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		friends = append(friends, p)
	}
	return friends, nil
}
