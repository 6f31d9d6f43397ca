package repository

import (
	"context"
	"errors"
	"eventfinder/internal/domain"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

func setupFirestore(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("Skipping integration test: FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "local-project-id")
	if err != nil {
		t.Fatalf("Failed to create firestore client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestProfileRepository_SaveAndFriends(t *testing.T) {
	client := setupFirestore(t)
	repo := NewProfileRepository(client)
	ctx := context.Background()

	// IDs are unique per run, the emulator database is shared.
	alice := "alice-" + uuid.NewString()
	bob := "bob-" + uuid.NewString()

	if _, err := repo.Get(ctx, alice); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for a missing profile, got %v", err)
	}

	for _, p := range []*domain.Profile{
		{ID: alice, Username: "alice", GenreIDs: []string{"g1"}, UpdatedAt: time.Now().UTC()},
		{ID: bob, Username: "bob", UpdatedAt: time.Now().UTC()},
	} {
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save %s: %v", p.ID, err)
		}
	}

	if err := repo.AddFriend(ctx, alice, bob); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}

	// Saving again must not drop the friendship.
	if err := repo.Save(ctx, &domain.Profile{ID: alice, Username: "alice2", UpdatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Get(ctx, alice)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alice2" || len(got.FriendIDs) != 1 || got.FriendIDs[0] != bob {
		t.Errorf("unexpected profile after save: %+v", got)
	}

	friends, err := repo.ListFriends(ctx, bob)
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != alice {
		t.Errorf("Expected bob's friends to be [alice], got %+v", friends)
	}

	if err := repo.RemoveFriend(ctx, bob, alice); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	friends, err = repo.ListFriends(ctx, alice)
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("Expected no friends after removal, got %+v", friends)
	}
}
