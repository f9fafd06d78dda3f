package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dbarrios89/storeapi/internal/domain/user"
)

func TestCreateAndGetByEmail(t *testing.T) {
	repo := NewUsersRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "Ana", "Lopez", "ana@x.com", "hash")

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected an assigned id")
	}

	found, err := repo.GetByEmail(ctx, "ana@x.com")

	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if found.ID != created.ID {
		t.Fatalf("got id %q, want %q", found.ID, created.ID)
	}

	// lookups are case-sensitive

	_, err = repo.GetByEmail(ctx, "ANA@x.com")

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected not found for different-cased email, got %v", err)
	}
}

// Exactly one of N concurrent signups with the same email may win.
func TestConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUsersRepo()
	ctx := context.Background()

	const n = 16

	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := repo.Create(ctx, "Ana", "Lopez", "ana@x.com", "hash")
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	wins := 0
	duplicates := 0

	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, user.ErrEmailTaken):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || duplicates != n-1 {
		t.Fatalf("got %d wins and %d duplicates, want 1 and %d", wins, duplicates, n-1)
	}
}
