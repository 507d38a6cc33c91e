package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/rs/zerolog"
)

func TestOpen_SeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	store, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("seed file not written: %v", err)
	}

	err = store.View(context.Background(), func(data *models.Database) error {
		if len(data.Users) != 3 {
			t.Errorf("expected 3 seeded users, got %d", len(data.Users))
		}
		if len(data.Badges) != 3 {
			t.Errorf("expected 3 catalog badges, got %d", len(data.Badges))
		}
		if len(data.Cases) != 0 {
			t.Errorf("expected no seeded cases, got %d", len(data.Cases))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestUpdate_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	store, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = store.Update(ctx, func(data *models.Database) error {
		data.FindUser("s1").Quota.Completed = 7
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	err = reopened.View(ctx, func(data *models.Database) error {
		if got := data.FindUser("s1").Quota.Completed; got != 7 {
			t.Errorf("expected completed 7 after reopen, got %d", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	store, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	boom := errors.New("boom")
	err = store.Update(ctx, func(data *models.Database) error {
		data.FindUser("s1").Quota.Completed = 99
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	err = store.View(ctx, func(data *models.Database) error {
		if got := data.FindUser("s1").Quota.Completed; got != 0 {
			t.Errorf("mutation survived a failed update: %d", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
