package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deepeshsaheb-tal/bookcritic/config"
	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/version"
)

// Initialize the config before the log package reads it.
func init() {
	config.Opts = config.GetDefaultOptions()
}

func newMigratedDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookcritic.db")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected no database file before first boot")
	}

	d, err := NewDB(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate fresh database: %v", err)
	}
	return d
}

func TestMigrateFreshInstall(t *testing.T) {
	ctx := context.Background()
	d := newMigratedDB(t)

	histories, err := d.FindMigrationHistoryList(ctx, &store.FindMigrationHistory{})
	if err != nil {
		t.Fatalf("Failed to find migration history: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("Expected 1 migration history entry, got %d", len(histories))
	}
	if histories[0].Version != version.GetCurrentVersion() {
		t.Errorf("Expected version %s, got %s", version.GetCurrentVersion(), histories[0].Version)
	}

	// The schema is usable right after the first boot.
	s := store.NewStore(d.DB)
	user, err := s.CreateUser(&model.User{
		Username:     "firstboot",
		Email:        "firstboot@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleHost,
	})
	if err != nil {
		t.Fatalf("Failed to create user on fresh database: %v", err)
	}
	if user.ID == 0 {
		t.Errorf("Expected a user ID")
	}

	// A second Migrate on the same database is a no-op.
	if err := d.Migrate(ctx); err != nil {
		t.Fatalf("Failed to re-run migrate: %v", err)
	}
	histories, err = d.FindMigrationHistoryList(ctx, &store.FindMigrationHistory{})
	if err != nil {
		t.Fatalf("Failed to find migration history: %v", err)
	}
	if len(histories) != 1 {
		t.Errorf("Expected 1 migration history entry after re-run, got %d", len(histories))
	}
}

func TestForeignKeysCascadeOnEveryConnection(t *testing.T) {
	d := newMigratedDB(t)
	s := store.NewStore(d.DB)

	user, err := s.CreateUser(&model.User{
		Username:     "reader",
		Email:        "reader@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	book, err := s.CreateBook(&model.Book{Title: "Doomed Book", Author: "Author"})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	if _, err := s.CreateReview(&model.Review{
		BookID:  book.ID,
		UserID:  user.ID,
		Content: "A review that will not survive the book.",
		Rating:  4,
	}); err != nil {
		t.Fatalf("Failed to create review: %v", err)
	}
	if _, err := s.AddFavorite(user.ID, book.ID); err != nil {
		t.Fatalf("Failed to add favorite: %v", err)
	}

	// Stress the pool so the delete runs on more than one connection.
	d.DB.SetMaxOpenConns(4)
	if err := s.RemoveBook(book.ID); err != nil {
		t.Fatalf("Failed to remove book: %v", err)
	}

	count, err := s.CountReviews(&model.FindReview{BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to count reviews: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected reviews to cascade on book delete, got %d", count)
	}
	favorite, err := s.GetFavorite(&model.FindFavorite{UserID: &user.ID, BookID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to get favorite: %v", err)
	}
	if favorite != nil {
		t.Errorf("Expected favorite to cascade on book delete")
	}
}
