package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(db)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	return repo
}

func testSummary() *models.Summary {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Summary{
		ID:        uuid.New().String(),
		URL:       "https://example.com/post",
		Kind:      models.KindPage,
		Title:     "Example Post",
		Status:    models.StatusCompleted,
		Text:      "A short summary.",
		Model:     "gpt-4o-mini",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	want := testSummary()

	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Find(ctx, want.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if got.URL != want.URL {
		t.Errorf("URL = %q, want %q", got.URL, want.URL)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want %q", got.Status, models.StatusCompleted)
	}
	if got.Text != want.Text {
		t.Errorf("Text = %q, want %q", got.Text, want.Text)
	}
	if got.Kind != models.KindPage {
		t.Errorf("Kind = %q, want %q", got.Kind, models.KindPage)
	}
}

func TestFindByURL(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	want := testSummary()

	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.FindByURL(ctx, want.URL)
	if err != nil {
		t.Fatalf("FindByURL() error = %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
}

func TestFindMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Find(context.Background(), "nope")
	if !errors.IsNotFound(err) {
		t.Errorf("Find() expected NotFound, got %v", err)
	}

	_, err = repo.FindByURL(context.Background(), "https://example.com/missing")
	if !errors.IsNotFound(err) {
		t.Errorf("FindByURL() expected NotFound, got %v", err)
	}
}

func TestSaveUpsertsByURL(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := testSummary()
	first.Status = models.StatusProcessing
	first.Text = ""
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := testSummary()
	second.Status = models.StatusCompleted
	second.Text = "Final summary."
	second.UpdatedAt = first.UpdatedAt.Add(time.Minute)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save() upsert error = %v", err)
	}

	got, err := repo.FindByURL(ctx, first.URL)
	if err != nil {
		t.Fatalf("FindByURL() error = %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("ID = %q, want %q after upsert", got.ID, second.ID)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want completed after upsert", got.Status)
	}
	if got.Text != "Final summary." {
		t.Errorf("Text = %q", got.Text)
	}

	// The ID handed back to callers must stay resolvable.
	if _, err := repo.Find(ctx, second.ID); err != nil {
		t.Errorf("Find(%q) error = %v", second.ID, err)
	}
	if _, err := repo.Find(ctx, first.ID); !errors.IsNotFound(err) {
		t.Errorf("Find(%q) expected NotFound for replaced ID, got %v", first.ID, err)
	}
}
