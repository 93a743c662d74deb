package summary

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/omar99elnemr/summarizeit/config"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	"github.com/omar99elnemr/summarizeit/summarizer"
	"github.com/omar99elnemr/summarizeit/validation"
	"github.com/sirupsen/logrus"
)

type fakeRepo struct {
	byURL map[string]*models.Summary
	byID  map[string]*models.Summary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byURL: make(map[string]*models.Summary),
		byID:  make(map[string]*models.Summary),
	}
}

func (r *fakeRepo) Save(ctx context.Context, s *models.Summary) error {
	copied := *s
	r.byURL[s.URL] = &copied
	r.byID[s.ID] = &copied
	return nil
}

func (r *fakeRepo) Find(ctx context.Context, id string) (*models.Summary, error) {
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, errors.NotFound("fakeRepo.Find", nil, "Summary not found")
}

func (r *fakeRepo) FindByURL(ctx context.Context, url string) (*models.Summary, error) {
	if s, ok := r.byURL[url]; ok {
		return s, nil
	}
	return nil, errors.NotFound("fakeRepo.FindByURL", nil, "Summary not found")
}

type fakeExtractor struct {
	doc   *models.Document
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*models.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type fakeSummarizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, doc *models.Document, opts summarizer.Options) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newTestService(repo *fakeRepo, ext *fakeExtractor, sum *fakeSummarizer) *service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &service{
		repo:       repo,
		extractor:  ext,
		summarizer: sum,
		validator:  validation.NewValidator(&config.Config{}),
		config:     Config{Model: "gpt-4o-mini"},
		logger:     logger,
	}
}

func TestSummarize(t *testing.T) {
	repo := newFakeRepo()
	ext := &fakeExtractor{doc: &models.Document{
		SourceURL: "https://example.com/post",
		Kind:      models.KindPage,
		Title:     "Example Post",
		Text:      "body text",
	}}
	sum := &fakeSummarizer{text: "A short summary."}
	svc := newTestService(repo, ext, sum)

	got, err := svc.Summarize(context.Background(), "https://example.com/post", summarizer.Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if got.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.Text != "A short summary." {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", got.Model)
	}
	if got.Title != "Example Post" {
		t.Errorf("Title = %q", got.Title)
	}

	stored, err := repo.FindByURL(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("expected stored summary, got %v", err)
	}
	if stored.Status != models.StatusCompleted {
		t.Errorf("stored Status = %q, want completed", stored.Status)
	}
}

func TestSummarizeServesCachedResult(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now()
	repo.Save(context.Background(), &models.Summary{
		ID:        "cached-id",
		URL:       "https://example.com/post",
		Kind:      models.KindPage,
		Status:    models.StatusCompleted,
		Text:      "Cached summary.",
		Model:     "gpt-4o-mini",
		CreatedAt: now,
		UpdatedAt: now,
	})

	ext := &fakeExtractor{}
	sum := &fakeSummarizer{}
	svc := newTestService(repo, ext, sum)

	got, err := svc.Summarize(context.Background(), "https://example.com/post", summarizer.Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.Text != "Cached summary." {
		t.Errorf("Text = %q, want cached", got.Text)
	}
	if ext.calls != 0 || sum.calls != 0 {
		t.Errorf("cache hit still ran pipeline: extractor=%d summarizer=%d", ext.calls, sum.calls)
	}
}

func TestSummarizeIgnoresCacheFromOtherModel(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now()
	repo.Save(context.Background(), &models.Summary{
		ID:        "cached-id",
		URL:       "https://example.com/post",
		Status:    models.StatusCompleted,
		Text:      "Stale summary.",
		Model:     "older-model",
		CreatedAt: now,
		UpdatedAt: now,
	})

	ext := &fakeExtractor{doc: &models.Document{
		SourceURL: "https://example.com/post",
		Kind:      models.KindPage,
		Text:      "body",
	}}
	sum := &fakeSummarizer{text: "Fresh summary."}
	svc := newTestService(repo, ext, sum)

	got, err := svc.Summarize(context.Background(), "https://example.com/post", summarizer.Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.Text != "Fresh summary." {
		t.Errorf("Text = %q, want fresh", got.Text)
	}
	if sum.calls != 1 {
		t.Errorf("summarizer called %d times, want 1", sum.calls)
	}
}

func TestSummarizeInvalidURL(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeExtractor{}, &fakeSummarizer{})

	_, err := svc.Summarize(context.Background(), "ftp://example.com", summarizer.Options{})
	if !errors.IsInvalidInput(err) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestSummarizeRecordsExtractionFailure(t *testing.T) {
	repo := newFakeRepo()
	ext := &fakeExtractor{err: errors.NoCaptions("test", nil, "No captions are available for this video")}
	svc := newTestService(repo, ext, &fakeSummarizer{})

	_, err := svc.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ", summarizer.Options{})
	if !errors.IsNoCaptions(err) {
		t.Fatalf("expected NoCaptionsAvailable, got %v", err)
	}

	stored, findErr := repo.FindByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if findErr != nil {
		t.Fatalf("expected failed record stored, got %v", findErr)
	}
	if stored.Status != models.StatusFailed {
		t.Errorf("stored Status = %q, want failed", stored.Status)
	}
	if stored.Error == "" {
		t.Error("stored Error is empty")
	}
}

func TestSummarizeRecordsSummarizerFailure(t *testing.T) {
	repo := newFakeRepo()
	ext := &fakeExtractor{doc: &models.Document{SourceURL: "https://example.com", Kind: models.KindPage, Text: "body"}}
	sum := &fakeSummarizer{err: errors.SummarizationFailed("test", nil, "Failed to summarize the content")}
	svc := newTestService(repo, ext, sum)

	_, err := svc.Summarize(context.Background(), "https://example.com/post", summarizer.Options{})
	if !errors.IsSummarizationFailed(err) {
		t.Fatalf("expected SummarizationFailed, got %v", err)
	}

	stored, _ := repo.FindByURL(context.Background(), "https://example.com/post")
	if stored == nil || stored.Status != models.StatusFailed {
		t.Error("failed summarization not recorded")
	}
}

func TestGet(t *testing.T) {
	repo := newFakeRepo()
	repo.Save(context.Background(), &models.Summary{ID: "abc", URL: "https://example.com"})
	svc := newTestService(repo, &fakeExtractor{}, &fakeSummarizer{})

	if _, err := svc.Get(context.Background(), "abc"); err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.IsInvalidInput(err) {
		t.Errorf("Get(\"\") expected InvalidInput, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.IsNotFound(err) {
		t.Errorf("Get(missing) expected NotFound, got %v", err)
	}
}
