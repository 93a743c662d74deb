package summarizer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	"github.com/openai/openai-go/v3"
	"github.com/sirupsen/logrus"
)

type fakeGenerator struct {
	calls     int
	failUntil int // attempts up to and including this index fail
	err       error
	summary   string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.calls <= f.failUntil {
		return "", f.err
	}
	return f.summary, nil
}

func newFakeService(gen textGenerator) *service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &service{
		gen: gen,
		config: Config{
			Model:          "test-model",
			TargetWords:    300,
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     5 * time.Millisecond,
		},
		logger: logger,
	}
}

func testDoc(text string) *models.Document {
	return &models.Document{
		SourceURL: "https://example.com/post",
		Kind:      models.KindPage,
		Title:     "Example Post",
		Text:      text,
	}
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{summary: "A short summary."}
	svc := newFakeService(gen)

	got, err := svc.Summarize(context.Background(), testDoc("Some long article text."), Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "A short summary." {
		t.Errorf("Summarize() = %q", got)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestSummarizeEmptyDocument(t *testing.T) {
	gen := &fakeGenerator{summary: "should never be used"}
	svc := newFakeService(gen)

	got, err := svc.Summarize(context.Background(), testDoc("   \n\t "), Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != EmptyDocumentSummary {
		t.Errorf("Summarize() = %q, want fallback", got)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for empty document, want 0", gen.calls)
	}
}

func TestSummarizeRetriesTransientFailure(t *testing.T) {
	gen := &fakeGenerator{
		failUntil: 2,
		err:       fmt.Errorf("connection reset by peer"),
		summary:   "Recovered summary.",
	}
	svc := newFakeService(gen)

	got, err := svc.Summarize(context.Background(), testDoc("text"), Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "Recovered summary." {
		t.Errorf("Summarize() = %q", got)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}
}

func TestSummarizeExhaustsRetryBudget(t *testing.T) {
	gen := &fakeGenerator{
		failUntil: 100,
		err:       fmt.Errorf("i/o timeout"),
	}
	svc := newFakeService(gen)

	_, err := svc.Summarize(context.Background(), testDoc("text"), Options{})
	if err == nil {
		t.Fatal("Summarize() expected error after exhausted retries")
	}
	if !errors.IsSummarizationFailed(err) {
		t.Errorf("expected SummarizationFailed, got %v", err)
	}
	if gen.calls != svc.config.MaxAttempts {
		t.Errorf("generator called %d times, want %d", gen.calls, svc.config.MaxAttempts)
	}
}

func apiError(status int) error {
	req := httptest.NewRequest("POST", "https://api.openai.com/v1/chat/completions", nil)
	return &openai.Error{
		StatusCode: status,
		Request:    req,
		Response: &http.Response{
			StatusCode: status,
			Proto:      "HTTP/1.1",
			ProtoMajor: 1,
			ProtoMinor: 1,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		},
	}
}

func TestSummarizeAPIErrorStatuses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int
	}{
		{"auth rejection fails fast", 401, 1},
		{"bad request fails fast", 400, 1},
		{"rate limited retries", 429, 3},
		{"request timeout retries", 408, 3},
		{"server error retries", 500, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{failUntil: 100, err: apiError(tt.status)}
			svc := newFakeService(gen)

			_, err := svc.Summarize(context.Background(), testDoc("text"), Options{})
			if err == nil {
				t.Fatalf("Summarize() expected error for status %d", tt.status)
			}
			if !errors.IsSummarizationFailed(err) {
				t.Errorf("expected SummarizationFailed, got %v", err)
			}
			if gen.calls != tt.wantCalls {
				t.Errorf("generator called %d times for status %d, want %d", gen.calls, tt.status, tt.wantCalls)
			}
		})
	}
}

func TestSummarizeFailsFastOnContextCancel(t *testing.T) {
	gen := &fakeGenerator{failUntil: 100, err: context.Canceled}
	svc := newFakeService(gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Summarize(ctx, testDoc("text"), Options{})
	if err == nil {
		t.Fatal("Summarize() expected error for cancelled context")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times after cancellation, want 1", gen.calls)
	}
}

func TestBuildPrompt(t *testing.T) {
	svc := newFakeService(&fakeGenerator{})
	doc := testDoc("Body text here.")

	prompt := svc.buildPrompt(doc, doc.Text, Options{Language: "German", Style: "bullet points"})

	for _, want := range []string{
		"300 words",
		"German",
		"bullet points",
		"Example Post",
		"https://example.com/post",
		"Body text here.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
