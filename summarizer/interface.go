package summarizer

import (
	"context"
	"time"

	"github.com/omar99elnemr/summarizeit/models"
)

type Service interface {
	// Summarize produces a short natural-language summary of the document.
	Summarize(ctx context.Context, doc *models.Document, opts Options) (string, error)
}

// Options carries per-request overrides for the summary output.
type Options struct {
	// Language selects the output language. Empty means the model answers in
	// the language of the content.
	Language string

	// Style is a free-form hint, e.g. "bullet points" or "formal".
	Style string
}

type Config struct {
	Model       string
	TargetWords int

	// Retry policy for transient failures against the model API.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}
