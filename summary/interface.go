package summary

import (
	"context"

	"github.com/omar99elnemr/summarizeit/models"
	"github.com/omar99elnemr/summarizeit/summarizer"
)

type Service interface {
	// Summarize runs the full extract-then-summarize cycle for a URL,
	// returning a cached result when one exists for the same model.
	Summarize(ctx context.Context, url string, opts summarizer.Options) (*models.Summary, error)

	// Get retrieves a stored summary by ID.
	Get(ctx context.Context, id string) (*models.Summary, error)
}

type Config struct {
	// Model invalidates cached summaries produced by a different model.
	Model string
}
