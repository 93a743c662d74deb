package extractor

import (
	"context"
	"time"

	"github.com/omar99elnemr/summarizeit/models"
)

type Service interface {
	// Extract converts a URL into a plain-text document. Video URLs yield the
	// caption transcript, everything else the readable page body.
	Extract(ctx context.Context, url string) (*models.Document, error)
}

type Config struct {
	// FetchTimeout bounds a single page or caption fetch.
	FetchTimeout time.Duration

	// MaxContentChars truncates the extracted text.
	MaxContentChars int

	// MaxBodyBytes bounds how much of a response body is read.
	MaxBodyBytes int64

	// CaptionLanguage selects the caption track for video URLs.
	CaptionLanguage string

	UserAgent string
}
