package summarizer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	"github.com/sirupsen/logrus"
)

// EmptyDocumentSummary is returned when there is no text to summarize.
const EmptyDocumentSummary = "There is no textual content to summarize for this URL."

type service struct {
	gen    textGenerator
	config Config
	logger *logrus.Logger
}

func NewService(apiKey string, config Config) Service {
	return &service{
		gen:    newOpenAIGenerator(apiKey, config.Model),
		config: config,
		logger: logrus.StandardLogger(),
	}
}

func (s *service) Summarize(ctx context.Context, doc *models.Document, opts Options) (string, error) {
	const op = "SummarizerService.Summarize"
	logger := s.logger.WithField("url", doc.SourceURL)

	text := strings.TrimSpace(doc.Text)
	if text == "" {
		logger.Info("Document is empty, returning fallback summary")
		return EmptyDocumentSummary, nil
	}

	prompt := s.buildPrompt(doc, text, opts)

	summary, err := s.generateWithRetry(ctx, logger, prompt)
	if err != nil {
		return "", errors.SummarizationFailed(op, err, "Failed to summarize the content")
	}

	logger.WithField("summary_chars", len(summary)).Info("Summary generated")
	return summary, nil
}

func (s *service) buildPrompt(doc *models.Document, text string, opts Options) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Provide a summary of the following content in %d words.\n", s.config.TargetWords)
	if opts.Language != "" {
		fmt.Fprintf(&builder, "Write the summary in %s.\n", opts.Language)
	}
	if opts.Style != "" {
		fmt.Fprintf(&builder, "Style: %s.\n", opts.Style)
	}
	if doc.Title != "" {
		fmt.Fprintf(&builder, "Title: %s\n", doc.Title)
	}
	fmt.Fprintf(&builder, "Source: %s\n", doc.SourceURL)
	builder.WriteString("Content:\n")
	builder.WriteString(text)

	return builder.String()
}

// generateWithRetry wraps the remote call in a bounded retry loop with
// exponential backoff and jitter. Only transient failures are retried.
func (s *service) generateWithRetry(ctx context.Context, logger *logrus.Entry, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		summary, err := s.gen.Generate(ctx, prompt)
		if err == nil {
			if summary == "" {
				err = fmt.Errorf("model returned an empty summary")
			} else {
				return summary, nil
			}
		}
		lastErr = err

		if !isTransient(err) {
			logger.WithError(err).Error("Summarization failed with non-retryable error")
			return "", err
		}

		logger.WithFields(logrus.Fields{
			"attempt":     attempt,
			"maxAttempts": s.config.MaxAttempts,
			"error":       err,
		}).Warn("Summarization attempt failed")

		if attempt == s.config.MaxAttempts {
			break
		}

		backoff := time.Duration(float64(s.config.InitialBackoff) * math.Pow(2, float64(attempt-1)))
		if backoff > s.config.MaxBackoff {
			backoff = s.config.MaxBackoff
		}

		select {
		case <-time.After(backoff + time.Duration(rand.Int63n(int64(backoff/2)+1))):
			// Next attempt
		case <-ctx.Done():
			logger.WithError(ctx.Err()).Error("Context cancelled during summarization")
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("all %d attempts failed: %w", s.config.MaxAttempts, lastErr)
}
