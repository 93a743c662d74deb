package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/extractor"
	"github.com/omar99elnemr/summarizeit/models"
	"github.com/omar99elnemr/summarizeit/repository"
	"github.com/omar99elnemr/summarizeit/summarizer"
	"github.com/omar99elnemr/summarizeit/validation"
	"github.com/sirupsen/logrus"
)

type service struct {
	repo       repository.SummaryRepository
	extractor  extractor.Service
	summarizer summarizer.Service
	validator  *validation.Validator
	config     Config
	logger     *logrus.Logger
}

func NewService(
	repo repository.SummaryRepository,
	extractorService extractor.Service,
	summarizerService summarizer.Service,
	validator *validation.Validator,
	config Config,
) Service {
	return &service{
		repo:       repo,
		extractor:  extractorService,
		summarizer: summarizerService,
		validator:  validator,
		config:     config,
		logger:     logrus.StandardLogger(),
	}
}

func (s *service) Summarize(ctx context.Context, url string, opts summarizer.Options) (*models.Summary, error) {
	const op = "SummaryService.Summarize"
	logger := s.logger.WithField("url", url)

	if err := s.validator.ValidateURL(url); err != nil {
		logger.WithError(err).Warn("URL validation failed")
		return nil, err
	}

	// Completed summaries from the same model are served from cache so a
	// repeat request never re-bills the API.
	if cached, err := s.repo.FindByURL(ctx, url); err == nil {
		if cached.IsCompleted() && cached.Model == s.config.Model {
			logger.Info("Using cached summary")
			return cached, nil
		}
	}

	record := &models.Summary{
		ID:        uuid.New().String(),
		URL:       url,
		Kind:      validation.Classify(url),
		Status:    models.StatusProcessing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, errors.Internal(op, err, "Failed to save summary record")
	}

	logger.Info("Starting summarization")

	doc, err := s.extractor.Extract(ctx, url)
	if err != nil {
		s.markFailed(ctx, record, err)
		return nil, err
	}

	text, err := s.summarizer.Summarize(ctx, doc, opts)
	if err != nil {
		s.markFailed(ctx, record, err)
		return nil, err
	}

	record.Kind = doc.Kind
	record.Title = doc.Title
	record.Status = models.StatusCompleted
	record.Text = text
	record.Model = s.config.Model
	record.Error = ""
	record.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, record); err != nil {
		// The summary itself succeeded; a failed cache write only costs a
		// recompute on the next request.
		logger.WithError(err).Error("Failed to save completed summary")
	}

	logger.WithField("summary_chars", len(text)).Info("Summarization completed")
	return record, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Summary, error) {
	const op = "SummaryService.Get"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "ID is required")
	}

	record, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Internal(op, err, "Failed to get summary")
	}

	return record, nil
}

func (s *service) markFailed(ctx context.Context, record *models.Summary, cause error) {
	record.Status = models.StatusFailed
	record.Error = cause.Error()
	record.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.WithError(err).Error("Failed to save failed summary record")
	}
}
