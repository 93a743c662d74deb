package extractor

import (
	"context"
	"net/http"

	"github.com/omar99elnemr/summarizeit/models"
	"github.com/omar99elnemr/summarizeit/validation"
	"github.com/sirupsen/logrus"
)

type service struct {
	captions captionSource
	client   *http.Client
	config   Config
	logger   *logrus.Logger
}

func NewService(config Config) Service {
	return &service{
		captions: newYouTubeCaptions(),
		client:   &http.Client{Timeout: config.FetchTimeout},
		config:   config,
		logger:   logrus.StandardLogger(),
	}
}

func (s *service) Extract(ctx context.Context, url string) (*models.Document, error) {
	logger := s.logger.WithField("url", url)

	kind := validation.Classify(url)
	logger.WithField("kind", kind).Info("Starting extraction")

	var (
		doc *models.Document
		err error
	)
	switch kind {
	case models.KindVideo:
		doc, err = s.extractVideo(ctx, url)
	default:
		doc, err = s.extractPage(ctx, url)
	}

	if err != nil {
		logger.WithError(err).Warn("Extraction failed")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"title": doc.Title,
		"chars": len(doc.Text),
	}).Info("Extraction completed")

	return doc, nil
}
