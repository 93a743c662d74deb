package repository

import (
	"context"

	"github.com/omar99elnemr/summarizeit/models"
)

type SummaryRepository interface {
	Save(ctx context.Context, summary *models.Summary) error
	Find(ctx context.Context, id string) (*models.Summary, error)
	FindByURL(ctx context.Context, url string) (*models.Summary, error)
}
