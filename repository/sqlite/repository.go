package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
)

const (
	insertQuery = `
        INSERT INTO summaries (
            id, url, kind, title, status, summary,
            model, error, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(url) DO UPDATE SET
            id = excluded.id,
            kind = excluded.kind,
            title = excluded.title,
            status = excluded.status,
            summary = excluded.summary,
            model = excluded.model,
            error = excluded.error,
            updated_at = excluded.updated_at
    `

	getQuery = `
        SELECT id, url, kind, title, status, summary,
               model, error, created_at, updated_at
        FROM summaries WHERE id = ?
    `

	getByURLQuery = `
        SELECT id, url, kind, title, status, summary,
               model, error, created_at, updated_at
        FROM summaries WHERE url = ?
    `
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func (r *Repository) Save(ctx context.Context, summary *models.Summary) error {
	const op = "SQLiteRepository.Save"

	for i := 0; i < 3; i++ { // Simple retry logic for sqlite lock contention
		err := r.save(ctx, summary)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return errors.Internal(op, err, "Failed to save summary")
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return errors.Internal(op, nil, "Failed after retries")
}

func (r *Repository) save(ctx context.Context, summary *models.Summary) error {
	_, err := r.db.ExecContext(ctx, insertQuery,
		summary.ID,
		summary.URL,
		string(summary.Kind),
		summary.Title,
		string(summary.Status),
		summary.Text,
		summary.Model,
		summary.Error,
		summary.CreatedAt,
		summary.UpdatedAt,
	)
	return err
}

func (r *Repository) Find(ctx context.Context, id string) (*models.Summary, error) {
	const op = "SQLiteRepository.Find"
	return r.scanOne(ctx, op, getQuery, id)
}

func (r *Repository) FindByURL(ctx context.Context, url string) (*models.Summary, error) {
	const op = "SQLiteRepository.FindByURL"
	return r.scanOne(ctx, op, getByURLQuery, url)
}

func (r *Repository) scanOne(ctx context.Context, op, query, arg string) (*models.Summary, error) {
	summary := &models.Summary{}
	var kind, status string
	var title, text, model, errMsg sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&summary.ID,
		&summary.URL,
		&kind,
		&title,
		&status,
		&text,
		&model,
		&errMsg,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Summary not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query summary")
	}

	summary.Kind = models.DocumentKind(kind)
	summary.Status = models.Status(status)
	summary.Title = title.String
	summary.Text = text.String
	summary.Model = model.String
	summary.Error = errMsg.String
	return summary, nil
}

func isLockError(err error) bool {
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "busy")
}
