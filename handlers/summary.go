package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	"github.com/omar99elnemr/summarizeit/summarizer"
	"github.com/omar99elnemr/summarizeit/summary"
	"github.com/omar99elnemr/summarizeit/validation"
	"golang.org/x/time/rate"
)

type SummaryHandler struct {
	service   summary.Service
	validator *validation.Validator
	limiter   *rate.Limiter
}

func NewSummaryHandler(service summary.Service, validator *validation.Validator, limiter *rate.Limiter) *SummaryHandler {
	return &SummaryHandler{
		service:   service,
		validator: validator,
		limiter:   limiter,
	}
}

// Summarize handles POST /api/summarize. It accepts a url form value or a
// JSON body and runs the extract-then-summarize cycle synchronously.
func (h *SummaryHandler) Summarize(c *fiber.Ctx) error {
	const op = "SummaryHandler.Summarize"

	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	url := h.validator.ExtractURL(req.URL)
	if url == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	if h.limiter != nil && !h.limiter.Allow() {
		return errors.RateLimitExceeded(op)
	}

	record, err := h.service.Summarize(c.Context(), url, summarizer.Options{
		Language: req.Language,
		Style:    req.Style,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.NewSummaryResponse(record),
	})
}

// GetSummary handles GET /api/summaries/:id.
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	const op = "SummaryHandler.GetSummary"

	id := c.Params("id")
	if id == "" {
		return errors.InvalidInput(op, nil, "ID is required")
	}

	record, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.NewSummaryResponse(record),
	})
}

func (h *SummaryHandler) parseRequest(c *fiber.Ctx) (*models.SummarizeRequest, error) {
	const op = "SummaryHandler.parseRequest"

	req := &models.SummarizeRequest{
		URL:      c.FormValue("url"),
		Language: c.FormValue("language"),
		Style:    c.FormValue("style"),
	}
	if req.URL != "" {
		return req, nil
	}

	if err := c.BodyParser(req); err != nil {
		return nil, errors.InvalidInput(op, err, "Invalid request body")
	}
	return req, nil
}
