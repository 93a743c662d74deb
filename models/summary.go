package models

import (
	"time"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// DocumentKind classifies the source URL.
type DocumentKind string

const (
	KindVideo DocumentKind = "video"
	KindPage  DocumentKind = "page"
)

// Document is the plain-text content extracted from a URL.
type Document struct {
	SourceURL string       `json:"source_url"`
	Kind      DocumentKind `json:"kind"`
	Title     string       `json:"title,omitempty"`
	Text      string       `json:"text"`
}

// Summary is a cached summarization result for a single URL.
type Summary struct {
	ID        string       `json:"id"`
	URL       string       `json:"url"`
	Kind      DocumentKind `json:"kind"`
	Title     string       `json:"title,omitempty"`
	Status    Status       `json:"status"`
	Text      string       `json:"summary,omitempty"`
	Model     string       `json:"model,omitempty"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Status check methods
func (s *Summary) IsProcessing() bool { return s.Status == StatusProcessing }
func (s *Summary) IsCompleted() bool  { return s.Status == StatusCompleted }
func (s *Summary) IsFailed() bool     { return s.Status == StatusFailed }

// IsStale checks if the record has been stuck in processing for too long
func (s *Summary) IsStale(timeout time.Duration) bool {
	if s.Status != StatusProcessing {
		return false
	}
	return time.Since(s.UpdatedAt) > timeout
}
