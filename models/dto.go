package models

// SummarizeRequest represents the incoming request for URL summarization
type SummarizeRequest struct {
	URL      string `json:"url"`
	Language string `json:"language,omitempty"`
	Style    string `json:"style,omitempty"`
}

// SummaryResponse represents the API response
type SummaryResponse struct {
	ID      string       `json:"id"`
	URL     string       `json:"url"`
	Kind    DocumentKind `json:"kind"`
	Title   string       `json:"title,omitempty"`
	Status  Status       `json:"status"`
	Summary string       `json:"summary,omitempty"`
	Model   string       `json:"model,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// NewSummaryResponse creates a response from a summary model
func NewSummaryResponse(s *Summary) *SummaryResponse {
	return &SummaryResponse{
		ID:      s.ID,
		URL:     s.URL,
		Kind:    s.Kind,
		Title:   s.Title,
		Status:  s.Status,
		Summary: s.Text,
		Model:   s.Model,
		Error:   s.Error,
	}
}
