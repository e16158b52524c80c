package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
)

// ExtractionState describes where a job is in its lifecycle.
type ExtractionState string

const (
	StateRunning   ExtractionState = "running"
	StateSucceeded ExtractionState = "succeeded"
	StateFailed    ExtractionState = "failed"
	StateCancelled ExtractionState = "cancelled"
)

// Terminal reports whether the state is final.
func (s ExtractionState) Terminal() bool {
	return s != StateRunning
}

// Extraction is the caller-facing view of one extraction job.
type Extraction struct {
	ID        uuid.UUID       `json:"id"`
	Path      string          `json:"path"`
	StartPage int             `json:"start_page"`
	EndPage   int             `json:"end_page"`
	PageCount int             `json:"page_count"`
	State     ExtractionState `json:"state"`
	Progress  int             `json:"progress"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExtractionCreate represents a request to start an extraction
type ExtractionCreate struct {
	Path      string `json:"path" binding:"required"`
	StartPage int    `json:"start_page" binding:"required,min=1"`
	EndPage   int    `json:"end_page" binding:"required,min=1"`
}

// ExtractionResult is the ranked outcome of a succeeded extraction.
type ExtractionResult struct {
	TotalWords  int                 `json:"total_words"`
	UniqueWords int                 `json:"unique_words"`
	PagesFailed int                 `json:"pages_failed"`
	Words       []extract.WordCount `json:"words"`
}
