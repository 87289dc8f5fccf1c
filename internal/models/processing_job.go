package models

import "time"

// ProcessingJob stamps a document fetched from DocumentURL or, when
// DocumentPath is set, from the storage bucket.
type ProcessingJob struct {
	ID           string           `json:"id"`
	DocumentURL  string           `json:"document_url,omitempty" binding:"required_without=DocumentPath,omitempty,url"`
	DocumentPath string           `json:"document_path,omitempty"`
	Options      WatermarkOptions `json:"options"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	Result       *StampedDocument `json:"result,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Source names where the job's document comes from.
func (j *ProcessingJob) Source() string {
	if j.DocumentPath != "" {
		return "storage:" + j.DocumentPath
	}
	return j.DocumentURL
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusPartial    = "partial"
)
