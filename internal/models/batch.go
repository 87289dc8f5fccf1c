package models

import "time"

type BatchResponse struct {
	JobID       string            `json:"job_id"`
	Status      string            `json:"status"`
	Documents   []StampedDocument `json:"documents,omitempty"`
	Failed      []BatchFailure    `json:"failed,omitempty"`
	ProcessedAt time.Time         `json:"processed_at,omitempty"`
}

type BatchFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadFile is one in-memory document headed for object storage.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
