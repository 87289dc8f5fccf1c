package models

import "time"

type StampedDocument struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name,omitempty"`
	OriginalURL  string    `json:"original_url,omitempty"`
	InputFormat  string    `json:"input_format"`
	OutputFormat string    `json:"output_format"`
	ContentType  string    `json:"content_type"`
	URL          string    `json:"url,omitempty"`
	FileSize     int64     `json:"file_size"`
	ProcessedAt  time.Time `json:"processed_at"`
	Cached       bool      `json:"cached,omitempty"`
}
