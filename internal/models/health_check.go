package models

import "time"

// HealthCheck reports dependency status and the document families this
// instance can stamp.
type HealthCheck struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Strategies []string          `json:"strategies"`
}
