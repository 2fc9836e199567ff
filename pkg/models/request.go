package models

// Priority controls whether a request may bypass the rate limiter.
type Priority string

const (
	PriorityNormal   Priority = "normal"
	PriorityCritical Priority = "critical"
)

// GenerationRequest is an inbound request for intervention content.
type GenerationRequest struct {
	Kind     string            `json:"intervention_kind"`
	Context  map[string]string `json:"context"`
	Priority Priority          `json:"priority,omitempty"`
}
