// internal/model/event.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventJobStarted      EventType = "JOB_STARTED"
	EventJobCompleted    EventType = "JOB_COMPLETED"
	EventJobFailed       EventType = "JOB_FAILED"
	EventTransportSent   EventType = "TRANSPORT_SENT"
	EventTransportFailed EventType = "TRANSPORT_FAILED"
)

// JobEventTypes lists every event a job can emit
var JobEventTypes = []EventType{
	EventJobStarted,
	EventJobCompleted,
	EventJobFailed,
	EventTransportSent,
	EventTransportFailed,
}

// JSONObject is a free-form event payload
type JSONObject map[string]interface{}

// JobEvent represents an event in the life of a print job
type JobEvent struct {
	ID        uuid.UUID  `json:"id"`
	EventType EventType  `json:"event_type"`
	JobID     uuid.UUID  `json:"job_id"`
	Transport string     `json:"transport,omitempty"`
	Data      JSONObject `json:"data,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Severity  string     `json:"severity"` // INFO, ERROR
}

// NewJobEvent creates an event stamped with a fresh ID and the current time
func NewJobEvent(eventType EventType, jobID uuid.UUID, transport string, data JSONObject) JobEvent {
	severity := "INFO"
	if eventType == EventJobFailed || eventType == EventTransportFailed {
		severity = "ERROR"
	}
	return JobEvent{
		ID:        uuid.New(),
		EventType: eventType,
		JobID:     jobID,
		Transport: transport,
		Data:      data,
		Timestamp: time.Now(),
		Severity:  severity,
	}
}
