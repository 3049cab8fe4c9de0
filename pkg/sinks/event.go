package sinks

import "time"

// OutcomeSuccess is the outcome value recorded for a successful call.
const OutcomeSuccess = "success"

// Event is one diagnostics record per API call: which operation ran,
// where it went, and how the response classified.
type Event struct {
	Operation     string    `json:"operation"`
	Method        string    `json:"method"`
	URL           string    `json:"url"`
	Status        int       `json:"status,omitempty"`
	Outcome       string    `json:"outcome"`
	Detail        string    `json:"detail,omitempty"`
	MissingFields []string  `json:"missing_fields,omitempty"`
	ElapsedMs     int64     `json:"elapsed_ms"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// NewEvent constructs an Event for the given operation and request.
func NewEvent(operation, method, url string) Event {
	return Event{
		Operation:  operation,
		Method:     method,
		URL:        url,
		RecordedAt: time.Now().UTC(),
	}
}
