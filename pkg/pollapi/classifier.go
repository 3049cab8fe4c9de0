package pollapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ResponseSpec describes how one operation interprets a response.
// StatusKinds is the full status-to-kind table for the operation;
// statuses absent from the table classify as UnexpectedStatus.
type ResponseSpec struct {
	RequiredFields []string
	StatusKinds    map[int]FailureKind
	// StrictFields turns missing required fields on a 200 into a hard
	// MalformedResponse failure instead of a diagnostic.
	StrictFields bool
	// WantList requires the success body to be a JSON array and checks
	// required fields on every element.
	WantList bool
}

// Result is the classified outcome of a single response. Exactly one of
// Value and Failure is set; Missing lists required fields absent from a
// lenient success body.
type Result struct {
	Value   json.RawMessage
	Missing []string
	Failure *Failure
}

// ValidationSentinel is the detail used for a 422 with an empty body.
const ValidationSentinel = "Validation error"

// baseStatusKinds are the statuses every operation interprets the same way.
func baseStatusKinds() map[int]FailureKind {
	return map[int]FailureKind{
		http.StatusUnauthorized:        KindUnauthorized,
		http.StatusUnprocessableEntity: KindValidationError,
	}
}

// withStatusKinds layers operation-specific statuses over the shared base.
func withStatusKinds(extra map[int]FailureKind) map[int]FailureKind {
	kinds := baseStatusKinds()
	for status, kind := range extra {
		kinds[status] = kind
	}
	return kinds
}

// Classify translates a (status, body) pair into a Result. It is pure
// and total: every input maps to exactly one outcome and nothing
// escapes as a panic or raw error.
func Classify(spec ResponseSpec, status int, body []byte) Result {
	if status == http.StatusOK {
		return classifySuccess(spec, body)
	}

	kind, ok := spec.StatusKinds[status]
	if !ok {
		return Result{Failure: &Failure{
			Kind:   KindUnexpectedStatus,
			Detail: bodyDetail(body, status),
			Status: status,
		}}
	}

	detail := bodyDetail(body, status)
	if status == http.StatusUnprocessableEntity && len(strings.TrimSpace(string(body))) == 0 {
		detail = ValidationSentinel
	}

	return Result{Failure: &Failure{Kind: kind, Detail: detail, Status: status}}
}

// classifySuccess interprets a 200 body. Server data is forwarded
// unchanged; missing required fields are a diagnostic unless the
// operation opts into the strict policy.
func classifySuccess(spec ResponseSpec, body []byte) Result {
	var missing []string

	if spec.WantList {
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return malformed(fmt.Sprintf("decode response body: %v", err))
		}
		seen := make(map[string]bool)
		for _, item := range items {
			for _, field := range missingFields(spec.RequiredFields, item) {
				if !seen[field] {
					seen[field] = true
					missing = append(missing, field)
				}
			}
		}
	} else {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return malformed(fmt.Sprintf("decode response body: %v", err))
		}
		missing = missingFields(spec.RequiredFields, obj)
	}

	if len(missing) > 0 && spec.StrictFields {
		return malformed("response missing required fields: " + strings.Join(missing, ", "))
	}

	value := make(json.RawMessage, len(body))
	copy(value, body)
	return Result{Value: value, Missing: missing}
}

func malformed(detail string) Result {
	return Result{Failure: &Failure{
		Kind:   KindMalformedResponse,
		Detail: detail,
		Status: http.StatusOK,
	}}
}

func missingFields(required []string, obj map[string]json.RawMessage) []string {
	var missing []string
	for _, field := range required {
		if _, ok := obj[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// bodyDetail extracts a human-readable detail string from an error body.
func bodyDetail(body []byte, status int) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return http.StatusText(status)
	}
	return s
}

// ClassifyTransport maps a transport-level error (no status code exists
// yet) to a typed failure. Deadline and timeout errors become Timeout;
// everything else, connection refused included, becomes Unreachable.
func ClassifyTransport(err error) *Failure {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: KindTimeout, Detail: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{Kind: KindTimeout, Detail: err.Error()}
	}

	return &Failure{Kind: KindUnreachable, Detail: err.Error()}
}
