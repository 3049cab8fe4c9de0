package sinks

import "context"

// Sink receives diagnostics events and forwards them downstream
// (log, HTTP endpoint, SQS, SNS, Pub/Sub).
type Sink interface {
	ID() string
	Type() string
	Record(ctx context.Context, evt Event) error
}
