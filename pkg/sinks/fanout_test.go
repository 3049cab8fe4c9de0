package sinks

import (
	"context"
	"errors"
	"testing"
)

type stubSink struct {
	id    string
	typ   string
	err   error
	calls int
}

func (s *stubSink) ID() string   { return s.id }
func (s *stubSink) Type() string { return s.typ }
func (s *stubSink) Record(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestFanoutRecordAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Sink{
		&stubSink{id: "ok", typ: "http"},
		&stubSink{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Record(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestFanoutNilSafe(t *testing.T) {
	var fanout *Fanout
	count, err := fanout.Record(context.Background(), Event{})
	if count != 0 || err != nil {
		t.Fatalf("nil fanout should be a no-op, got %d %v", count, err)
	}
	if fanout.Size() != 0 {
		t.Fatalf("nil fanout size should be 0")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	built, err := BuildAll(context.Background(), reg, []SinkConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPSinkConfig{URL: "https://example.com"}},
		{ID: "log", Type: TypeLog},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(built) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(built))
	}
}
