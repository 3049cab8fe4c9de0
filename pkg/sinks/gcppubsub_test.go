package sinks

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestGCPPubSubSinkRecords(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "topic-1"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	sink, err := newGCPPubSubSink(ctx, SinkConfig{
		ID:   "gcp",
		Type: TypeGCPPubSub,
		GCP: &GCPSinkConfig{
			ProjectID: "test-project",
			Topic:     "topic-1",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubSink: %v", err)
	}

	err = sink.Record(ctx, Event{
		Operation: "list_polls",
		Outcome:   OutcomeSuccess,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
}
