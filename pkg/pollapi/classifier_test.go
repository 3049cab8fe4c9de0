package pollapi

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func TestClassifyIsTotalAndDeterministic(t *testing.T) {
	spec := voteSpec(1, 2).Response
	body := []byte(`{"detail":"whatever"}`)

	for _, status := range []int{200, 400, 401, 404, 422, 500} {
		first := Classify(spec, status, body)
		second := Classify(spec, status, body)

		if (first.Failure == nil) != (second.Failure == nil) {
			t.Fatalf("status %d: non-deterministic outcome", status)
		}
		if first.Failure == nil && first.Value == nil {
			t.Fatalf("status %d: result has neither value nor failure", status)
		}
		if first.Failure != nil && first.Value != nil {
			t.Fatalf("status %d: result has both value and failure", status)
		}
		if first.Failure != nil && second.Failure != nil && first.Failure.Kind != second.Failure.Kind {
			t.Fatalf("status %d: kind changed between calls", status)
		}
	}
}

func TestClassifySuccessForwardsBodyUnchanged(t *testing.T) {
	body := []byte(`{"id":1,"question":"Q","created_at":"2024-01-01T00:00:00Z","owner_id":5,"options":[{"id":1,"text":"A","poll_id":1}]}`)
	spec := createPollSpec("Q", []string{"A"}).Response

	result := Classify(spec, http.StatusOK, body)
	if result.Failure != nil {
		t.Fatalf("expected success, got failure: %v", result.Failure)
	}
	if string(result.Value) != string(body) {
		t.Fatalf("body was mutated:\n got %s\nwant %s", result.Value, body)
	}
	if len(result.Missing) != 0 {
		t.Fatalf("expected no missing fields, got %v", result.Missing)
	}
}

func TestClassifyLenientMissingFieldsStillSucceeds(t *testing.T) {
	spec := voteSpec(1, 2).Response

	result := Classify(spec, http.StatusOK, []byte(`{"id":7,"option_id":2}`))
	if result.Failure != nil {
		t.Fatalf("lenient policy must not fail on missing fields: %v", result.Failure)
	}
	want := []string{"user_id", "created_at"}
	if !reflect.DeepEqual(result.Missing, want) {
		t.Fatalf("missing fields = %v, want %v", result.Missing, want)
	}
}

func TestClassifyStrictMissingFieldsFails(t *testing.T) {
	spec := pollResultsSpec(1).Response

	result := Classify(spec, http.StatusOK, []byte(`{"id":1,"question":"Q"}`))
	if result.Failure == nil {
		t.Fatalf("strict policy must fail on missing fields")
	}
	if result.Failure.Kind != KindMalformedResponse {
		t.Fatalf("kind = %s, want %s", result.Failure.Kind, KindMalformedResponse)
	}
}

func TestClassifyNonJSONBodyOn200(t *testing.T) {
	spec := registerSpec("u", "p").Response

	result := Classify(spec, http.StatusOK, []byte("<html>not json</html>"))
	if result.Failure == nil {
		t.Fatalf("expected failure for non-JSON 200 body")
	}
	if result.Failure.Kind != KindMalformedResponse {
		t.Fatalf("kind = %s, want %s", result.Failure.Kind, KindMalformedResponse)
	}
}

func TestClassifyUnauthorizedUniformAcrossOperations(t *testing.T) {
	body := []byte(`{"detail":"Could not validate credentials"}`)

	for _, spec := range []ResponseSpec{
		createPollSpec("Q", []string{"A", "B"}).Response,
		voteSpec(1, 2).Response,
	} {
		result := Classify(spec, http.StatusUnauthorized, body)
		if result.Failure == nil || result.Failure.Kind != KindUnauthorized {
			t.Fatalf("401 should classify as %s, got %+v", KindUnauthorized, result.Failure)
		}
	}
}

func TestClassifyVoteNotFound(t *testing.T) {
	spec := voteSpec(1, 2).Response

	result := Classify(spec, http.StatusNotFound, []byte("Poll or option not found"))
	if result.Failure == nil {
		t.Fatalf("expected failure")
	}
	if result.Failure.Kind != KindNotFound {
		t.Fatalf("kind = %s, want %s", result.Failure.Kind, KindNotFound)
	}
	if result.Failure.Detail != "Poll or option not found" {
		t.Fatalf("detail = %q", result.Failure.Detail)
	}
}

func TestClassifyRegisterConflictAs400(t *testing.T) {
	spec := registerSpec("u", "p").Response

	result := Classify(spec, http.StatusBadRequest, []byte(`{"detail":"Username already registered"}`))
	if result.Failure == nil || result.Failure.Kind != KindValidationError {
		t.Fatalf("400 on register should be %s, got %+v", KindValidationError, result.Failure)
	}
}

func TestClassify404IsUnexpectedWhenNotInOperationTable(t *testing.T) {
	// Poll creation does not enumerate 404; it falls to the catch-all.
	spec := createPollSpec("Q", []string{"A", "B"}).Response

	result := Classify(spec, http.StatusNotFound, []byte("nope"))
	if result.Failure == nil || result.Failure.Kind != KindUnexpectedStatus {
		t.Fatalf("unlisted 404 should be %s, got %+v", KindUnexpectedStatus, result.Failure)
	}
}

func TestClassifyEmptyBody422UsesSentinel(t *testing.T) {
	spec := voteSpec(1, 2).Response

	result := Classify(spec, http.StatusUnprocessableEntity, []byte{})
	if result.Failure == nil || result.Failure.Kind != KindValidationError {
		t.Fatalf("422 should be %s, got %+v", KindValidationError, result.Failure)
	}
	if result.Failure.Detail != ValidationSentinel {
		t.Fatalf("detail = %q, want %q", result.Failure.Detail, ValidationSentinel)
	}
}

func TestClassifyListChecksFieldsPerItem(t *testing.T) {
	spec := listPollsSpec(0, 10).Response
	body := []byte(`[{"id":1,"question":"Q","created_at":"c","owner_id":1,"options":[]},{"id":2,"question":"Q2"}]`)

	result := Classify(spec, http.StatusOK, body)
	if result.Failure != nil {
		t.Fatalf("expected lenient success, got %v", result.Failure)
	}
	want := []string{"created_at", "owner_id", "options"}
	if !reflect.DeepEqual(result.Missing, want) {
		t.Fatalf("missing = %v, want %v", result.Missing, want)
	}
}

func TestClassifyListRejectsObjectBody(t *testing.T) {
	spec := listPollsSpec(0, 10).Response

	result := Classify(spec, http.StatusOK, []byte(`{"id":1}`))
	if result.Failure == nil || result.Failure.Kind != KindMalformedResponse {
		t.Fatalf("object body for list should be %s, got %+v", KindMalformedResponse, result.Failure)
	}
}

func TestClassifyUnexpectedStatusKeepsBodyDetail(t *testing.T) {
	spec := registerSpec("u", "p").Response

	result := Classify(spec, http.StatusBadGateway, []byte("upstream down"))
	if result.Failure == nil || result.Failure.Kind != KindUnexpectedStatus {
		t.Fatalf("expected %s, got %+v", KindUnexpectedStatus, result.Failure)
	}
	if result.Failure.Detail != "upstream down" {
		t.Fatalf("detail = %q", result.Failure.Detail)
	}
	if result.Failure.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", result.Failure.Status)
	}
}

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	if f := ClassifyTransport(context.DeadlineExceeded); f.Kind != KindTimeout {
		t.Fatalf("deadline exceeded should be %s, got %s", KindTimeout, f.Kind)
	}
	if f := ClassifyTransport(fakeTimeoutErr{}); f.Kind != KindTimeout {
		t.Fatalf("net timeout should be %s, got %s", KindTimeout, f.Kind)
	}
	if f := ClassifyTransport(errors.New("connection refused")); f.Kind != KindUnreachable {
		t.Fatalf("generic transport error should be %s, got %s", KindUnreachable, f.Kind)
	}
	if f := ClassifyTransport(nil); f != nil {
		t.Fatalf("nil error should classify to nil, got %+v", f)
	}
	if f := ClassifyTransport(errors.New("x")); f.Status != 0 {
		t.Fatalf("transport failures carry no status, got %d", f.Status)
	}
}
