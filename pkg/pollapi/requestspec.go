package pollapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// AuthMode controls whether a bearer token is attached to a request.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthOptional
	AuthRequired
)

// RequestSpec is the method/path/body/auth description of one outbound
// call. Specs are immutable configuration data; the per-operation
// differences between the five calls live entirely here.
type RequestSpec struct {
	Operation string
	Method    string
	Path      string
	Query     map[string]string
	Body      any
	Auth      AuthMode
	Timeout   time.Duration
	Response  ResponseSpec
}

func registerSpec(username, password string) RequestSpec {
	return RequestSpec{
		Operation: "register",
		Method:    http.MethodPost,
		Path:      "/register",
		Body: map[string]string{
			"username": username,
			"password": password,
		},
		Auth: AuthNone,
		Response: ResponseSpec{
			StatusKinds: withStatusKinds(map[int]FailureKind{
				// The server reports a username conflict as 400.
				http.StatusBadRequest: KindValidationError,
			}),
		},
	}
}

func createPollSpec(question string, options []string) RequestSpec {
	return RequestSpec{
		Operation: "create_poll",
		Method:    http.MethodPost,
		Path:      "/polls",
		Body: map[string]any{
			"question": question,
			"options":  options,
		},
		Auth: AuthRequired,
		Response: ResponseSpec{
			RequiredFields: []string{"id", "question", "created_at", "owner_id", "options"},
			StatusKinds:    withStatusKinds(nil),
		},
	}
}

func listPollsSpec(skip, limit int) RequestSpec {
	return RequestSpec{
		Operation: "list_polls",
		Method:    http.MethodGet,
		Path:      "/polls",
		Query: map[string]string{
			"skip":  strconv.Itoa(skip),
			"limit": strconv.Itoa(limit),
		},
		Auth: AuthNone,
		Response: ResponseSpec{
			RequiredFields: []string{"id", "question", "created_at", "owner_id", "options"},
			StatusKinds:    withStatusKinds(nil),
			WantList:       true,
		},
	}
}

func pollResultsSpec(pollID int64) RequestSpec {
	return RequestSpec{
		Operation: "poll_results",
		Method:    http.MethodGet,
		Path:      fmt.Sprintf("/polls/%d", pollID),
		Auth:      AuthOptional,
		Timeout:   30 * time.Second,
		Response: ResponseSpec{
			RequiredFields: []string{"id", "question", "options", "created_at", "user_id"},
			StatusKinds: withStatusKinds(map[int]FailureKind{
				http.StatusNotFound: KindNotFound,
			}),
			StrictFields: true,
		},
	}
}

func voteSpec(pollID, optionID int64) RequestSpec {
	return RequestSpec{
		Operation: "vote",
		Method:    http.MethodPost,
		Path:      fmt.Sprintf("/polls/%d/vote", pollID),
		Body: map[string]int64{
			"option_id": optionID,
		},
		Auth: AuthRequired,
		Response: ResponseSpec{
			RequiredFields: []string{"id", "user_id", "option_id", "created_at"},
			StatusKinds: withStatusKinds(map[int]FailureKind{
				http.StatusNotFound: KindNotFound,
			}),
		},
	}
}
