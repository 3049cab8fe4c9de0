package domain

// Domain contains the wire models of the polls API.

// User is the account record returned by registration.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// PollOption is a single choice attached to a poll. VoteCount is only
// populated on results retrieval.
type PollOption struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	PollID    int64  `json:"poll_id"`
	VoteCount int64  `json:"vote_count,omitempty"`
}

// Poll is the PollOut schema returned by creation and listing.
type Poll struct {
	ID        int64        `json:"id"`
	Question  string       `json:"question"`
	CreatedAt string       `json:"created_at"`
	OwnerID   int64        `json:"owner_id"`
	Options   []PollOption `json:"options"`
}

// PollResults is the retrieval schema. It carries per-option vote
// counts and attributes the poll to user_id rather than owner_id.
type PollResults struct {
	ID        int64        `json:"id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	CreatedAt string       `json:"created_at"`
	UserID    int64        `json:"user_id"`
}

// Vote is the VoteOut schema: one cast ballot.
type Vote struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	OptionID  int64  `json:"option_id"`
	CreatedAt string `json:"created_at"`
}
