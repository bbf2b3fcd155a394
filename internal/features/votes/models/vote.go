package models

// Status is the outcome a delegate records for a voter.
type Status string

const (
	StatusVoted    Status = "VOTED"
	StatusNotVoted Status = "NOT_VOTED"
	StatusInvalid  Status = "INVALID"
)

// ParseStatus validates callback input before it hits the store.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusVoted, StatusNotVoted, StatusInvalid:
		return Status(s), true
	}
	return "", false
}

// Vote is one row of the append-only vote log. Nothing enforces uniqueness
// per voter: the same national id can accumulate any number of rows.
type Vote struct {
	Timestamp       string
	DelegateUserID  string
	VoterNationalID string
	Status          Status
	Center          string
	Village         string
}
