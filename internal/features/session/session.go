package session

import (
	"context"

	rostermodels "election-tracker-backend/internal/features/roster/models"
)

type Role string

const (
	RoleDelegate   Role = "delegate"
	RoleSupervisor Role = "supervisor"
)

// Session is one chat user's conversation state: identity, the filtered
// voter subset they are working through, pagination cursor, and the pinned
// summary message. Created on first contact, overwritten on each
// interaction; the default store loses it on restart and that is the
// accepted durability model (session = cache, not source of truth).
type Session struct {
	UserID string
	ChatID int64
	Role   Role

	Delegate   *rostermodels.Delegate
	Supervisor *rostermodels.Supervisor

	// Voters is the subset assigned to this delegate, loaded by open_list.
	// Done flags voters recorded during this session so the list hides
	// them; the flags are session-scoped only, so a fresh session re-shows
	// already-voted entries.
	Voters []rostermodels.Voter
	Done   map[string]bool

	Page     int
	PageSize int

	SelectedNationalID string
	PinnedMessageID    int
}

// Store is the injectable per-user session registry. One implementation is a
// plain process-local map, another is redis for deployments that want
// sessions to survive restarts.
type Store interface {
	Get(ctx context.Context, userID string) (*Session, bool, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID string) error
	// Each visits every stored session until the callback returns false.
	Each(ctx context.Context, fn func(*Session) bool) error
}

// Remaining lists voters not yet recorded this session.
func (s *Session) Remaining() []rostermodels.Voter {
	out := make([]rostermodels.Voter, 0, len(s.Voters))
	for _, v := range s.Voters {
		if s.Done[v.NationalID] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FindVoter scans the assigned subset, including voters already done.
func (s *Session) FindVoter(nationalID string) (rostermodels.Voter, bool) {
	for _, v := range s.Voters {
		if v.NationalID == nationalID {
			return v, true
		}
	}
	return rostermodels.Voter{}, false
}

// MaxPage is the last valid zero-based page index for n items.
func MaxPage(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n+pageSize-1)/pageSize - 1
}

// ClampPage keeps a page index inside [0, MaxPage].
func ClampPage(page, n, pageSize int) int {
	if page < 0 {
		return 0
	}
	if max := MaxPage(n, pageSize); page > max {
		return max
	}
	return page
}

// PageSlice cuts one page out of the voter list.
func PageSlice(voters []rostermodels.Voter, page, pageSize int) []rostermodels.Voter {
	if pageSize <= 0 {
		return nil
	}
	start := page * pageSize
	if start >= len(voters) {
		return nil
	}
	end := start + pageSize
	if end > len(voters) {
		end = len(voters)
	}
	return voters[start:end]
}
