package bot

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"

	"election-tracker-backend/internal/common/logger"
	rostermodels "election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/features/session"
	votesservice "election-tracker-backend/internal/features/votes/service"
)

// ensurePinnedSummary sends the summary message and tries to pin it. Pin
// failures (e.g. missing permission in the chat) are ignored; any failure to
// produce the summary leaves the session without a pinned message rather
// than failing the /start flow.
func (h *Handler) ensurePinnedSummary(ctx context.Context, sess *session.Session) {
	text, err := h.summaryText(ctx, sess)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", sess.UserID).Msg("building pinned summary failed")
		return
	}
	msg, err := h.api.SendMessage(ctx, &bot.SendMessageParams{ChatID: sess.ChatID, Text: text})
	if err != nil {
		logger.Warn().Err(err).Str("user_id", sess.UserID).Msg("sending pinned summary failed")
		return
	}
	if _, err := h.api.PinChatMessage(ctx, &bot.PinChatMessageParams{
		ChatID:    sess.ChatID,
		MessageID: msg.ID,
	}); err != nil {
		logger.Debug().Err(err).Str("user_id", sess.UserID).Msg("pinning summary failed")
	}
	sess.PinnedMessageID = msg.ID
}

// refreshPinnedSummary recomputes the summary and edits the pinned message
// in place. Errors are swallowed: a stale summary is not worth failing a
// vote recording or a refresh tick over.
func (h *Handler) refreshPinnedSummary(ctx context.Context, sess *session.Session) {
	if sess.PinnedMessageID == 0 {
		return
	}
	text, err := h.summaryText(ctx, sess)
	if err != nil {
		logger.Debug().Err(err).Str("user_id", sess.UserID).Msg("refreshing pinned summary failed")
		return
	}
	if _, err := h.api.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    sess.ChatID,
		MessageID: sess.PinnedMessageID,
		Text:      text,
	}); err != nil {
		logger.Debug().Err(err).Str("user_id", sess.UserID).Msg("editing pinned summary failed")
	}
}

func (h *Handler) summaryText(ctx context.Context, sess *session.Session) (string, error) {
	switch sess.Role {
	case session.RoleDelegate:
		sc, err := h.delegateScope(ctx, sess)
		if err != nil {
			return "", err
		}
		return "Pinned — delegate progress\n\n" + delegateProgressBody(sess.Delegate, sc), nil
	default:
		sc, err := h.supervisorScope(ctx, sess)
		if err != nil {
			return "", err
		}
		return "Pinned — center report\n\n" + supervisorProgressBody(sess.Supervisor, sc), nil
	}
}

// delegateScope counts the delegate's own vote rows against the voters of
// its (center, village) assignment.
func (h *Handler) delegateScope(ctx context.Context, sess *session.Session) (votesservice.Scope, error) {
	votes, err := h.votes.List(ctx)
	if err != nil {
		return votesservice.Scope{}, err
	}
	voters, err := h.voters.List(ctx)
	if err != nil {
		return votesservice.Scope{}, err
	}
	d := sess.Delegate
	return votesservice.ComputeScope(
		votesservice.VotesForDelegate(votes, sess.UserID),
		votesservice.VotersForAssignment(voters, d.Center, d.Village),
		h.mode,
	), nil
}

// supervisorScope counts everything recorded for the supervisor's center.
func (h *Handler) supervisorScope(ctx context.Context, sess *session.Session) (votesservice.Scope, error) {
	votes, err := h.votes.List(ctx)
	if err != nil {
		return votesservice.Scope{}, err
	}
	voters, err := h.voters.List(ctx)
	if err != nil {
		return votesservice.Scope{}, err
	}
	center := sess.Supervisor.Center
	return votesservice.ComputeScope(
		votesservice.VotesForCenter(votes, center),
		votesservice.VotersForCenter(voters, center),
		h.mode,
	), nil
}

func delegateProgressText(d *rostermodels.Delegate, sc votesservice.Scope) string {
	return "My progress\n\n" + delegateProgressBody(d, sc)
}

func supervisorProgressText(s *rostermodels.Supervisor, sc votesservice.Scope) string {
	return "Center report\n\n" + supervisorProgressBody(s, sc)
}

func delegateProgressBody(d *rostermodels.Delegate, sc votesservice.Scope) string {
	return "Center: " + d.Center + "\nVillage: " + d.Village + "\n\n" + scopeBody(sc)
}

func supervisorProgressBody(s *rostermodels.Supervisor, sc votesservice.Scope) string {
	return "Center: " + s.Center + "\n\n" + scopeBody(sc)
}

func scopeBody(sc votesservice.Scope) string {
	return "Registered voters: " + strconv.Itoa(sc.TotalVoters) +
		"\nTotal turnout: " + strconv.Itoa(sc.TotalVoted) +
		"\n  Voted: " + strconv.Itoa(sc.Voted) + " | Invalid: " + strconv.Itoa(sc.Invalid) +
		"\nNot voted: " + strconv.Itoa(sc.NotVoted) +
		"\nRemaining: " + strconv.Itoa(sc.Remaining) +
		"\n\nProgress: " + strconv.Itoa(sc.ProgressPercent) + "%"
}
