package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	botmodels "github.com/go-telegram/bot/models"

	"election-tracker-backend/internal/common/logger"
	"election-tracker-backend/internal/features/session"
	votemodels "election-tracker-backend/internal/features/votes/models"
	votesservice "election-tracker-backend/internal/features/votes/service"
)

func (h *Handler) handleCallback(ctx context.Context, q *botmodels.CallbackQuery) {
	if q.Message.Message == nil {
		// Inaccessible message: nothing to edit.
		h.answer(ctx, q.ID)
		return
	}
	userID := strconv.FormatInt(q.From.ID, 10)
	chatID := q.Message.Message.Chat.ID
	messageID := q.Message.Message.ID
	data := q.Data

	sess, ok, err := h.sessions.Get(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("loading session failed")
	}
	if !ok || sess == nil {
		h.alert(ctx, q.ID, msgNoSession)
		return
	}

	switch {
	case data == "open_list":
		h.openList(ctx, q, sess, chatID, messageID)
	case data == "back":
		h.showList(ctx, sess, chatID, messageID, true)
		h.answer(ctx, q.ID)
	case data == "pg:prev" || data == "pg:next":
		h.paginate(ctx, q, sess, chatID, messageID, data == "pg:next")
	case strings.HasPrefix(data, "v:"):
		h.selectVoter(ctx, q, sess, chatID, messageID, strings.TrimPrefix(data, "v:"))
	case strings.HasPrefix(data, "a:"):
		h.recordStatus(ctx, q, sess, chatID, messageID, data)
	case data == "my_progress":
		h.answer(ctx, q.ID)
		h.sendDelegateProgress(ctx, sess, chatID)
	case data == "progress":
		h.answer(ctx, q.ID)
		h.sendSupervisorProgress(ctx, sess, chatID)
	default: // includes "noop"
		h.answer(ctx, q.ID)
	}
}

// openList loads the roll, narrows it to the delegate's (center, village)
// assignment and resets the cursor.
func (h *Handler) openList(ctx context.Context, q *botmodels.CallbackQuery, sess *session.Session, chatID int64, messageID int) {
	if sess.Delegate == nil {
		h.answer(ctx, q.ID)
		return
	}
	all, err := h.voters.List(ctx)
	if err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("loading voter roll failed")
		h.alert(ctx, q.ID, msgStoreDown)
		return
	}
	sess.Voters = votesservice.VotersForAssignment(all, sess.Delegate.Center, sess.Delegate.Village)
	sess.Done = make(map[string]bool)
	sess.Page = 0
	if err := h.sessions.Put(ctx, sess); err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("storing session failed")
	}

	h.showList(ctx, sess, chatID, messageID, false)
	h.answer(ctx, q.ID)
}

// showList renders the current page of not-yet-recorded voters. remainingOnly
// switches the title between the full count (fresh list) and the remaining
// count (returning from a recording).
func (h *Handler) showList(ctx context.Context, sess *session.Session, chatID int64, messageID int, remainingOnly bool) {
	if sess.Delegate == nil {
		return
	}
	remaining := sess.Remaining()
	sess.Page = session.ClampPage(sess.Page, len(remaining), sess.PageSize)
	pageItems := session.PageSlice(remaining, sess.Page, sess.PageSize)

	countLabel := "Voters: " + strconv.Itoa(len(remaining))
	if remainingOnly {
		countLabel = "Remaining voters: " + strconv.Itoa(len(remaining))
	}
	title := "Voter list — " + sess.Delegate.Village + "\nCenter: " + sess.Delegate.Center + "\n" + countLabel

	markup := mergeKeyboards(voterListKeyboard(pageItems), paginationKeyboard(sess.Page, sess.PageSize, len(remaining)))
	h.edit(ctx, chatID, messageID, title, markup)
}

func (h *Handler) paginate(ctx context.Context, q *botmodels.CallbackQuery, sess *session.Session, chatID int64, messageID int, next bool) {
	remaining := sess.Remaining()
	page := sess.Page
	if next {
		page++
	} else {
		page--
	}
	sess.Page = session.ClampPage(page, len(remaining), sess.PageSize)
	if err := h.sessions.Put(ctx, sess); err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("storing session failed")
	}
	h.showList(ctx, sess, chatID, messageID, true)
	h.answer(ctx, q.ID)
}

func (h *Handler) selectVoter(ctx context.Context, q *botmodels.CallbackQuery, sess *session.Session, chatID int64, messageID int, nationalID string) {
	voter, found := sess.FindVoter(nationalID)
	if !found {
		h.alert(ctx, q.ID, msgVoterMissing)
		return
	}
	sess.SelectedNationalID = nationalID
	if err := h.sessions.Put(ctx, sess); err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("storing session failed")
	}

	info := "Voter: " + voter.Name +
		"\nNational ID: " + voter.NationalID +
		"\nRoll number: " + voter.RollNumber +
		"\nVillage: " + voter.Village +
		"\nCenter: " + voter.Center +
		"\n\nChoose a status:"
	h.edit(ctx, chatID, messageID, info, statusKeyboard(voter.NationalID))
	h.answer(ctx, q.ID)
}

// recordStatus appends the vote and only then flags the voter done; a failed
// append must leave the voter visible in the list.
func (h *Handler) recordStatus(ctx context.Context, q *botmodels.CallbackQuery, sess *session.Session, chatID int64, messageID int, data string) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		h.answer(ctx, q.ID)
		return
	}
	nationalID := parts[1]
	status, valid := votemodels.ParseStatus(parts[2])
	if !valid {
		h.answer(ctx, q.ID)
		return
	}
	voter, found := sess.FindVoter(nationalID)
	if !found {
		h.alert(ctx, q.ID, msgVoterMissing)
		return
	}

	err := h.votes.Append(ctx, votemodels.Vote{
		DelegateUserID:  sess.UserID,
		VoterNationalID: nationalID,
		Status:          status,
		Center:          voter.Center,
		Village:         voter.Village,
	})
	if err != nil {
		logger.Error().Err(err).
			Str("user_id", sess.UserID).
			Str("national_id", nationalID).
			Msg("recording vote failed")
		h.alert(ctx, q.ID, msgSaveFailed)
		return
	}

	sess.Done[nationalID] = true
	if err := h.sessions.Put(ctx, sess); err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("storing session failed")
	}
	h.refreshPinnedSummary(ctx, sess)

	confirm := "Status saved\nVoter: " + voter.Name + "\nStatus: " + statusLabel(status) + "\n\nBack to the list:"
	h.edit(ctx, chatID, messageID, confirm, backKeyboard())
	if _, err := h.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: q.ID,
		Text:            msgSaved,
	}); err != nil {
		logger.Debug().Err(err).Msg("answering callback failed")
	}
}

func (h *Handler) sendDelegateProgress(ctx context.Context, sess *session.Session, chatID int64) {
	if sess.Delegate == nil {
		return
	}
	sc, err := h.delegateScope(ctx, sess)
	if err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("computing delegate progress failed")
		h.send(ctx, chatID, msgNoProgress, nil)
		return
	}
	h.send(ctx, chatID, delegateProgressText(sess.Delegate, sc), nil)
}

func (h *Handler) sendSupervisorProgress(ctx context.Context, sess *session.Session, chatID int64) {
	if sess.Supervisor == nil {
		return
	}
	sc, err := h.supervisorScope(ctx, sess)
	if err != nil {
		logger.Error().Err(err).Str("user_id", sess.UserID).Msg("computing supervisor progress failed")
		h.send(ctx, chatID, msgNoProgress, nil)
		return
	}
	h.send(ctx, chatID, supervisorProgressText(sess.Supervisor, sc), nil)
}

func statusLabel(s votemodels.Status) string {
	switch s {
	case votemodels.StatusVoted:
		return "voted"
	case votemodels.StatusNotVoted:
		return "not voted"
	case votemodels.StatusInvalid:
		return "invalid ballot"
	}
	return string(s)
}
