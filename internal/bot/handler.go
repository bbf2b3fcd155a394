package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	botmodels "github.com/go-telegram/bot/models"

	"election-tracker-backend/internal/common/logger"
	rostermodels "election-tracker-backend/internal/features/roster/models"
	rosterrepo "election-tracker-backend/internal/features/roster/repository"
	"election-tracker-backend/internal/features/session"
	votesrepo "election-tracker-backend/internal/features/votes/repository"
	votesservice "election-tracker-backend/internal/features/votes/service"
)

// User-facing texts. Store errors never leak detail into chat.
const (
	msgDenied       = "Sorry, this bot is for registered delegates and supervisors only."
	msgStoreDown    = "Could not reach the data store. Please try again later."
	msgVoterMissing = "Voter not found"
	msgSaveFailed   = "Could not save the status. Please try again."
	msgSaved        = "Status saved"
	msgNoSession    = "Please send /start first."
	msgNoProgress   = "Unable to show progress right now."
)

// api is the slice of the Telegram client the handler needs. *bot.Bot
// satisfies it; tests substitute a recorder. Keeping the conversation logic
// behind this interface means it does not care whether updates arrive by
// polling or webhook.
type api interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*botmodels.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*botmodels.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	PinChatMessage(ctx context.Context, params *bot.PinChatMessageParams) (bool, error)
}

type Handler struct {
	api         api
	sessions    session.Store
	delegates   rosterrepo.DelegateRepository
	supervisors rosterrepo.SupervisorRepository
	voters      rosterrepo.VoterRepository
	votes       votesrepo.Repository
	mode        votesservice.Mode
	pageSize    int
}

func New(
	sessions session.Store,
	delegates rosterrepo.DelegateRepository,
	supervisors rosterrepo.SupervisorRepository,
	voters rosterrepo.VoterRepository,
	votes votesrepo.Repository,
	mode votesservice.Mode,
	pageSize int,
) *Handler {
	return &Handler{
		sessions:    sessions,
		delegates:   delegates,
		supervisors: supervisors,
		voters:      voters,
		votes:       votes,
		mode:        mode,
		pageSize:    pageSize,
	}
}

// Bind attaches the Telegram client once it exists; bot.New needs the
// handler before the handler can have the bot.
func (h *Handler) Bind(a api) {
	h.api = a
}

// Handle is the default update handler registered on the bot.
func (h *Handler) Handle(ctx context.Context, _ *bot.Bot, update *botmodels.Update) {
	switch {
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/start"):
		h.handleStart(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *botmodels.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := strconv.FormatInt(msg.From.ID, 10)

	delegates, err := h.delegates.List(ctx)
	if err == nil {
		supervisors, serr := h.supervisors.List(ctx)
		if serr != nil {
			err = serr
		} else {
			for _, d := range delegates {
				if d.UserID == userID {
					h.startDelegate(ctx, chatID, userID, d)
					return
				}
			}
			for _, s := range supervisors {
				if s.UserID == userID {
					h.startSupervisor(ctx, chatID, userID, s)
					return
				}
			}
			h.send(ctx, chatID, msgDenied, nil)
			return
		}
	}
	logger.Error().Err(err).Str("user_id", userID).Msg("loading rolls for /start failed")
	h.send(ctx, chatID, msgStoreDown, nil)
}

func (h *Handler) startDelegate(ctx context.Context, chatID int64, userID string, d rostermodels.Delegate) {
	sess := &session.Session{
		UserID:   userID,
		ChatID:   chatID,
		Role:     session.RoleDelegate,
		Delegate: &d,
		Done:     make(map[string]bool),
		PageSize: h.pageSize,
	}
	h.ensurePinnedSummary(ctx, sess)
	if err := h.sessions.Put(ctx, sess); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("storing session failed")
	}

	text := "Welcome " + d.Name + "!\nCenter: " + d.Center + "\nVillage: " + d.Village
	h.send(ctx, chatID, text, delegateMenuKeyboard())
}

func (h *Handler) startSupervisor(ctx context.Context, chatID int64, userID string, s rostermodels.Supervisor) {
	sess := &session.Session{
		UserID:     userID,
		ChatID:     chatID,
		Role:       session.RoleSupervisor,
		Supervisor: &s,
		Done:       make(map[string]bool),
		PageSize:   h.pageSize,
	}
	h.ensurePinnedSummary(ctx, sess)
	if err := h.sessions.Put(ctx, sess); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("storing session failed")
	}

	h.send(ctx, chatID, "Welcome "+s.Name+"!", supervisorMenuKeyboard())
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, markup botmodels.ReplyMarkup) {
	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := h.api.SendMessage(ctx, params); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("sending message failed")
	}
}

func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, text string, markup botmodels.ReplyMarkup) {
	params := &bot.EditMessageTextParams{ChatID: chatID, MessageID: messageID, Text: text}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := h.api.EditMessageText(ctx, params); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("editing message failed")
	}
}

func (h *Handler) answer(ctx context.Context, queryID string) {
	if _, err := h.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: queryID}); err != nil {
		logger.Debug().Err(err).Msg("answering callback failed")
	}
}

func (h *Handler) alert(ctx context.Context, queryID, text string) {
	if _, err := h.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
		ShowAlert:       true,
	}); err != nil {
		logger.Debug().Err(err).Msg("answering callback failed")
	}
}
