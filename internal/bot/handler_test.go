package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	botmodels "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rostersheets "election-tracker-backend/internal/features/roster/repository/sheets"
	"election-tracker-backend/internal/features/session"
	sessionmemory "election-tracker-backend/internal/features/session/memory"
	votessheets "election-tracker-backend/internal/features/votes/repository/sheets"
	votesservice "election-tracker-backend/internal/features/votes/service"
	"election-tracker-backend/internal/platform/sheets/sheetstest"
)

// fakeAPI records every outbound Telegram call.
type fakeAPI struct {
	sent    []*bot.SendMessageParams
	edits   []*bot.EditMessageTextParams
	answers []*bot.AnswerCallbackQueryParams
	pins    []*bot.PinChatMessageParams
	nextID  int
}

func (f *fakeAPI) SendMessage(ctx context.Context, p *bot.SendMessageParams) (*botmodels.Message, error) {
	f.sent = append(f.sent, p)
	f.nextID++
	return &botmodels.Message{ID: f.nextID}, nil
}

func (f *fakeAPI) EditMessageText(ctx context.Context, p *bot.EditMessageTextParams) (*botmodels.Message, error) {
	f.edits = append(f.edits, p)
	return &botmodels.Message{ID: p.MessageID}, nil
}

func (f *fakeAPI) AnswerCallbackQuery(ctx context.Context, p *bot.AnswerCallbackQueryParams) (bool, error) {
	f.answers = append(f.answers, p)
	return true, nil
}

func (f *fakeAPI) PinChatMessage(ctx context.Context, p *bot.PinChatMessageParams) (bool, error) {
	f.pins = append(f.pins, p)
	return true, nil
}

func (f *fakeAPI) lastSentText() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Text
}

func (f *fakeAPI) lastEditText() string {
	if len(f.edits) == 0 {
		return ""
	}
	return f.edits[len(f.edits)-1].Text
}

func (f *fakeAPI) lastAnswer() *bot.AnswerCallbackQueryParams {
	if len(f.answers) == 0 {
		return nil
	}
	return f.answers[len(f.answers)-1]
}

func newTestHandler(t *testing.T) (*Handler, *fakeAPI, *sheetstest.Fake, session.Store) {
	t.Helper()

	fake := sheetstest.New()
	fake.Seed("Delegates!A:E", [][]string{
		{"userId", "name", "center", "village", "supervisorId"},
		{"100", "Alice", "c1", "village-a", "900"},
	})
	fake.Seed("Supervisors!A:C", [][]string{
		{"userId", "name", "center"},
		{"900", "Sam", "c1"},
	})
	fake.Seed("Voters!A:E", [][]string{
		{"name", "nationalId", "rollNumber", "center", "village"},
		{"Vera", "n1", "7", "c1", "village-a"},
		{"Viktor", "n2", "8", "c1", "village-a"},
		{"Olga", "n3", "9", "c1", "village-b"},
	})
	fake.Seed("Votes!A:F", [][]string{
		{"timestamp", "delegateUserId", "voterNationalId", "status", "center", "village"},
	})

	store := sessionmemory.New()
	h := New(
		store,
		rostersheets.NewDelegateRepository(fake),
		rostersheets.NewSupervisorRepository(fake),
		rostersheets.NewVoterRepository(fake),
		votessheets.NewRepository(fake),
		votesservice.ModeEvents,
		20,
	)
	api := &fakeAPI{}
	h.Bind(api)
	return h, api, fake, store
}

func startUpdate(userID, chatID int64) *botmodels.Update {
	return &botmodels.Update{
		Message: &botmodels.Message{
			Text: "/start",
			From: &botmodels.User{ID: userID},
			Chat: botmodels.Chat{ID: chatID},
		},
	}
}

func callbackUpdate(userID, chatID int64, messageID int, data string) *botmodels.Update {
	return &botmodels.Update{
		CallbackQuery: &botmodels.CallbackQuery{
			ID:   "q1",
			From: botmodels.User{ID: userID},
			Data: data,
			Message: botmodels.MaybeInaccessibleMessage{
				Message: &botmodels.Message{
					ID:   messageID,
					Chat: botmodels.Chat{ID: chatID},
				},
			},
		},
	}
}

func TestStartDeniesUnknownUser(t *testing.T) {
	h, api, _, store := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(555, 555))

	assert.Equal(t, msgDenied, api.lastSentText())
	_, ok, err := store.Get(ctx, "555")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStartDelegateBuildsSessionAndPinsSummary(t *testing.T) {
	h, api, _, store := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(100, 100))

	sess, ok, err := store.Get(ctx, "100")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, session.RoleDelegate, sess.Role)
	assert.NotZero(t, sess.PinnedMessageID)

	require.Len(t, api.pins, 1)
	assert.Contains(t, api.lastSentText(), "Welcome Alice")
	assert.Contains(t, api.sent[0].Text, "Registered voters: 2")
}

func TestStartSupervisorGetsProgressMenu(t *testing.T) {
	h, api, _, store := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(900, 900))

	sess, ok, err := store.Get(ctx, "900")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, session.RoleSupervisor, sess.Role)
	// Center scope covers all three voters regardless of village.
	assert.Contains(t, api.sent[0].Text, "Registered voters: 3")
	assert.Contains(t, api.lastSentText(), "Welcome Sam")
}

func TestStartFailsSoftWhenStoreDown(t *testing.T) {
	h, api, fake, _ := newTestHandler(t)
	fake.Err = errors.New("network down")

	h.Handle(context.Background(), nil, startUpdate(100, 100))

	assert.Equal(t, msgStoreDown, api.lastSentText())
}

func TestCallbackWithoutSessionAsksForStart(t *testing.T) {
	h, api, _, _ := newTestHandler(t)

	h.Handle(context.Background(), nil, callbackUpdate(100, 100, 1, "open_list"))

	ans := api.lastAnswer()
	require.NotNil(t, ans)
	assert.Equal(t, msgNoSession, ans.Text)
	assert.True(t, ans.ShowAlert)
}

func TestOpenListShowsOnlyAssignedVoters(t *testing.T) {
	h, api, _, store := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(100, 100))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "open_list"))

	sess, _, err := store.Get(ctx, "100")
	require.NoError(t, err)
	require.Len(t, sess.Voters, 2)
	assert.Equal(t, "n1", sess.Voters[0].NationalID)
	assert.Equal(t, "n2", sess.Voters[1].NationalID)

	assert.Contains(t, api.lastEditText(), "Voter list")
	assert.Contains(t, api.lastEditText(), "Voters: 2")
}

func TestRecordStatusAppendsRowAndHidesVoter(t *testing.T) {
	h, api, fake, store := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(100, 100))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "open_list"))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "v:n1"))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "a:n1:VOTED"))

	rows := fake.Rows("Votes!A:F")
	require.Len(t, rows, 2)
	appended := rows[1]
	require.Len(t, appended, 6)
	assert.NotEmpty(t, appended[0])
	assert.Equal(t, "100", appended[1])
	assert.Equal(t, "n1", appended[2])
	assert.Equal(t, "VOTED", appended[3])
	assert.Equal(t, "c1", appended[4])
	assert.Equal(t, "village-a", appended[5])

	sess, _, err := store.Get(ctx, "100")
	require.NoError(t, err)
	assert.True(t, sess.Done["n1"])
	require.Len(t, sess.Remaining(), 1)
	assert.Equal(t, msgSaved, api.lastAnswer().Text)
}

func TestRecordStatusFailureLeavesVoterVisible(t *testing.T) {
	h, api, fake, store := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(100, 100))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "open_list"))

	fake.Err = errors.New("append refused")
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "a:n1:VOTED"))

	sess, _, err := store.Get(ctx, "100")
	require.NoError(t, err)
	assert.False(t, sess.Done["n1"])
	assert.Len(t, sess.Remaining(), 2)

	ans := api.lastAnswer()
	require.NotNil(t, ans)
	assert.Equal(t, msgSaveFailed, ans.Text)
	assert.True(t, ans.ShowAlert)
}

func TestRecordStatusRejectsUnknownStatus(t *testing.T) {
	h, _, fake, _ := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(100, 100))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "open_list"))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "a:n1:MAYBE"))

	assert.Len(t, fake.Rows("Votes!A:F"), 1)
}

func TestPaginationClampsAtBounds(t *testing.T) {
	h, _, fake, store := newTestHandler(t)
	ctx := context.Background()

	// 45 voters in the delegate's village forces three pages of 20.
	rows := [][]string{{"name", "nationalId", "rollNumber", "center", "village"}}
	for i := 0; i < 45; i++ {
		id := "x" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		rows = append(rows, []string{"Voter " + id, id, id, "c1", "village-a"})
	}
	fake.Seed("Voters!A:E", rows)

	h.Handle(ctx, nil, startUpdate(100, 100))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "open_list"))

	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "pg:next"))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "pg:next"))
	sess, _, err := store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Page)

	// Already on the last page; next stays put.
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "pg:next"))
	sess, _, err = store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Page)

	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "pg:prev"))
	sess, _, err = store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Page)
}

func TestMyProgressReflectsRecordedVotes(t *testing.T) {
	h, api, _, _ := newTestHandler(t)
	ctx := context.Background()

	h.Handle(ctx, nil, startUpdate(100, 100))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "open_list"))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "a:n1:VOTED"))
	h.Handle(ctx, nil, callbackUpdate(100, 100, 2, "my_progress"))

	text := api.lastSentText()
	assert.Contains(t, text, "My progress")
	assert.Contains(t, text, "Registered voters: 2")
	assert.Contains(t, text, "Voted: 1")
	assert.Contains(t, text, "Progress: 50%")
}
