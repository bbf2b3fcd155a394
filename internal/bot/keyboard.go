package bot

import (
	"strconv"

	botmodels "github.com/go-telegram/bot/models"

	rostermodels "election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/features/session"
	votemodels "election-tracker-backend/internal/features/votes/models"
)

func delegateMenuKeyboard() *botmodels.InlineKeyboardMarkup {
	return &botmodels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botmodels.InlineKeyboardButton{
			{{Text: "Open voter list", CallbackData: "open_list"}},
			{{Text: "My progress", CallbackData: "my_progress"}},
		},
	}
}

func supervisorMenuKeyboard() *botmodels.InlineKeyboardMarkup {
	return &botmodels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botmodels.InlineKeyboardButton{
			{{Text: "View progress", CallbackData: "progress"}},
		},
	}
}

// voterListKeyboard puts one voter per row; the callback carries the
// national id.
func voterListKeyboard(voters []rostermodels.Voter) *botmodels.InlineKeyboardMarkup {
	rows := make([][]botmodels.InlineKeyboardButton, 0, len(voters))
	for _, v := range voters {
		rows = append(rows, []botmodels.InlineKeyboardButton{
			{Text: v.Name, CallbackData: "v:" + v.NationalID},
		})
	}
	return &botmodels.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// paginationKeyboard shows prev/next only when they lead somewhere; the
// middle button is a page indicator that does nothing.
func paginationKeyboard(page, pageSize, total int) *botmodels.InlineKeyboardMarkup {
	maxPage := session.MaxPage(total, pageSize)
	row := make([]botmodels.InlineKeyboardButton, 0, 3)
	if page > 0 {
		row = append(row, botmodels.InlineKeyboardButton{Text: "« Prev", CallbackData: "pg:prev"})
	}
	row = append(row, botmodels.InlineKeyboardButton{
		Text:         strconv.Itoa(page+1) + "/" + strconv.Itoa(maxPage+1),
		CallbackData: "noop",
	})
	if page < maxPage {
		row = append(row, botmodels.InlineKeyboardButton{Text: "Next »", CallbackData: "pg:next"})
	}
	return &botmodels.InlineKeyboardMarkup{InlineKeyboard: [][]botmodels.InlineKeyboardButton{row}}
}

func statusKeyboard(nationalID string) *botmodels.InlineKeyboardMarkup {
	return &botmodels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botmodels.InlineKeyboardButton{
			{
				{Text: "Voted", CallbackData: "a:" + nationalID + ":" + string(votemodels.StatusVoted)},
				{Text: "Not voted", CallbackData: "a:" + nationalID + ":" + string(votemodels.StatusNotVoted)},
				{Text: "Invalid", CallbackData: "a:" + nationalID + ":" + string(votemodels.StatusInvalid)},
			},
			{{Text: "Back to list", CallbackData: "back"}},
		},
	}
}

func backKeyboard() *botmodels.InlineKeyboardMarkup {
	return &botmodels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botmodels.InlineKeyboardButton{
			{{Text: "Back to list", CallbackData: "back"}},
		},
	}
}

func mergeKeyboards(a, b *botmodels.InlineKeyboardMarkup) *botmodels.InlineKeyboardMarkup {
	merged := make([][]botmodels.InlineKeyboardButton, 0, len(a.InlineKeyboard)+len(b.InlineKeyboard))
	merged = append(merged, a.InlineKeyboard...)
	merged = append(merged, b.InlineKeyboard...)
	return &botmodels.InlineKeyboardMarkup{InlineKeyboard: merged}
}
