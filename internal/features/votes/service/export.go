package service

import (
	"strings"

	"election-tracker-backend/internal/features/votes/models"
)

var csvHeader = []string{"timestamp", "delegateUserId", "voterNationalId", "status", "center", "village"}

// VotesCSV renders the vote log as CSV: header row, minimal quoting, LF
// separators, and a UTF-8 byte-order mark so spreadsheet apps pick up the
// encoding.
func VotesCSV(votes []models.Vote) []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(csvRow(csvHeader))
	for _, v := range votes {
		b.WriteByte('\n')
		b.WriteString(csvRow([]string{
			v.Timestamp, v.DelegateUserID, v.VoterNationalID, string(v.Status), v.Center, v.Village,
		}))
	}
	return []byte(b.String())
}

// csvRow quotes a field only when it contains a comma, quote or newline,
// doubling embedded quotes.
func csvRow(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if strings.ContainsAny(f, ",\"\n") {
			out[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		} else {
			out[i] = f
		}
	}
	return strings.Join(out, ",")
}
