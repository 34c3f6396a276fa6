package resource

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// chat commands
const (
	CmdStart   = "/start"
	CmdRules   = "/rules"
	CmdNewGame = "/game"
	CmdJoin    = "/join"
	CmdLeave   = "/leave"
	CmdPlay    = "/play"
	CmdStop    = "/stop"
	CmdExtend  = "/extend"
	CmdNext    = "/next"
	CmdProfile = "/profile"

	// flag appended to /game for the reduced three-player setup
	CmdArgTest = "test"
)

// callback data prefixes, the payload carries the target id
const (
	NightQueryPrefix = "night"
	VoteQueryPrefix  = "vote"
)

func NightQueryData(targetID int64) string {
	return fmt.Sprintf("%s:%d", NightQueryPrefix, targetID)
}

func VoteQueryData(targetID int64) string {
	return fmt.Sprintf("%s:%d", VoteQueryPrefix, targetID)
}

// ParseQueryData splits "<prefix>:<id>" callback data. Unknown and malformed
// payloads return ok false.
func ParseQueryData(data string) (prefix string, targetID int64, ok bool) {
	for _, p := range []string{NightQueryPrefix, VoteQueryPrefix} {
		head := p + ":"
		if len(data) > len(head) && data[:len(head)] == head {
			id, err := strconv.ParseInt(data[len(head):], 10, 64)
			if err != nil {
				return "", 0, false
			}
			return p, id, true
		}
	}

	return "", 0, false
}

// TargetButton is one selectable player in an inline menu.
type TargetButton struct {
	ID   int64
	Name string
}

// NightKeyboard builds one button per legal target plus the skip row.
func NightKeyboard(targets []TargetButton) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(targets)+1)
	for _, t := range targets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Name, NightQueryData(t.ID)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(TextSkipNightButton, NightQueryData(0)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func VoteKeyboard(targets []TargetButton) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(targets)+1)
	for _, t := range targets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Name, VoteQueryData(t.ID)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(TextSkipVoteButton, VoteQueryData(0)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
