package match

import (
	"time"

	"github.com/den-games/denbot/internal/denbot/game"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type Config struct {
	ChatID     int64
	ThreadID   int
	AuthorID   int64
	AuthorName string
	TestMode   bool

	Tg         *tgbotapi.BotAPI
	GameConfig game.Config

	// hard cap on the session lifetime, the game's own limits are tighter
	Timeout time.Duration

	DoneFn func(session *Session) error
	WarnFn func(session *Session) error
}
