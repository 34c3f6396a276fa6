package denbot

import (
	"time"

	"github.com/den-games/denbot/internal/database"
	"github.com/den-games/denbot/internal/denbot/game"
)

type Config struct {
	Admin string `envconfig:"DEN_ADMIN_USERNAME"`

	// Logging all requests and responses from telegram
	Debug bool `envconfig:"DEN_DEBUG" default:"false"`

	// Number of items in the cache
	CacheSize int `envconfig:"DEN_CACHE_SIZE" default:"1024"`

	// Port on which the health check is launched
	Port string `envconfig:"DEN_PORT" default:"1234"`

	// profile port
	ProfPort string `envconfig:"DEN_PROF_PORT" default:"8888"`

	// Telegram bot token
	BotToken string `envconfig:"DEN_BOT_TOKEN"`

	// Waiting time for the game session to end
	PlayingTimeout   time.Duration `envconfig:"DEN_PLAYING_TIMEOUT" default:"24h"`
	TgBotPollTimeout time.Duration `envconfig:"DEN_TG_BOT_POLL_TIMEOUT" default:"60s"`

	NightDuration  time.Duration `envconfig:"DEN_NIGHT_DURATION" default:"60s"`
	DayDuration    time.Duration `envconfig:"DEN_DAY_DURATION" default:"300s"`
	VotingDuration time.Duration `envconfig:"DEN_VOTING_DURATION" default:"120s"`

	Db database.Config
}

// GameConfig folds the tunable phase durations into the engine defaults.
func (c Config) GameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.NightDuration = c.NightDuration
	cfg.DayDuration = c.DayDuration
	cfg.VotingDuration = c.VotingDuration
	return cfg
}
