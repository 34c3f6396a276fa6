package model

import (
	"time"

	"github.com/google/uuid"
)

func NewStat(userID int64) Stat {
	return Stat{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
}

// Stat is one finished game from one player's point of view.
type Stat struct {
	ID     uuid.UUID `json:"-"`
	UserID int64     `json:"userID"`
	ChatID int64     `json:"chatID"`

	Role string `json:"role"`
	Team string `json:"team"`

	Won      bool `json:"won"`
	Survived bool `json:"survived"`
	Exiled   bool `json:"exiled"`

	Rounds     int       `json:"rounds"`
	PlayersNum int       `json:"playersNum"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AggregationStat is the profile view over all of a player's games.
type AggregationStat struct {
	Count    int
	Wins     int
	Survived int
	Exiled   int

	// games per role, keyed by the engine role name
	Roles map[string]int

	SumRounds int
	AvgRounds int
}
