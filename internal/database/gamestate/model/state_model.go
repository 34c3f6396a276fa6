package model

import (
	"time"

	"github.com/den-games/denbot/internal/denbot/game"
)

// State is a live game frozen for restart. The snapshot carries the whole
// engine state, the rest is session metadata the engine does not know about.
type State struct {
	Snapshot   game.Snapshot `json:"snapshot"`
	AuthorID   int64         `json:"authorID"`
	AuthorName string        `json:"authorName"`
	CreatedAt  time.Time     `json:"createdAt"`
}
