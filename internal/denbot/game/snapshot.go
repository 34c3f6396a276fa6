package game

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the read-only, deep-copied view of a game. Persistence stores
// it as JSON, renderers read it without locking.
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	ChatID   int64     `json:"chatID"`
	ThreadID int       `json:"threadID"`
	TestMode bool      `json:"testMode"`

	Phase     Phase     `json:"phase"`
	Round     int       `json:"round"`
	StartedAt time.Time `json:"startedAt"`
	Deadline  time.Time `json:"deadline"`

	Players []Player `json:"players"`

	WolfTargets   map[int64]int64 `json:"wolfTargets"`
	FoxTargets    map[int64]int64 `json:"foxTargets"`
	BeaverTargets map[int64]int64 `json:"beaverTargets"`
	MoleTargets   map[int64]int64 `json:"moleTargets"`
	Votes         map[int64]int64 `json:"votes"`
}

func (s Snapshot) Player(userID int64) (Player, bool) {
	for _, p := range s.Players {
		if p.UserID == userID {
			return p, true
		}
	}
	return Player{}, false
}

func (s Snapshot) AliveCount() int {
	var n int
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

func snapshotGame(g *Game) Snapshot {
	s := Snapshot{
		ID:            g.ID,
		ChatID:        g.ChatID,
		ThreadID:      g.ThreadID,
		TestMode:      g.TestMode,
		Phase:         g.Phase,
		Round:         g.Round,
		StartedAt:     g.StartedAt,
		Deadline:      g.Deadline,
		Players:       make([]Player, 0, len(g.Players)),
		WolfTargets:   copyBuffer(g.WolfTargets),
		FoxTargets:    copyBuffer(g.FoxTargets),
		BeaverTargets: copyBuffer(g.BeaverTargets),
		MoleTargets:   copyBuffer(g.MoleTargets),
		Votes:         copyBuffer(g.Votes),
	}

	for _, p := range sortedPlayers(g) {
		s.Players = append(s.Players, *p)
	}

	return s
}

// RestoreGame rebuilds a game from a snapshot. The controller for a restored
// game is created fresh, an expired deadline fires immediately.
func RestoreGame(s Snapshot) *Game {
	g := &Game{
		ID:            s.ID,
		ChatID:        s.ChatID,
		ThreadID:      s.ThreadID,
		TestMode:      s.TestMode,
		Phase:         s.Phase,
		Round:         s.Round,
		StartedAt:     s.StartedAt,
		Deadline:      s.Deadline,
		Players:       make(map[int64]*Player, len(s.Players)),
		WolfTargets:   copyBuffer(s.WolfTargets),
		FoxTargets:    copyBuffer(s.FoxTargets),
		BeaverTargets: copyBuffer(s.BeaverTargets),
		MoleTargets:   copyBuffer(s.MoleTargets),
		Votes:         copyBuffer(s.Votes),
	}

	for i := range s.Players {
		p := s.Players[i]
		g.Players[p.UserID] = &p
	}

	return g
}

func copyBuffer(src map[int64]int64) map[int64]int64 {
	dst := make(map[int64]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
