package game

import (
	"time"

	"github.com/google/uuid"
)

type Phase uint8

const (
	PhaseWaiting Phase = iota + 1
	PhaseNight
	PhaseDay
	PhaseVoting
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseNight:
		return "night"
	case PhaseDay:
		return "day"
	case PhaseVoting:
		return "voting"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// SkipTarget is the sentinel accepted instead of a target id by action and
// vote submissions.
const SkipTarget int64 = 0

func NewGame(chatID int64, threadID int, testMode bool) *Game {
	return &Game{
		ID:            uuid.New(),
		ChatID:        chatID,
		ThreadID:      threadID,
		TestMode:      testMode,
		Phase:         PhaseWaiting,
		Players:       map[int64]*Player{},
		WolfTargets:   map[int64]int64{},
		FoxTargets:    map[int64]int64{},
		BeaverTargets: map[int64]int64{},
		MoleTargets:   map[int64]int64{},
		Votes:         map[int64]int64{},
	}
}

// Game aggregates the per-chat state. All mutation goes through the
// controller, external readers use Snapshot.
type Game struct {
	ID       uuid.UUID `json:"id"`
	ChatID   int64     `json:"chatID"`
	ThreadID int       `json:"threadID"`
	TestMode bool      `json:"testMode"`

	Phase     Phase     `json:"phase"`
	Round     int       `json:"round"`
	StartedAt time.Time `json:"startedAt"`
	Deadline  time.Time `json:"deadline"`

	Players map[int64]*Player `json:"players"`

	// pending night actions, actor id -> target id
	WolfTargets   map[int64]int64 `json:"wolfTargets"`
	FoxTargets    map[int64]int64 `json:"foxTargets"`
	BeaverTargets map[int64]int64 `json:"beaverTargets"`
	MoleTargets   map[int64]int64 `json:"moleTargets"`

	// pending votes, voter id -> target id or SkipTarget
	Votes map[int64]int64 `json:"votes"`
}

func (g *Game) addPlayer(cfg Config, userID int64, firstName string) error {
	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}

	if len(g.Players) >= cfg.MaxPlayers {
		return ErrTooManyPlayers
	}

	if _, ok := g.Players[userID]; ok {
		return ErrIllegalTarget
	}

	g.Players[userID] = NewPlayer(userID, firstName, cfg.MaxSupplies)
	return nil
}

func (g *Game) removePlayer(userID int64) error {
	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}

	if _, ok := g.Players[userID]; !ok {
		return ErrUnknownActor
	}

	delete(g.Players, userID)
	return nil
}

func (g *Game) Player(userID int64) (*Player, bool) {
	p, ok := g.Players[userID]
	return p, ok
}

func (g *Game) AliveCount() int {
	var n int
	for _, p := range g.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

func (g *Game) AliveWolves() int {
	var n int
	for _, p := range g.Players {
		if p.Alive && p.Role == RoleWolf {
			n++
		}
	}
	return n
}

func (g *Game) AliveByTeam(team Team) int {
	var n int
	for _, p := range g.Players {
		if p.Alive && p.Team == team {
			n++
		}
	}
	return n
}

// WolfIDs lists the wolves regardless of liveness, for the pack roster
// delivered at game start.
func (g *Game) WolfIDs() []int64 {
	var ids []int64
	for id, p := range g.Players {
		if p.Role == RoleWolf {
			ids = append(ids, id)
		}
	}
	return ids
}

// CanTarget is the submission-time legality predicate for one role acting on
// one target. Renderers use it to build truthful button menus.
func (g *Game) CanTarget(role Role, actorID, targetID int64) bool {
	actor, ok := g.Players[actorID]
	if !ok || !actor.Alive || actor.Role != role {
		return false
	}

	target, ok := g.Players[targetID]
	if !ok || !target.Alive {
		return false
	}

	switch role {
	case RoleWolf:
		return target.Role != RoleWolf
	case RoleFox:
		return target.Role != RoleBeaver && target.Supplies > 0 && !target.BeaverProtected
	case RoleMole:
		return targetID != actorID
	case RoleBeaver:
		return target.StolenSupplies > 0
	default:
		return false
	}
}

// LegalTargets enumerates every player the actor may act on tonight.
func (g *Game) LegalTargets(role Role, actorID int64) []*Player {
	var targets []*Player
	for id, p := range g.Players {
		if g.CanTarget(role, actorID, id) {
			targets = append(targets, p)
		}
	}
	return targets
}

// CanVote reports whether voter may cast a vote against target during the
// voting phase. SkipTarget is always allowed for a living voter.
func (g *Game) CanVote(voterID, targetID int64) bool {
	voter, ok := g.Players[voterID]
	if !ok || !voter.Alive {
		return false
	}

	if targetID == SkipTarget {
		return true
	}

	if targetID == voterID {
		return false
	}

	target, ok := g.Players[targetID]
	return ok && target.Alive
}

func (g *Game) actionBuffer(role Role) map[int64]int64 {
	switch role {
	case RoleWolf:
		return g.WolfTargets
	case RoleFox:
		return g.FoxTargets
	case RoleBeaver:
		return g.BeaverTargets
	case RoleMole:
		return g.MoleTargets
	default:
		return nil
	}
}

func (g *Game) clearNightBuffers() {
	g.WolfTargets = map[int64]int64{}
	g.FoxTargets = map[int64]int64{}
	g.BeaverTargets = map[int64]int64{}
	g.MoleTargets = map[int64]int64{}
}

// allActionsIn reports whether every living player with a night power has an
// entry in their buffer, skip entries included.
func (g *Game) allActionsIn() bool {
	for id, p := range g.Players {
		if !p.Alive || !p.Role.HasNightAction() {
			continue
		}
		if _, ok := g.actionBuffer(p.Role)[id]; !ok {
			return false
		}
	}
	return true
}

func (g *Game) allVotesIn() bool {
	for id, p := range g.Players {
		if !p.Alive {
			continue
		}
		if _, ok := g.Votes[id]; !ok {
			return false
		}
	}
	return true
}
