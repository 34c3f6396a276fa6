package game

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/den-games/denbot/internal/logging"
)

// PhaseResult reports the transition an AdvancePhase call produced.
type PhaseResult struct {
	From  Phase
	To    Phase
	Round int
}

type advanceKind uint8

const (
	advanceDeadline advanceKind = iota + 1
	advanceComplete
	advanceAdmin
	advanceRepeat
)

// NewController creates the single writer for a game's phase, round,
// deadline and buffers. The seed feeds the only random source the game uses,
// so role assignment and wolf tie-breaking reproduce under test.
func NewController(g *Game, cfg Config, seed int64) *Controller {
	return &Controller{
		cfg:    cfg,
		g:      g,
		rnd:    rand.New(rand.NewSource(seed)),
		events: make(chan Event, 128),
		pokeCh: make(chan struct{}, 1),
	}
}

type Controller struct {
	cfg Config

	mtx sync.RWMutex
	g   *Game
	rnd *rand.Rand

	events    chan Event
	pokeCh    chan struct{}
	cancel    func()
	sema      sync.Once
	closeOnce sync.Once
}

// Events is the ordered outcome stream. It is closed after GameOver.
func (c *Controller) Events() <-chan Event {
	return c.events
}

func (c *Controller) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Run starts the timer loop. One loop per game, it is the only place
// deadlines fire.
func (c *Controller) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.sema.Do(func() {
		go c.loop(ctx)
	})
}

func (c *Controller) loop(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("game.loop")

	for {
		c.mtx.RLock()
		phase, round, deadline := c.g.Phase, c.g.Round, c.g.Deadline
		c.mtx.RUnlock()

		if phase == PhaseGameOver {
			c.closeEvents()
			return
		}

		var timerC <-chan time.Time
		var timer *time.Timer
		if !deadline.IsZero() {
			timer = time.NewTimer(time.Until(deadline))
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			c.closeEvents()
			return
		case <-timerC:
			if _, err := c.advance(advanceDeadline, phase, round); err != nil {
				logger.Errorf("advance on deadline: %v", err)
			}
		case <-c.pokeCh:
			// phase or deadline changed elsewhere, recompute the timer
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

func (c *Controller) closeEvents() {
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// poke wakes the loop so it re-arms against the current deadline.
func (c *Controller) poke() {
	select {
	case c.pokeCh <- struct{}{}:
	default:
	}
}

// Snapshot returns a read-only deep copy for renderers and persistence.
func (c *Controller) Snapshot() Snapshot {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return snapshotGame(c.g)
}

// Game exposes the chat identity without copying.
func (c *Controller) ChatID() int64 {
	return c.g.ChatID
}

func (c *Controller) Phase() Phase {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.g.Phase
}

// AddPlayer registers a participant. Legal only while waiting.
func (c *Controller) AddPlayer(userID int64, firstName string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.g.addPlayer(c.cfg, userID, firstName)
}

func (c *Controller) RemovePlayer(userID int64) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.g.removePlayer(userID)
}

// StartGame assigns roles and enters the first night.
func (c *Controller) StartGame() error {
	c.mtx.Lock()

	if c.g.Phase != PhaseWaiting {
		c.mtx.Unlock()
		return ErrWrongPhase
	}

	if err := c.g.assignRoles(c.cfg, c.rnd); err != nil {
		c.mtx.Unlock()
		return err
	}

	c.g.StartedAt = time.Now()
	c.g.Round = 1
	c.g.Phase = PhaseNight
	c.g.Deadline = time.Now().Add(c.cfg.NightDuration)

	events := make([]Event, 0, len(c.g.Players)+1)
	wolves := c.g.WolfIDs()
	for _, p := range sortedPlayers(c.g) {
		ev := RoleAssigned{UserID: p.UserID, Role: p.Role}
		if p.Role == RoleWolf {
			ev.Wolves = wolves
		}
		events = append(events, ev)
	}
	events = append(events, PhaseEntered{Phase: PhaseNight, Round: 1, Deadline: c.g.Deadline})

	c.mtx.Unlock()

	c.emit(events...)
	c.poke()
	return nil
}

// SubmitAction runs the legality predicate and writes or overwrites the
// actor's buffer entry. Completing the set of pending actions ends the night
// early, exactly as the deadline would.
func (c *Controller) SubmitAction(actorID int64, role Role, targetID int64) error {
	c.mtx.Lock()

	if c.g.Phase != PhaseNight {
		c.mtx.Unlock()
		return ErrWrongPhase
	}

	actor, ok := c.g.Players[actorID]
	if !ok || !actor.Alive || actor.Role != role {
		c.mtx.Unlock()
		return ErrUnknownActor
	}

	buffer := c.g.actionBuffer(role)
	if buffer == nil {
		c.mtx.Unlock()
		return ErrIllegalTarget
	}

	if targetID != SkipTarget && !c.g.CanTarget(role, actorID, targetID) {
		c.mtx.Unlock()
		return ErrIllegalTarget
	}

	buffer[actorID] = targetID
	complete := c.g.allActionsIn()
	phase, round := c.g.Phase, c.g.Round
	c.mtx.Unlock()

	if complete {
		if _, err := c.advance(advanceComplete, phase, round); err != nil {
			return err
		}
	}

	return nil
}

// SubmitVote records one vote per living player, self-votes rejected.
// Resubmission overwrites. The last pending vote ends the phase early.
func (c *Controller) SubmitVote(voterID, targetID int64) error {
	c.mtx.Lock()

	if c.g.Phase != PhaseVoting {
		c.mtx.Unlock()
		return ErrWrongPhase
	}

	voter, ok := c.g.Players[voterID]
	if !ok || !voter.Alive {
		c.mtx.Unlock()
		return ErrUnknownActor
	}

	if !c.g.CanVote(voterID, targetID) {
		c.mtx.Unlock()
		return ErrIllegalTarget
	}

	c.g.Votes[voterID] = targetID
	complete := c.g.allVotesIn()
	phase, round := c.g.Phase, c.g.Round
	c.mtx.Unlock()

	if complete {
		if _, err := c.advance(advanceComplete, phase, round); err != nil {
			return err
		}
	}

	return nil
}

// AdvancePhase forces the current phase to end, the way an admin command or
// the deadline does.
func (c *Controller) AdvancePhase() (PhaseResult, error) {
	c.mtx.RLock()
	phase, round := c.g.Phase, c.g.Round
	c.mtx.RUnlock()
	return c.advance(advanceAdmin, phase, round)
}

// RepeatPhase re-arms the timer and re-emits PhaseEntered without touching
// the action or vote buffers.
func (c *Controller) RepeatPhase() error {
	c.mtx.Lock()

	var d time.Duration
	switch c.g.Phase {
	case PhaseNight:
		d = c.cfg.NightDuration
	case PhaseDay:
		d = c.cfg.DayDuration
	case PhaseVoting:
		d = c.cfg.VotingDuration
	default:
		c.mtx.Unlock()
		return ErrWrongPhase
	}

	c.g.Deadline = time.Now().Add(d)
	ev := PhaseEntered{Phase: c.g.Phase, Round: c.g.Round, Deadline: c.g.Deadline}
	c.mtx.Unlock()

	c.emit(ev)
	c.poke()
	return nil
}

// EndGame terminates immediately with the admin reason. The winner is the
// side with more survivors, herbivores on a tie.
func (c *Controller) EndGame() {
	c.mtx.Lock()
	if c.g.Phase == PhaseGameOver || c.g.Phase == PhaseWaiting {
		c.g.Phase = PhaseGameOver
		c.g.Deadline = time.Time{}
		c.mtx.Unlock()
		c.poke()
		return
	}

	winner := TeamHerbivores
	if c.g.AliveByTeam(TeamPredators) > c.g.AliveByTeam(TeamHerbivores) {
		winner = TeamPredators
	}

	events := c.finishLocked(winner, ReasonAdminStop)
	c.mtx.Unlock()

	c.emit(events...)
	c.poke()
}

// Abort terminates after an unrecoverable processing error. Same winner rule
// as EndGame, a distinct reason for the renderer.
func (c *Controller) Abort() {
	c.mtx.Lock()
	if c.g.Phase == PhaseGameOver || c.g.Phase == PhaseWaiting {
		c.g.Phase = PhaseGameOver
		c.g.Deadline = time.Time{}
		c.mtx.Unlock()
		c.poke()
		return
	}

	winner := TeamHerbivores
	if c.g.AliveByTeam(TeamPredators) > c.g.AliveByTeam(TeamHerbivores) {
		winner = TeamPredators
	}

	events := c.finishLocked(winner, ReasonInternal)
	c.mtx.Unlock()

	c.emit(events...)
	c.poke()
}

// advance performs one transition of the phase table. The expected phase and
// round guard against a transition that already happened between the caller's
// observation and the lock.
func (c *Controller) advance(kind advanceKind, wantPhase Phase, wantRound int) (PhaseResult, error) {
	c.mtx.Lock()

	if c.g.Phase != wantPhase || c.g.Round != wantRound {
		res := PhaseResult{From: wantPhase, To: c.g.Phase, Round: c.g.Round}
		c.mtx.Unlock()
		return res, nil
	}

	var events []Event
	from := c.g.Phase

	switch c.g.Phase {
	case PhaseNight:
		events = append(events, c.g.resolveNight(c.cfg, c.rnd)...)
		if won, ev := c.winCheckLocked(); won {
			events = append(events, ev...)
			break
		}
		c.g.Phase = PhaseDay
		c.g.Deadline = time.Now().Add(c.cfg.DayDuration)
		events = append(events, PhaseEntered{Phase: PhaseDay, Round: c.g.Round, Deadline: c.g.Deadline})
	case PhaseDay:
		if won, ev := c.winCheckLocked(); won {
			events = append(events, ev...)
			break
		}
		c.g.Phase = PhaseVoting
		c.g.Deadline = time.Now().Add(c.cfg.VotingDuration)
		events = append(events, PhaseEntered{Phase: PhaseVoting, Round: c.g.Round, Deadline: c.g.Deadline})
	case PhaseVoting:
		events = append(events, c.g.tallyVotes()...)
		if won, ev := c.winCheckLocked(); won {
			events = append(events, ev...)
			break
		}
		c.g.Round++
		if won, ev := c.winCheckLocked(); won {
			events = append(events, ev...)
			break
		}
		c.g.Phase = PhaseNight
		c.g.Deadline = time.Now().Add(c.cfg.NightDuration)
		events = append(events, PhaseEntered{Phase: PhaseNight, Round: c.g.Round, Deadline: c.g.Deadline})
	default:
		c.mtx.Unlock()
		return PhaseResult{From: from, To: from, Round: wantRound}, ErrWrongPhase
	}

	res := PhaseResult{From: from, To: c.g.Phase, Round: c.g.Round}
	c.mtx.Unlock()

	c.emit(events...)
	c.poke()
	return res, nil
}

// winCheckLocked finishes the game when a win condition fires. Caller holds
// the write lock.
func (c *Controller) winCheckLocked() (bool, []Event) {
	winner, reason, over := c.g.winCheck(c.cfg, time.Now())
	if !over {
		return false, nil
	}
	return true, c.finishLocked(winner, reason)
}

func (c *Controller) finishLocked(winner Team, reason EndReason) []Event {
	c.g.Phase = PhaseGameOver
	c.g.Deadline = time.Time{}
	c.g.clearNightBuffers()
	c.g.Votes = map[int64]int64{}
	return []Event{GameOver{Winner: winner, Reason: reason}}
}

// emit preserves resolver order. Never call with the state lock held: the
// consumer may be blocked on a Snapshot read.
func (c *Controller) emit(events ...Event) {
	for _, ev := range events {
		c.events <- ev
	}
}

func sortedPlayers(g *Game) []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].UserID < players[j].UserID
	})
	return players
}
