package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testMinimumController(t *testing.T, seed int64) (*Controller, map[Role]int64) {
	t.Helper()

	g := NewGame(100, 0, true)
	c := NewController(g, DefaultConfig(), seed)
	require.NoError(t, c.AddPlayer(1, "A"))
	require.NoError(t, c.AddPlayer(2, "B"))
	require.NoError(t, c.AddPlayer(3, "C"))
	require.NoError(t, c.StartGame())

	byRole := map[Role]int64{}
	for _, p := range c.Snapshot().Players {
		byRole[p.Role] = p.UserID
	}
	require.Len(t, byRole, 3, "minimum game has one wolf, one fox, one hare")

	return c, byRole
}

func drainEvents(c *Controller) []Event {
	var events []Event
	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestStartGameAssignsRolesAndEntersNight(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	snap := c.Snapshot()

	require.Equal(t, PhaseNight, snap.Phase)
	require.Equal(t, 1, snap.Round)
	require.False(t, snap.Deadline.IsZero())

	events := drainEvents(c)
	require.Len(t, events, 4, "three role cards and one phase banner")
	for _, ev := range events[:3] {
		assigned, ok := ev.(RoleAssigned)
		require.True(t, ok)
		if assigned.Role == RoleWolf {
			require.Equal(t, []int64{byRole[RoleWolf]}, assigned.Wolves)
		}
	}
	require.Equal(t, PhaseEntered{Phase: PhaseNight, Round: 1, Deadline: snap.Deadline}, events[3])
}

func TestStartGameRequiresEnoughPlayers(t *testing.T) {
	t.Parallel()

	g := NewGame(100, 0, false)
	c := NewController(g, DefaultConfig(), 1)
	require.NoError(t, c.AddPlayer(1, "A"))
	require.ErrorIs(t, c.StartGame(), ErrInsufficientPlayers)
	require.Equal(t, PhaseWaiting, c.Phase())

	require.NoError(t, c.AddPlayer(2, "B"))
	require.NoError(t, c.AddPlayer(3, "C"))
	require.ErrorIs(t, c.StartGame(), ErrInsufficientPlayers, "test-mode minimum needs the flag")
}

func TestMinimumGameFirstNight(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	drainEvents(c)
	wolf, fox, hare := byRole[RoleWolf], byRole[RoleFox], byRole[RoleHare]

	require.NoError(t, c.SubmitAction(wolf, RoleWolf, hare))
	require.NoError(t, c.SubmitAction(fox, RoleFox, hare))

	// the hare has no night power, both actions complete the night early
	snap := c.Snapshot()
	require.Equal(t, PhaseDay, snap.Phase)

	target, ok := snap.Player(hare)
	require.True(t, ok)
	require.True(t, target.Alive, "round one is the quiet night")
	require.Equal(t, 1, target.Supplies)
	require.Equal(t, 1, target.StolenSupplies)

	events := drainEvents(c)
	require.Equal(t, []Event{
		FoxStolen{FoxID: fox, Target: hare},
		PhaseEntered{Phase: PhaseDay, Round: 1, Deadline: snap.Deadline},
	}, events)
}

func TestResubmissionOverwrites(t *testing.T) {
	t.Parallel()

	g := NewGame(100, 0, false)
	cfg := DefaultConfig()
	c := NewController(g, cfg, 3)
	for i := int64(1); i <= 6; i++ {
		require.NoError(t, c.AddPlayer(i, "p"))
	}
	require.NoError(t, c.StartGame())
	drainEvents(c)

	var wolf int64
	var hares []int64
	for _, p := range c.Snapshot().Players {
		switch p.Role {
		case RoleWolf:
			wolf = p.UserID
		case RoleHare:
			hares = append(hares, p.UserID)
		}
	}
	require.GreaterOrEqual(t, len(hares), 2)

	require.NoError(t, c.SubmitAction(wolf, RoleWolf, hares[0]))
	require.NoError(t, c.SubmitAction(wolf, RoleWolf, hares[1]))

	c.mtx.RLock()
	require.Equal(t, map[int64]int64{wolf: hares[1]}, c.g.WolfTargets)
	c.mtx.RUnlock()
}

func TestSubmitActionLegality(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	drainEvents(c)
	wolf, fox := byRole[RoleWolf], byRole[RoleFox]

	require.ErrorIs(t, c.SubmitAction(wolf, RoleFox, fox), ErrUnknownActor, "role must match")
	require.ErrorIs(t, c.SubmitAction(wolf, RoleWolf, wolf), ErrIllegalTarget, "wolves do not eat wolves")
	require.ErrorIs(t, c.SubmitAction(999, RoleWolf, fox), ErrUnknownActor)
	require.NoError(t, c.SubmitAction(wolf, RoleWolf, SkipTarget), "skipping is always legal")
}

func TestVotingFlow(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	drainEvents(c)
	wolf, fox, hare := byRole[RoleWolf], byRole[RoleFox], byRole[RoleHare]

	_, err := c.AdvancePhase() // night -> day
	require.NoError(t, err)
	res, err := c.AdvancePhase() // day -> voting
	require.NoError(t, err)
	require.Equal(t, PhaseVoting, res.To)
	drainEvents(c)

	require.ErrorIs(t, c.SubmitVote(wolf, wolf), ErrIllegalTarget, "no self-vote")
	require.NoError(t, c.SubmitVote(wolf, hare))
	require.NoError(t, c.SubmitVote(fox, hare))
	require.NoError(t, c.SubmitVote(hare, SkipTarget))

	// hare exiled, one wolf against one fox remains: predator parity
	snap := c.Snapshot()
	require.Equal(t, PhaseGameOver, snap.Phase)

	events := drainEvents(c)
	require.Equal(t, []Event{
		Exiled{UserID: hare, Role: RoleHare},
		GameOver{Winner: TeamPredators, Reason: ReasonPredatorParity},
	}, events)
}

func TestVoteTieAdvancesRound(t *testing.T) {
	t.Parallel()

	g := NewGame(100, 0, false)
	c := NewController(g, DefaultConfig(), 3)
	for i := int64(1); i <= 6; i++ {
		require.NoError(t, c.AddPlayer(i, "p"))
	}
	require.NoError(t, c.StartGame())

	_, err := c.AdvancePhase() // night -> day
	require.NoError(t, err)
	_, err = c.AdvancePhase() // day -> voting
	require.NoError(t, err)
	drainEvents(c)

	// split vote, nobody reaches a strict majority
	require.NoError(t, c.SubmitVote(1, 2))
	require.NoError(t, c.SubmitVote(2, 3))
	require.NoError(t, c.SubmitVote(3, 1))
	require.NoError(t, c.SubmitVote(4, 5))
	require.NoError(t, c.SubmitVote(5, 6))
	require.NoError(t, c.SubmitVote(6, 4))

	snap := c.Snapshot()
	require.Equal(t, PhaseNight, snap.Phase)
	require.Equal(t, 2, snap.Round)
	require.Equal(t, 6, snap.AliveCount())

	events := drainEvents(c)
	require.Equal(t, NoExile{}, events[0])
	require.Equal(t, PhaseEntered{Phase: PhaseNight, Round: 2, Deadline: snap.Deadline}, events[1])
}

func TestWrongPhaseSubmissions(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	drainEvents(c)
	wolf, hare := byRole[RoleWolf], byRole[RoleHare]

	require.ErrorIs(t, c.SubmitVote(wolf, hare), ErrWrongPhase, "no voting at night")

	_, err := c.AdvancePhase() // night -> day
	require.NoError(t, err)
	require.ErrorIs(t, c.SubmitAction(wolf, RoleWolf, hare), ErrWrongPhase, "no actions by day")
}

func TestDeadPlayersAreLockedOut(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	drainEvents(c)
	wolf, fox, hare := byRole[RoleWolf], byRole[RoleFox], byRole[RoleHare]

	// starve the hare over two nights
	require.NoError(t, c.SubmitAction(wolf, RoleWolf, SkipTarget))
	require.NoError(t, c.SubmitAction(fox, RoleFox, hare))
	_, err := c.AdvancePhase() // day -> voting
	require.NoError(t, err)
	_, err = c.AdvancePhase() // voting -> night, round 2
	require.NoError(t, err)

	require.NoError(t, c.SubmitAction(wolf, RoleWolf, SkipTarget))
	require.NoError(t, c.SubmitAction(fox, RoleFox, hare))
	drainEvents(c)

	snap := c.Snapshot()
	target, ok := snap.Player(hare)
	require.True(t, ok)
	require.False(t, target.Alive, "second steal starves the hare")

	require.Equal(t, PhaseGameOver, snap.Phase, "wolf and fox remain: predator parity")
}

func TestRepeatPhaseKeepsBuffers(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)
	drainEvents(c)
	wolf, hare := byRole[RoleWolf], byRole[RoleHare]

	require.NoError(t, c.SubmitAction(wolf, RoleWolf, hare))
	require.NoError(t, c.RepeatPhase())

	events := drainEvents(c)
	require.Len(t, events, 1)
	entered, ok := events[0].(PhaseEntered)
	require.True(t, ok)
	require.Equal(t, PhaseNight, entered.Phase)

	c.mtx.RLock()
	require.Equal(t, map[int64]int64{wolf: hare}, c.g.WolfTargets)
	c.mtx.RUnlock()
}

func TestDeadlineDrivesPhases(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.NightDuration = 30 * time.Millisecond
	cfg.DayDuration = 30 * time.Millisecond
	cfg.VotingDuration = 30 * time.Millisecond

	g := NewGame(100, 0, true)
	c := NewController(g, cfg, 1)
	require.NoError(t, c.AddPlayer(1, "A"))
	require.NoError(t, c.AddPlayer(2, "B"))
	require.NoError(t, c.AddPlayer(3, "C"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx)
	require.NoError(t, c.StartGame())

	deadline := time.After(5 * time.Second)
	seen := map[Phase]bool{}
	for !seen[PhaseVoting] {
		select {
		case ev, ok := <-c.Events():
			require.True(t, ok, "stream must not close before voting")
			if entered, isPhase := ev.(PhaseEntered); isPhase {
				seen[entered.Phase] = true
			}
		case <-deadline:
			t.Fatal("timers did not drive the game through night and day")
		}
	}

	require.True(t, seen[PhaseNight])
	require.True(t, seen[PhaseDay])
}

func TestEventsChannelClosesAfterGameOver(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Run(ctx)

	_, err := c.AdvancePhase() // night -> day
	require.NoError(t, err)
	_, err = c.AdvancePhase() // day -> voting
	require.NoError(t, err)

	require.NoError(t, c.SubmitVote(byRole[RoleWolf], byRole[RoleHare]))
	require.NoError(t, c.SubmitVote(byRole[RoleFox], byRole[RoleHare]))
	require.NoError(t, c.SubmitVote(byRole[RoleHare], SkipTarget))

	deadline := time.After(5 * time.Second)
	var sawGameOver bool
	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				require.True(t, sawGameOver)
				return
			}
			if _, isOver := ev.(GameOver); isOver {
				sawGameOver = true
			}
		case <-deadline:
			t.Fatal("events channel did not close after game over")
		}
	}
}

func TestAbortFinishesWithInternalReason(t *testing.T) {
	t.Parallel()

	c, _ := testMinimumController(t, 11)
	drainEvents(c)

	c.Abort()
	require.Equal(t, PhaseGameOver, c.Phase())

	events := drainEvents(c)
	require.Len(t, events, 1)
	over, ok := events[0].(GameOver)
	require.True(t, ok)
	require.Equal(t, ReasonInternal, over.Reason)
	require.Equal(t, TeamPredators, over.Winner, "wolf and fox outnumber the hare in the minimum deal")
}

func TestTimeLimitEndsGameAtDayEnd(t *testing.T) {
	t.Parallel()

	c, byRole := testMinimumController(t, 17)
	require.NoError(t, c.SubmitAction(byRole[RoleWolf], RoleWolf, SkipTarget))
	require.NoError(t, c.SubmitAction(byRole[RoleFox], RoleFox, SkipTarget))
	require.Equal(t, PhaseDay, c.Phase())
	drainEvents(c)

	c.mtx.Lock()
	c.g.StartedAt = time.Now().Add(-3 * time.Hour)
	c.mtx.Unlock()

	res, err := c.AdvancePhase()
	require.NoError(t, err)
	require.Equal(t, PhaseGameOver, res.To, "an overdue game must not open the voting")
	require.Equal(t, PhaseGameOver, c.Phase())

	events := drainEvents(c)
	require.Len(t, events, 1)
	over, ok := events[0].(GameOver)
	require.True(t, ok)
	require.Equal(t, ReasonTimeLimit, over.Reason)
	require.Equal(t, TeamHerbivores, over.Winner)
}
