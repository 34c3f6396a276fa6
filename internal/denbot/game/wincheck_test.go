package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPredatorsWinOnParity(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleWolf, 3: RoleHare, 4: RoleHare})
	g.StartedAt = time.Now()

	winner, reason, over := g.winCheck(DefaultConfig(), time.Now())
	require.True(t, over)
	require.Equal(t, TeamPredators, winner)
	require.Equal(t, ReasonPredatorParity, reason)
}

func TestHerbivoresWinWhenWolvesDead(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleFox, 3: RoleHare, 4: RoleHare, 5: RoleMole})
	g.StartedAt = time.Now()
	g.Players[1].Alive = false

	winner, reason, over := g.winCheck(DefaultConfig(), time.Now())
	require.True(t, over)
	require.Equal(t, TeamHerbivores, winner)
	require.Equal(t, ReasonWolvesDead, reason)
}

func TestGameContinues(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare, 4: RoleHare})
	g.StartedAt = time.Now()

	_, _, over := g.winCheck(DefaultConfig(), time.Now())
	require.False(t, over)
}

func TestRoundCapTermination(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare, 4: RoleHare})
	g.StartedAt = time.Now()
	g.Round = 21

	winner, reason, over := g.winCheck(DefaultConfig(), time.Now())
	require.True(t, over)
	require.Equal(t, TeamHerbivores, winner)
	require.Equal(t, ReasonRoundLimit, reason)
}

func TestTimeCapTermination(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare, 4: RoleHare})
	g.StartedAt = time.Now()

	winner, reason, over := g.winCheck(DefaultConfig(), time.Now().Add(2*time.Hour+time.Second))
	require.True(t, over)
	require.Equal(t, TeamHerbivores, winner)
	require.Equal(t, ReasonTimeLimit, reason)
}

func TestWinCheckIsDeterministic(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleWolf, 3: RoleHare, 4: RoleHare, 5: RoleHare})
	g.StartedAt = time.Now()
	now := time.Now()
	cfg := DefaultConfig()

	w1, r1, o1 := g.winCheck(cfg, now)
	w2, r2, o2 := g.winCheck(cfg, now)
	require.Equal(t, w1, w2)
	require.Equal(t, r1, r2)
	require.Equal(t, o1, o2)
}

func TestParityBeatsRoundCap(t *testing.T) {
	t.Parallel()

	// both conditions hold, priority order picks the predators
	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleWolf, 3: RoleHare, 4: RoleHare})
	g.StartedAt = time.Now()
	g.Round = 25

	winner, _, over := g.winCheck(DefaultConfig(), time.Now())
	require.True(t, over)
	require.Equal(t, TeamPredators, winner)
}
