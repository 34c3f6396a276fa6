package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleCountsTestMode(t *testing.T) {
	t.Parallel()

	counts := roleCounts(DefaultConfig(), 3, true)
	require.Equal(t, 1, counts[RoleWolf])
	require.Equal(t, 1, counts[RoleFox])
	require.Equal(t, 1, counts[RoleHare])
	require.Zero(t, counts[RoleMole])
	require.Zero(t, counts[RoleBeaver])
}

func TestRoleCountsTypicalSizes(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	for n := cfg.MinPlayers; n <= cfg.MaxPlayers; n++ {
		counts := roleCounts(cfg, n, false)

		var total int
		for _, c := range counts {
			total += c
		}
		require.Equal(t, n, total, "n=%d", n)

		require.GreaterOrEqual(t, counts[RoleWolf], 1, "n=%d", n)
		require.Equal(t, 1, counts[RoleFox], "n=%d", n)
		require.Equal(t, 1, counts[RoleMole], "n=%d", n)
		require.Equal(t, 1, counts[RoleBeaver], "n=%d", n)
		require.GreaterOrEqual(t, counts[RoleHare], 0, "n=%d", n)
	}
}

func TestRoleCountsNoNegativeHares(t *testing.T) {
	t.Parallel()

	// 4 players: four fixed roles eat the whole roster
	counts := roleCounts(DefaultConfig(), 4, true)
	require.Zero(t, counts[RoleHare])
}

func TestAssignRolesPlayerBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	rnd := rand.New(rand.NewSource(1))

	g := NewGame(1, 0, false)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, g.addPlayer(cfg, i, "p"))
	}
	require.ErrorIs(t, g.assignRoles(cfg, rnd), ErrInsufficientPlayers)

	g = NewGame(1, 0, true)
	require.NoError(t, g.addPlayer(cfg, 1, "p"))
	require.NoError(t, g.addPlayer(cfg, 2, "p"))
	require.ErrorIs(t, g.assignRoles(cfg, rnd), ErrInsufficientPlayers)

	require.NoError(t, g.addPlayer(cfg, 3, "p"))
	require.NoError(t, g.assignRoles(cfg, rnd))
}

func TestAssignRolesEveryPlayerGetsOne(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	g := NewGame(1, 0, false)
	for i := int64(1); i <= 8; i++ {
		require.NoError(t, g.addPlayer(cfg, i, "p"))
	}
	require.NoError(t, g.assignRoles(cfg, rand.New(rand.NewSource(7))))

	byTeam := map[Team]int{}
	byRole := map[Role]int{}
	for _, p := range g.Players {
		require.NotZero(t, p.Role)
		require.Equal(t, p.Role.TeamOf(), p.Team)
		byTeam[p.Team]++
		byRole[p.Role]++
	}

	require.Equal(t, 8, byTeam[TeamPredators]+byTeam[TeamHerbivores])
	require.Equal(t, 2, byRole[RoleWolf])
	require.Equal(t, 1, byRole[RoleFox])
	require.Equal(t, 1, byRole[RoleMole])
	require.Equal(t, 1, byRole[RoleBeaver])
	require.Equal(t, 3, byRole[RoleHare])
}

func TestAssignRolesDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	build := func(seed int64) map[int64]Role {
		g := NewGame(1, 0, false)
		for i := int64(1); i <= 9; i++ {
			require.NoError(t, g.addPlayer(cfg, i, "p"))
		}
		require.NoError(t, g.assignRoles(cfg, rand.New(rand.NewSource(seed))))

		roles := map[int64]Role{}
		for id, p := range g.Players {
			roles[id] = p.Role
		}
		return roles
	}

	require.Equal(t, build(42), build(42))
}
