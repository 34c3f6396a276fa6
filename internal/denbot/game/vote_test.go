package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExileByMajority(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare, 4: RoleHare})
	g.Phase = PhaseVoting
	g.Votes = map[int64]int64{2: 1, 3: 1, 4: 1, 1: 2}

	events := g.tallyVotes()

	require.Equal(t, []Event{Exiled{UserID: 1, Role: RoleWolf}}, events)
	require.False(t, g.Players[1].Alive)
	require.Empty(t, g.Votes, "vote buffer cleared")
}

func TestVoteTieExilesNoOne(t *testing.T) {
	t.Parallel()

	// everyone votes in a circle
	g := testGame(t, map[int64]Role{1: RoleHare, 2: RoleHare, 3: RoleWolf})
	g.Phase = PhaseVoting
	g.Votes = map[int64]int64{1: 2, 2: 3, 3: 1}

	events := g.tallyVotes()

	require.Equal(t, []Event{NoExile{}}, events)
	for _, p := range g.Players {
		require.True(t, p.Alive)
	}
}

func TestSkipMajorityExilesNoOne(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare, 4: RoleHare})
	g.Phase = PhaseVoting
	g.Votes = map[int64]int64{1: SkipTarget, 2: SkipTarget, 3: SkipTarget, 4: 1}

	events := g.tallyVotes()

	require.Equal(t, []Event{NoExile{}}, events)
	require.True(t, g.Players[1].Alive)
}

func TestSkipTieWithLeaderExilesNoOne(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare, 4: RoleHare})
	g.Phase = PhaseVoting
	g.Votes = map[int64]int64{1: SkipTarget, 2: SkipTarget, 3: 1, 4: 1}

	require.Equal(t, []Event{NoExile{}}, g.tallyVotes())
}

func TestDeadVotersDoNotCount(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare})
	g.Phase = PhaseVoting
	g.Players[3].Alive = false
	g.Votes = map[int64]int64{2: 1, 3: 2}

	events := g.tallyVotes()

	require.Equal(t, []Event{Exiled{UserID: 1, Role: RoleWolf}}, events)
	require.True(t, g.Players[2].Alive)
}

func TestNoVotesNoExile(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare, 3: RoleHare})
	g.Phase = PhaseVoting

	require.Equal(t, []Event{NoExile{}}, g.tallyVotes())
}
