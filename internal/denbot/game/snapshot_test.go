package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotSurvivesPersistence(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{
		1: RoleWolf,
		2: RoleFox,
		3: RoleBeaver,
		4: RoleHare,
	})
	g.WolfTargets[1] = 4
	g.FoxTargets[2] = 4
	g.Players[4].Supplies = 1
	g.Players[4].StolenSupplies = 1
	g.Players[4].BeaverProtected = true

	before := snapshotGame(g)

	raw, err := json.Marshal(before)
	require.NoError(t, err)

	var persisted Snapshot
	require.NoError(t, json.Unmarshal(raw, &persisted))

	restored := RestoreGame(persisted)
	require.Equal(t, before, snapshotGame(restored))

	p, ok := restored.Player(4)
	require.True(t, ok)
	require.True(t, p.BeaverProtected)
	require.False(t, restored.CanTarget(RoleFox, 2, 4), "protection survives the restore")
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	g := testGame(t, map[int64]Role{1: RoleWolf, 2: RoleHare})
	g.WolfTargets[1] = 2

	snap := snapshotGame(g)
	g.Players[2].Alive = false
	g.WolfTargets[1] = SkipTarget

	p, ok := snap.Player(2)
	require.True(t, ok)
	require.True(t, p.Alive)
	require.Equal(t, int64(2), snap.WolfTargets[1])
}
