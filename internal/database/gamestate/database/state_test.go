package database

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/den-games/denbot/internal/byteutil"
	"github.com/den-games/denbot/internal/database"
	"github.com/den-games/denbot/internal/database/gamestate/model"
	"github.com/den-games/denbot/internal/denbot/game"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	bdb, err := bolt.Open(filepath.Join(t.TempDir(), "den.db"), 0600, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, bdb.Close())
	})

	return &database.DB{DB: bdb}
}

func TestFetchAllRoundTrip(t *testing.T) {
	t.Parallel()

	db := New(testDB(t))

	_, err := db.FetchAll()
	require.ErrorIs(t, err, ErrEntryNotFound)

	state := model.State{
		Snapshot:   game.Snapshot{ChatID: 200},
		AuthorID:   1,
		AuthorName: "A",
	}
	require.NoError(t, db.Add(state))

	list, err := db.FetchAll()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, int64(200), list[0].Snapshot.ChatID)
	require.Equal(t, "A", list[0].AuthorName)
}

func TestFetchAllRejectsMismatchedKey(t *testing.T) {
	t.Parallel()

	sDB := testDB(t)
	db := New(sDB)
	require.NoError(t, db.Add(model.State{Snapshot: game.Snapshot{ChatID: 200}}))

	// an entry filed under the wrong chat must fail the restore, not be
	// silently delivered to another group
	require.NoError(t, sDB.DB.Update(func(tx *bolt.Tx) error {
		bytes, err := json.Marshal(model.State{Snapshot: game.Snapshot{ChatID: 5}})
		require.NoError(t, err)
		return tx.Bucket([]byte(prefix)).Put(byteutil.EncodeInt64ToBytes(6), bytes)
	}))

	_, err := db.FetchAll()
	require.Error(t, err)
}

func TestDeleteRemovesState(t *testing.T) {
	t.Parallel()

	db := New(testDB(t))
	require.NoError(t, db.Add(model.State{Snapshot: game.Snapshot{ChatID: 200}}))
	require.NoError(t, db.Delete(200))

	list, err := db.FetchAll()
	require.NoError(t, err)
	require.Empty(t, list)
}
