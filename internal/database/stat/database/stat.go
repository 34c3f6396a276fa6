package database

import (
	"encoding/json"
	"fmt"

	"github.com/den-games/denbot/internal/byteutil"
	"github.com/den-games/denbot/internal/cache"
	"github.com/den-games/denbot/internal/database"
	"github.com/den-games/denbot/internal/database/stat/model"
	bolt "go.etcd.io/bbolt"
)

const prefix = "stat"

var (
	pLen        = len(prefix)
	ErrNotFound = fmt.Errorf("not found")
)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) BytesBucket(userID int64) []byte {
	b := make([]byte, pLen+2<<5) // prefix + uint64
	copy(b, prefix[:])
	copy(b[pLen:], byteutil.EncodeInt64ToBytes(userID))
	return b
}

// SerialBucket is the cache key, a zero-copy string view of the bucket key.
func (db *DB) SerialBucket(userID int64) string {
	return byteutil.BytesToString(db.BytesBucket(userID))
}

// FetchProfileStat folds every stored game into the profile aggregate.
func (db *DB) FetchProfileStat(userID int64) (model.AggregationStat, error) {
	aggregationStat := model.AggregationStat{Roles: map[string]int{}}

	stats, err := db.FetchByUserID(userID)
	if err != nil {
		return aggregationStat, fmt.Errorf("fetch by userID: %w", err)
	}

	for _, stat := range stats {
		aggregationStat.Count++
		if stat.Won {
			aggregationStat.Wins++
		}
		if stat.Survived {
			aggregationStat.Survived++
		}
		if stat.Exiled {
			aggregationStat.Exiled++
		}
		aggregationStat.Roles[stat.Role]++
		aggregationStat.SumRounds += stat.Rounds
	}

	if aggregationStat.Count > 0 {
		aggregationStat.AvgRounds = aggregationStat.SumRounds / aggregationStat.Count
	}

	return aggregationStat, nil
}

func (db *DB) FetchByUserID(userID int64) ([]model.Stat, error) {
	var list []model.Stat
	bBucket := db.BytesBucket(userID)
	sBucket := db.SerialBucket(userID)
	if db.cache != nil {
		v, ok := db.cache.Get(sBucket)
		if ok {
			return v.([]model.Stat), nil
		}
	}

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBucket)
		if b == nil {
			return ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var stat model.Stat
			if err := json.Unmarshal(v, &stat); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
			list = append(list, stat)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(sBucket, list)
	}

	return list, nil
}

func (db *DB) Add(m model.Stat) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	bBucket := db.BytesBucket(m.UserID)
	sBucket := db.SerialBucket(m.UserID)

	b := tx.Bucket(bBucket)
	if b == nil {
		bs, err := tx.CreateBucket(db.BytesBucket(m.UserID))
		if err != nil {
			return fmt.Errorf("can not create bucket %d: %w", m.UserID, err)
		}
		b = bs
	}

	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := b.Put(binaryID, bytes); err != nil {
		return fmt.Errorf("put to bucket error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(sBucket)
	}

	return nil
}
