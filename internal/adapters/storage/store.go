// Package storage persists videos, trends and generated artifacts in an
// embedded badger store.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/xjson"
)

const (
	videoPrefix  = "video:"
	trendPrefix  = "trend:"
	titlePrefix  = "title:"
	scriptPrefix = "script:"
	remixPrefix  = "remix:"
)

type Store struct {
	db     *badger.DB
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) the store under dataDir.
func Open(dataDir string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dataDir).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dataDir, err)
	}
	return newStore(db, logger), nil
}

// OpenInMemory opens a throwaway store backed by memory only.
func OpenInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return newStore(db, logger), nil
}

func newStore(db *badger.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With("component", "storage"),
	}
}

// UpsertVideoIfAbsent inserts the video unless one with the same ID exists.
// The check and insert run in one badger transaction, so concurrent duplicate
// inserts cannot both succeed.
func (s *Store) UpsertVideoIfAbsent(video *domain.VideoRecord) (bool, error) {
	if video == nil || video.VideoID == "" {
		return false, domain.ErrInvalidInput
	}

	key := []byte(videoPrefix + video.VideoID)
	inserted := false

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		value, err := xjson.Marshal(video)
		if err != nil {
			return err
		}
		if err := txn.Set(key, value); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if !inserted {
		s.logger.Debug("video already persisted", "video_id", video.VideoID)
	}
	return inserted, nil
}

func (s *Store) VideoExists(videoID string) (bool, error) {
	exists := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(videoPrefix + videoID))
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	return exists, err
}

// UpsertTrend writes the record under its keyword. An existing row's count is
// replaced by the new record's count, not added to it.
func (s *Store) UpsertTrend(trend *domain.TrendRecord) error {
	if trend == nil || trend.Keyword == "" {
		return domain.ErrInvalidInput
	}

	value, err := xjson.Marshal(trend)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(trendPrefix+trend.Keyword), value)
	})
}

func (s *Store) ListTrends() ([]*domain.TrendRecord, error) {
	var records []*domain.TrendRecord

	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanPrefix(txn, trendPrefix, func(value []byte) error {
			var record domain.TrendRecord
			if err := xjson.Unmarshal(value, &record); err != nil {
				return err
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Count > records[j].Count
	})
	return records, nil
}

func (s *Store) InsertTitleSet(set *domain.GeneratedTitleSet) error {
	if set == nil || set.ID == "" {
		return domain.ErrInvalidInput
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}

	value, err := xjson.Marshal(set)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%d:%s", titlePrefix, set.UserID, set.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *Store) InsertScript(script *domain.ScriptRecord) error {
	if script == nil || script.ID == "" {
		return domain.ErrInvalidInput
	}
	if script.CreatedAt.IsZero() {
		script.CreatedAt = time.Now().UTC()
	}

	value, err := xjson.Marshal(script)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%d:%s", scriptPrefix, script.UserID, script.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// ScriptsByTopic scans the account's scripts and keeps those whose input
// title matches topic exactly, oldest first.
func (s *Store) ScriptsByTopic(userID int, topic string) ([]*domain.ScriptRecord, error) {
	prefix := fmt.Sprintf("%s%d:", scriptPrefix, userID)
	var records []*domain.ScriptRecord

	err := s.db.View(func(txn *badger.Txn) error {
		return s.scanPrefix(txn, prefix, func(value []byte) error {
			var record domain.ScriptRecord
			if err := xjson.Unmarshal(value, &record); err != nil {
				return err
			}
			if record.InputTitle == topic {
				records = append(records, &record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *Store) InsertRemix(remix *domain.RemixRecord) error {
	if remix == nil || remix.ID == "" {
		return domain.ErrInvalidInput
	}
	if remix.CreatedAt.IsZero() {
		remix.CreatedAt = time.Now().UTC()
	}

	value, err := xjson.Marshal(remix)
	if err != nil {
		return err
	}

	key := remixPrefix + remix.ID
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) scanPrefix(txn *badger.Txn, prefix string, fn func(value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		if !strings.HasPrefix(string(item.Key()), prefix) {
			break
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := fn(value); err != nil {
			return err
		}
	}
	return nil
}
