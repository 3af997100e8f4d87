package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

// ErrUnavailable is reported when the backing database cannot be opened.
// Callers fall back to Unavailable() instead of failing.
var ErrUnavailable = errors.New("storage unavailable")

// Store is a namespaced key-value store of JSON records.
type Store interface {
	// Get decodes the record at key into dst. It reports false when the key is
	// absent or its stored value cannot be decoded.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, v any) error
	// Commit writes every record and ledger entry of m atomically.
	Commit(ctx context.Context, m Mutation) error
	ListLedger(ctx context.Context, limit int) ([]LedgerEntry, error)
}

// Mutation groups the writes of a single user action.
type Mutation struct {
	Records map[string]any
	Ledger  []LedgerEntry
}

// Set queues a record write.
func (m *Mutation) Set(key string, v any) {
	if m.Records == nil {
		m.Records = map[string]any{}
	}
	m.Records[key] = v
}

// Record queues a ledger entry.
func (m *Mutation) Record(e LedgerEntry) {
	m.Ledger = append(m.Ledger, e)
}

type RecordStore struct {
	db  *sql.DB
	log *log.Logger
}

func NewRecordStore(db *sql.DB, logger *log.Logger) *RecordStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RecordStore{db: db, log: logger}
}

func (s *RecordStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("record get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Printf("ignoring malformed record %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *RecordStore) Put(ctx context.Context, key string, v any) error {
	return s.Commit(ctx, Mutation{Records: map[string]any{key: v}})
}

func (s *RecordStore) Commit(ctx context.Context, m Mutation) error {
	encoded := make(map[string]string, len(m.Records))
	for key, v := range m.Records {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", key, err)
		}
		encoded[key] = string(data)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		for key, value := range encoded {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, value, now)
			if err != nil {
				return fmt.Errorf("record put %s: %w", key, err)
			}
		}
		for _, e := range m.Ledger {
			if err := insertLedger(ctx, tx, e, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// inTx runs fn in a transaction, rolling back unless fn and the commit succeed.
func (s *RecordStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *RecordStore) ListLedger(ctx context.Context, limit int) ([]LedgerEntry, error) {
	return listLedger(ctx, s.db, limit)
}

type unavailableStore struct{}

// Unavailable returns a Store whose reads find nothing and whose writes are
// dropped. Repos built on it serve their hard-coded defaults.
func Unavailable() Store { return unavailableStore{} }

func (unavailableStore) Get(context.Context, string, any) (bool, error) { return false, nil }
func (unavailableStore) Put(context.Context, string, any) error         { return nil }
func (unavailableStore) Commit(context.Context, Mutation) error         { return nil }
func (unavailableStore) ListLedger(context.Context, int) ([]LedgerEntry, error) {
	return nil, nil
}
