package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func insertLedger(ctx context.Context, db execer, e LedgerEntry, now time.Time) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO ledger (kind, detail, item_id, currency_delta, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.Kind, e.Detail, e.ItemID, e.CurrencyDelta, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("ledger insert: %w", err)
	}
	return nil
}

// listLedger returns the newest entries first. limit <= 0 returns everything.
func listLedger(ctx context.Context, db *sql.DB, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, kind, detail, item_id, currency_delta, created_at
		FROM ledger
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger list: %w", err)
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		e, err := scanLedgerRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger rows: %w", err)
	}
	return out, nil
}

func scanLedgerRow(row scanner) (LedgerEntry, error) {
	var (
		e      LedgerEntry
		itemID sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Kind, &e.Detail, &itemID, &e.CurrencyDelta, &e.CreatedAt); err != nil {
		return LedgerEntry{}, fmt.Errorf("ledger scan: %w", err)
	}
	if itemID.Valid {
		v := itemID.String
		e.ItemID = &v
	}
	return e, nil
}
