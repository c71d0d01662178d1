package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
)

// Journal is an append-only SQLite log of executed signals. It is an
// operational audit trail, not an order book: nothing in the pipeline
// reads it back on the hot path.
type Journal struct {
	db *sql.DB
}

// ExecutionRecord is one journaled pipeline run.
type ExecutionRecord struct {
	ID                int64
	Symbol            string
	Direction         string
	Quantity          string
	EntryPrice        string
	TakeProfitPrice   string
	StopLossPrice     string
	Outcome           string
	Error             string
	EntryOrderID      string
	TakeProfitOrderID string
	StopLossOrderID   string
	CreatedAt         int64
}

// NewJournal opens (or creates) the journal database with WAL mode
// enabled.
func NewJournal(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS executions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL,
			direction TEXT NOT NULL,
			quantity TEXT NOT NULL,
			entry_price TEXT NOT NULL,
			take_profit_price TEXT NOT NULL,
			stop_loss_price TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			entry_order_id TEXT NOT NULL DEFAULT '',
			take_profit_order_id TEXT NOT NULL DEFAULT '',
			stop_loss_order_id TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create executions table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record appends one pipeline run. execErr carries the error the run
// ended with, nil on success.
func (j *Journal) Record(ctx context.Context, seq *domain.OrderSequence, execErr error) error {
	errText := ""
	if execErr != nil {
		errText = execErr.Error()
	}

	sig := seq.Signal
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO executions (
			symbol, direction, quantity,
			entry_price, take_profit_price, stop_loss_price,
			outcome, error,
			entry_order_id, take_profit_order_id, stop_loss_order_id,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sig.Symbol, string(sig.Direction), sig.Quantity.String(),
		sig.EntryPrice.String(), sig.TakeProfitPrice.String(), sig.StopLossPrice.String(),
		string(seq.Outcome), errText,
		seq.Legs[0].ExchangeOrderID, seq.Legs[1].ExchangeOrderID, seq.Legs[2].ExchangeOrderID,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution: %w", err)
	}
	return nil
}

// Recent returns the newest n records, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]ExecutionRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, symbol, direction, quantity,
			entry_price, take_profit_price, stop_loss_price,
			outcome, error,
			entry_order_id, take_profit_order_id, stop_loss_order_id,
			created_at
		FROM executions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var records []ExecutionRecord
	for rows.Next() {
		var rec ExecutionRecord
		if err := rows.Scan(
			&rec.ID, &rec.Symbol, &rec.Direction, &rec.Quantity,
			&rec.EntryPrice, &rec.TakeProfitPrice, &rec.StopLossPrice,
			&rec.Outcome, &rec.Error,
			&rec.EntryOrderID, &rec.TakeProfitOrderID, &rec.StopLossOrderID,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
