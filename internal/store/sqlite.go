package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			decision_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			response_key TEXT NOT NULL,
			counter_price REAL,
			current_offer REAL NOT NULL,
			policy_version TEXT NOT NULL,
			metadata TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// CreateDecision persists one decision audit row.
func (s *SQLiteStore) CreateDecision(ctx context.Context, rec *domain.DecisionRecord) error {
	var counterPrice sql.NullFloat64
	if rec.CounterPrice != nil {
		counterPrice = sql.NullFloat64{Float64: *rec.CounterPrice, Valid: true}
	}
	var metadata sql.NullString
	if len(rec.Metadata) > 0 {
		metadata = sql.NullString{String: string(rec.Metadata), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions (decision_id, session_id, action, response_key, counter_price, current_offer, policy_version, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DecisionID, rec.SessionID, string(rec.Action), rec.ResponseKey,
		counterPrice, rec.CurrentOffer, rec.PolicyVersion, metadata, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}
	return nil
}

// GetDecision retrieves a decision by ID. Returns nil when not found.
func (s *SQLiteStore) GetDecision(ctx context.Context, decisionID string) (*domain.DecisionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT decision_id, session_id, action, response_key, counter_price, current_offer, policy_version, metadata, created_at
		 FROM decisions WHERE decision_id = ?`, decisionID)

	rec, err := scanDecision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return rec, nil
}

// ListSessionDecisions returns the audit trail for a session, oldest first.
func (s *SQLiteStore) ListSessionDecisions(ctx context.Context, sessionID string, limit int) ([]domain.DecisionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT decision_id, session_id, action, response_key, counter_price, current_offer, policy_version, metadata, created_at
		 FROM decisions WHERE session_id = ? ORDER BY created_at ASC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	var recs []domain.DecisionRecord
	for rows.Next() {
		rec, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDecision(row rowScanner) (*domain.DecisionRecord, error) {
	var rec domain.DecisionRecord
	var action string
	var counterPrice sql.NullFloat64
	var metadata sql.NullString

	err := row.Scan(&rec.DecisionID, &rec.SessionID, &action, &rec.ResponseKey,
		&counterPrice, &rec.CurrentOffer, &rec.PolicyVersion, &metadata, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.Action = domain.Action(action)
	if counterPrice.Valid {
		rec.CounterPrice = &counterPrice.Float64
	}
	if metadata.Valid {
		rec.Metadata = []byte(metadata.String)
	}
	return &rec, nil
}
