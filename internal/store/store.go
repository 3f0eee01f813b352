// Package store persists BoardState checkpoints to Postgres, keyed by an
// opaque game identifier and phase sequence number, using the exact JSON
// schema the core package's MarshalJSON/UnmarshalJSON implement.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/freeeve/diplomacy-core/diplomacy"
)

// Store wraps a Postgres connection pool holding board-state checkpoints.
type Store struct {
	db *sql.DB
}

// Connect opens a connection pool to the checkpoint database.
func Connect(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCheckpoint stores the checkpoint for gameID under phaseSeq, replacing
// any checkpoint already stored under that number. LoadLatestCheckpoint
// treats the highest phaseSeq as the newest.
func (s *Store) SaveCheckpoint(ctx context.Context, gameID string, phaseSeq int, bs *diplomacy.BoardState) error {
	data, err := json.Marshal(bs)
	if err != nil {
		return fmt.Errorf("marshal board state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (game_id, phase_seq, board_state)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (game_id, phase_seq) DO UPDATE SET board_state = EXCLUDED.board_state`,
		gameID, phaseSeq, data,
	)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// LoadLatestCheckpoint returns the highest-numbered checkpoint for gameID,
// or nil if none exists.
func (s *Store) LoadLatestCheckpoint(ctx context.Context, gameID string) (*diplomacy.BoardState, int, error) {
	var data []byte
	var phaseSeq int
	err := s.db.QueryRowContext(ctx,
		`SELECT phase_seq, board_state FROM checkpoints
		 WHERE game_id = $1 ORDER BY phase_seq DESC LIMIT 1`, gameID,
	).Scan(&phaseSeq, &data)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load checkpoint: %w", err)
	}
	var bs diplomacy.BoardState
	if err := json.Unmarshal(data, &bs); err != nil {
		return nil, 0, fmt.Errorf("unmarshal board state: %w", err)
	}
	return &bs, phaseSeq, nil
}

// DeleteGame removes every checkpoint for gameID.
func (s *Store) DeleteGame(ctx context.Context, gameID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}
