package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/vmihailenco/msgpack/v5"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a MatchStore backed by db.
func New(db *sql.DB) MatchStore {
	return &store{db: db}
}

func (s *store) Create(ctx context.Context, m *scoring.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM matches WHERE id = ?", m.ID).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: match %s already exists", scoring.ErrConflict, m.ID)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	m.Version = 1
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode match %s: %w", m.ID, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, tournament_id, status, data, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, nullString(m.TournamentID), string(m.Status), data, m.Version, m.CreatedAt.Unix(), m.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Created match", "matchID", m.ID, "tournamentID", m.TournamentID)
	return nil
}

func (s *store) Get(ctx context.Context, id string) (*scoring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT data, version FROM matches WHERE id = ?", id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: match %s", scoring.ErrNotFound, id)
	}
	return m, err
}

func (s *store) Save(ctx context.Context, m *scoring.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *m
	next.Version = m.Version + 1
	data, err := msgpack.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode match %s: %w", m.ID, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE matches
		SET tournament_id = ?, status = ?, data = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		nullString(m.TournamentID), string(m.Status), data, next.Version, m.UpdatedAt.Unix(), m.ID, m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var stored int64
		err := s.db.QueryRowContext(ctx, "SELECT version FROM matches WHERE id = ?", m.ID).Scan(&stored)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: match %s", scoring.ErrNotFound, m.ID)
		}
		if err != nil {
			return err
		}
		log.Warn("Match version moved", "matchID", m.ID, "expected", m.Version, "stored", stored)
		return fmt.Errorf("%w: match %s is at version %d, not %d", scoring.ErrConflict, m.ID, stored, m.Version)
	}
	m.Version = next.Version
	return nil
}

func (s *store) List(ctx context.Context, filter ListFilter) ([]*scoring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if filter.TournamentID != "" {
		where = append(where, "tournament_id = ?")
		args = append(args, filter.TournamentID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	query := "SELECT data, version FROM matches"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*scoring.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*scoring.Match, error) {
	var (
		data    []byte
		version int64
	)
	if err := scanner.Scan(&data, &version); err != nil {
		return nil, err
	}
	var m scoring.Match
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode match: %w", err)
	}
	m.Version = version
	return &m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
