package tournament

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/vmihailenco/msgpack/v5"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a TournamentStore backed by db.
func New(db *sql.DB) TournamentStore {
	return &store{db: db}
}

func (s *store) Create(ctx context.Context, t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Version = 1
	data, err := msgpack.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, name, data, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		t.ID, t.Name, data, t.Version, t.CreatedAt.Unix(), t.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tournament %s: %w", t.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: tournament %s already exists", scoring.ErrConflict, t.ID)
	}
	log.Debug("Created tournament", "tournamentID", t.ID, "name", t.Name)
	return nil
}

func (s *store) Get(ctx context.Context, id string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := scanTournament(s.db.QueryRowContext(ctx, "SELECT data, version FROM tournaments WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tournament %s", scoring.ErrNotFound, id)
	}
	return t, err
}

func (s *store) Save(ctx context.Context, t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *t
	next.Version = t.Version + 1
	data, err := msgpack.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE tournaments SET name = ?, data = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		t.Name, data, next.Version, t.UpdatedAt.Unix(), t.ID, t.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", t.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var stored int64
		err := s.db.QueryRowContext(ctx, "SELECT version FROM tournaments WHERE id = ?", t.ID).Scan(&stored)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: tournament %s", scoring.ErrNotFound, t.ID)
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: tournament %s is at version %d, not %d", scoring.ErrConflict, t.ID, stored, t.Version)
	}
	t.Version = next.Version
	return nil
}

func (s *store) List(ctx context.Context) ([]*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT data, version FROM tournaments ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Tournament{}
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTournament(scanner interface{ Scan(...any) error }) (*Tournament, error) {
	var (
		data    []byte
		version int64
	)
	if err := scanner.Scan(&data, &version); err != nil {
		return nil, err
	}
	var t Tournament
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	t.Version = version
	return &t, nil
}
