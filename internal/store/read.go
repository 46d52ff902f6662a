package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/riddle"
)

var (
	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrDigestMismatch is returned when stored riddles no longer hash to
	// the digest recorded with their run.
	ErrDigestMismatch = errors.New("run digest mismatch")
)

// RunInfo is a stored run without its riddles.
type RunInfo struct {
	ID      string        `json:"id"`
	Seq     int64         `json:"seq"`
	Name    string        `json:"name,omitempty"`
	Params  riddle.Params `json:"params"`
	Digest  string        `json:"digest"`
	Riddles int           `json:"riddles"`
}

// Hit is one riddle an equation solves.
type Hit struct {
	RunID  string `json:"run_id"`
	Riddle string `json:"riddle"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunInfo(row rowScanner) (RunInfo, error) {
	var info RunInfo
	var kind string
	if err := row.Scan(
		&info.ID,
		&info.Seq,
		&info.Name,
		&info.Params.Shape,
		&info.Params.Arity,
		&kind,
		&info.Digest,
		&info.Riddles,
	); err != nil {
		return RunInfo{}, err
	}
	info.Params.Kind = engine.Kind(kind)
	return info, nil
}

// Runs lists every stored run in insertion order.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, name, shape, arity, kind, digest, riddles
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		info, err := scanRunInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Run returns the stored metadata of one run.
func (s *Store) Run(ctx context.Context, id string) (RunInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, name, shape, arity, kind, digest, riddles
		FROM runs
		WHERE id = ?
	`, id)
	info, err := scanRunInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunInfo{}, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return RunInfo{}, fmt.Errorf("query run %s: %w", id, err)
	}
	return info, nil
}

// LoadRun reads a run with its full riddle map and checks its digest.
func (s *Store) LoadRun(ctx context.Context, id string) (*riddle.Run, error) {
	info, err := s.Run(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT riddle, equation
		FROM solutions
		WHERE run_id = ?
		ORDER BY riddle COLLATE BINARY ASC, equation COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query solutions: %w", err)
	}
	defer rows.Close()

	m := riddle.NewMap()
	for rows.Next() {
		var r, eq string
		if err := rows.Scan(&r, &eq); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		m.Add(r, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}

	digest, err := riddle.Digest(info.Params, m)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	if digest != info.Digest {
		return nil, fmt.Errorf("load run %s: %w", id, ErrDigestMismatch)
	}

	return &riddle.Run{
		ID:     info.ID,
		Name:   info.Name,
		Params: info.Params,
		Digest: info.Digest,
		Map:    m,
	}, nil
}

// Solutions returns the equations that solve riddle r in run runID, sorted.
// An unknown riddle yields an empty slice; an unknown run ErrRunNotFound.
func (s *Store) Solutions(ctx context.Context, runID, r string) ([]string, error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT equation
		FROM solutions
		WHERE run_id = ? AND riddle = ?
		ORDER BY equation COLLATE BINARY ASC
	`, runID, r)
	if err != nil {
		return nil, fmt.Errorf("query solutions: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var eq string
		if err := rows.Scan(&eq); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		out = append(out, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}
	return out, nil
}

// FindRiddles returns every stored riddle that equation solves, across all
// runs, ordered by run then riddle.
func (s *Store) FindRiddles(ctx context.Context, equation string) ([]Hit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.run_id, s.riddle
		FROM solutions s
		JOIN runs r ON r.id = s.run_id
		WHERE s.equation = ?
		ORDER BY r.seq ASC, s.riddle COLLATE BINARY ASC
	`, equation)
	if err != nil {
		return nil, fmt.Errorf("query riddles: %w", err)
	}
	defer rows.Close()

	hits := []Hit{}
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.RunID, &h.Riddle); err != nil {
			return nil, fmt.Errorf("scan riddle: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate riddles: %w", err)
	}
	return hits, nil
}
