package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vahtras/matchstick/internal/riddle"
)

// SaveRun writes a run with all its riddles and solutions in one
// transaction. It reports false without error when a run with the same ID
// already exists; the stored rows are left untouched.
func (s *Store) SaveRun(ctx context.Context, run *riddle.Run) (inserted bool, err error) {
	if run == nil || run.Map == nil {
		return false, fmt.Errorf("save run: no riddle map")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, name, shape, arity, kind, digest, riddles)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Name,
		run.Params.Shape,
		run.Params.Arity,
		string(run.Params.Kind),
		run.Digest,
		run.Map.Len(),
	)
	if err != nil {
		return false, fmt.Errorf("save run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save run: rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	riddleStmt, err := tx.PrepareContext(ctx, `INSERT INTO riddles (run_id, riddle) VALUES (?, ?)`)
	if err != nil {
		return false, fmt.Errorf("save run: prepare riddles: %w", err)
	}
	defer riddleStmt.Close()

	solutionStmt, err := tx.PrepareContext(ctx, `INSERT INTO solutions (run_id, riddle, equation) VALUES (?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("save run: prepare solutions: %w", err)
	}
	defer solutionStmt.Close()

	links := 0
	for _, e := range run.Map.Entries() {
		if _, err := riddleStmt.ExecContext(ctx, run.ID, e.Riddle); err != nil {
			return false, fmt.Errorf("save run: riddle %q: %w", e.Riddle, err)
		}
		for _, eq := range e.Solutions {
			if _, err := solutionStmt.ExecContext(ctx, run.ID, e.Riddle, eq); err != nil {
				return false, fmt.Errorf("save run: solution %q of %q: %w", eq, e.Riddle, err)
			}
			links++
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("save run: commit: %w", err)
	}

	slog.Info("run saved",
		"run", run.ID,
		"params", run.Params.String(),
		"riddles", run.Map.Len(),
		"solutions", links,
	)
	return true, nil
}

// DeleteRun removes a run and everything recorded under it.
// Deleting an unknown run returns ErrRunNotFound.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrRunNotFound)
	}
	return nil
}
