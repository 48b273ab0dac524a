package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/config"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

// LedgerAdapter implements BuildLedger on SQLite. The database is opened on
// first use, so commands that never touch the ledger never create it.
type LedgerAdapter struct {
	cfg *Config

	mu sync.Mutex
	db *DB
}

// NewLedgerAdapter creates a ledger stored in the runtime data directory
func NewLedgerAdapter(cfg *config.RuntimeConfig) *LedgerAdapter {
	return &LedgerAdapter{cfg: DefaultConfig(cfg.DataDir)}
}

func (l *LedgerAdapter) open(ctx context.Context) (*DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}
	db, err := Open(ctx, l.cfg)
	if err != nil {
		return nil, err
	}
	l.db = db
	return db, nil
}

// Path returns the database file
func (l *LedgerAdapter) Path() string {
	return l.cfg.DSN
}

// Close closes the database if it was opened
func (l *LedgerAdapter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Record stores a build and its sources
func (l *LedgerAdapter) Record(ctx context.Context, build *models.Build) error {
	db, err := l.open(ctx)
	if err != nil {
		return err
	}

	row := *build
	row.StartedAt = build.StartedAt.UTC()
	row.FinishedAt = build.FinishedAt.UTC()

	return db.Transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO builds (
				id, network, network_id, compiler_version, optimizer_enabled, optimizer_runs,
				contracts_dir, output_dir, sources_hash, status, error, started_at, finished_at
			) VALUES (
				:id, :network, :network_id, :compiler_version, :optimizer_enabled, :optimizer_runs,
				:contracts_dir, :output_dir, :sources_hash, :status, :error, :started_at, :finished_at
			)`, &row)
		if err != nil {
			return fmt.Errorf("failed to insert build: %w", err)
		}

		for _, src := range build.Sources {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO build_sources (build_id, path, hash, size) VALUES (?, ?, ?, ?)`,
				build.ID, src.Path, src.Hash, src.Size)
			if err != nil {
				return fmt.Errorf("failed to insert source %s: %w", src.Path, err)
			}
		}
		return nil
	})
}

// List returns builds newest first
func (l *LedgerAdapter) List(ctx context.Context, filter usecase.BuildFilter) ([]*models.Build, error) {
	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, network, network_id, compiler_version, optimizer_enabled, optimizer_runs,
			contracts_dir, output_dir, sources_hash, status, error, started_at, finished_at
		FROM builds
		WHERE 1=1`
	args := []any{}

	if filter.Network != "" {
		query += " AND network = ?"
		args = append(args, filter.Network)
	}

	query += " ORDER BY started_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var builds []*models.Build
	if err := db.SelectContext(ctx, &builds, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	return builds, nil
}

// Get returns one build with its sources
func (l *LedgerAdapter) Get(ctx context.Context, id string) (*models.Build, error) {
	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}

	var build models.Build
	err = db.GetContext(ctx, &build, `
		SELECT id, network, network_id, compiler_version, optimizer_enabled, optimizer_runs,
			contracts_dir, output_dir, sources_hash, status, error, started_at, finished_at
		FROM builds
		WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("build %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get build: %w", err)
	}

	if err := db.SelectContext(ctx, &build.Sources,
		`SELECT path, hash, size FROM build_sources WHERE build_id = ? ORDER BY path`, id); err != nil {
		return nil, fmt.Errorf("failed to get build sources: %w", err)
	}

	return &build, nil
}

// Ensure the adapter implements the interface
var _ usecase.BuildLedger = (*LedgerAdapter)(nil)
