package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/dining-sim/internal/model"
)

// schema is applied by EnsureSchema. The timeline is not persisted; it can
// be regenerated from the stored config.
const schema = `CREATE TABLE IF NOT EXISTS simulation_runs (
	id              CHAR(36)        NOT NULL PRIMARY KEY,
	fingerprint     CHAR(16)        NOT NULL,
	seed            BIGINT UNSIGNED NOT NULL,
	duration        DOUBLE          NOT NULL,
	time_step       DOUBLE          NOT NULL,
	end_time        DOUBLE          NOT NULL,
	ticks           INT             NOT NULL,
	table_count     INT             NOT NULL,
	seat_count      INT             NOT NULL,
	arrived_parties INT             NOT NULL,
	arrived_patrons INT             NOT NULL,
	seated_parties  INT             NOT NULL,
	seated_patrons  INT             NOT NULL,
	served_patrons  INT             NOT NULL,
	waiting_parties INT             NOT NULL,
	waiting_patrons INT             NOT NULL,
	mean_wait       DOUBLE          NOT NULL,
	max_wait        DOUBLE          NOT NULL,
	config          JSON            NOT NULL,
	created_at      DATETIME(3)     NOT NULL,
	KEY idx_simulation_runs_fingerprint (fingerprint),
	KEY idx_simulation_runs_created_at (created_at)
)`

const runColumns = `id, fingerprint, seed, duration, time_step, end_time, ticks, table_count, seat_count,
	arrived_parties, arrived_patrons, seated_parties, seated_patrons, served_patrons,
	waiting_parties, waiting_patrons, mean_wait, max_wait, config, created_at`

// RunRepo stores simulation runs in MySQL.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo returns a RunRepo bound to the provided database.
func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{db: db} }

// EnsureSchema creates the simulation_runs table when it does not exist.
func (r *RunRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create simulation_runs")
}

// Create inserts run. A duplicate id yields ErrConflict.
func (r *RunRepo) Create(ctx context.Context, run *model.SimulationRun) error {
	cfg := []byte(run.Config)
	if len(cfg) == 0 {
		cfg = []byte("{}")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO simulation_runs (`+runColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Fingerprint, run.Seed, run.Duration, run.TimeStep, run.EndTime, run.Ticks,
		run.TableCount, run.SeatCount, run.ArrivedParties, run.ArrivedPatrons,
		run.SeatedParties, run.SeatedPatrons, run.ServedPatrons,
		run.WaitingParties, run.WaitingPatrons, run.MeanWait, run.MaxWait,
		cfg, run.CreatedAt.UTC(),
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return errors.Wrapf(ErrConflict, "run %s", run.ID)
	}
	return err
}

// GetByID returns the run with the given id or ErrRunNotFound.
func (r *RunRepo) GetByID(ctx context.Context, id string) (*model.SimulationRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM simulation_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns up to limit runs, newest first.
func (r *RunRepo) List(ctx context.Context, limit int) ([]model.SimulationRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM simulation_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	runs := []model.SimulationRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*model.SimulationRun, error) {
	var (
		run model.SimulationRun
		cfg []byte
	)
	err := s.Scan(&run.ID, &run.Fingerprint, &run.Seed, &run.Duration, &run.TimeStep, &run.EndTime,
		&run.Ticks, &run.TableCount, &run.SeatCount, &run.ArrivedParties, &run.ArrivedPatrons,
		&run.SeatedParties, &run.SeatedPatrons, &run.ServedPatrons,
		&run.WaitingParties, &run.WaitingPatrons, &run.MeanWait, &run.MaxWait,
		&cfg, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.Config = json.RawMessage(cfg)
	return &run, nil
}
