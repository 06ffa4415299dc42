package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/univbot/schedule-system/internal/models"
)

// PgStorage реализует интерфейс Storage с хранением данных в PostgreSQL
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage создает новое хранилище PostgreSQL и применяет миграции
func NewPgStorage(connString string, migrationsPath string) (*PgStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if migrationsPath != "" {
		m, err := migrate.New("file://"+migrationsPath, connString)
		if err != nil {
			return nil, fmt.Errorf("failed to init migrations: %w", err)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return &PgStorage{pool: pool}, nil
}

func (p *PgStorage) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PgStorage) SaveSchedule(artifact *models.Artifact) error {
	ctx := context.Background()

	data, err := json.MarshalIndent(artifact, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	query := `
		INSERT INTO schedule (id, data, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := p.pool.Exec(ctx, query, string(data), time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

func (p *PgStorage) GetSchedule() (*models.Artifact, error) {
	ctx := context.Background()

	var data string
	err := p.pool.QueryRow(ctx, `SELECT data FROM schedule WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	artifact := &models.Artifact{}
	if err := json.Unmarshal([]byte(data), artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}
	return artifact, nil
}

func (p *PgStorage) AddRun(run *models.Run) error {
	ctx := context.Background()
	query := `
		INSERT INTO runs (id, run_time, semester, group_code, lesson_count)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := p.pool.Exec(ctx, query,
		run.Id.String(),
		run.Time.Format(time.RFC3339),
		run.Semester,
		run.Group,
		run.LessonCount,
	)
	if err != nil {
		return fmt.Errorf("failed to add run: %w", err)
	}
	return nil
}

func (p *PgStorage) GetRun(id uuid.UUID) (*models.Run, error) {
	ctx := context.Background()
	query := `
		SELECT id, run_time, semester, group_code, lesson_count
		FROM runs
		WHERE id = $1
	`
	run, err := scanRun(p.pool.QueryRow(ctx, query, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

func (p *PgStorage) GetRuns() ([]*models.Run, error) {
	ctx := context.Background()
	query := `
		SELECT id, run_time, semester, group_code, lesson_count
		FROM runs
		ORDER BY run_time
	`
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

func (p *PgStorage) GetLastRun() (*models.Run, error) {
	ctx := context.Background()
	query := `
		SELECT id, run_time, semester, group_code, lesson_count
		FROM runs
		ORDER BY run_time DESC
		LIMIT 1
	`
	run, err := scanRun(p.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}
	return run, nil
}
