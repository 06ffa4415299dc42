package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/univbot/schedule-system/internal/models"
)

// SQLiteStorage реализует интерфейс Storage с хранением данных в SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage создает новое хранилище SQLite и применяет миграции
func NewSQLiteStorage(dbPath string, migrationsPath string) (*SQLiteStorage, error) {
	// Создаем директорию для базы данных, если она не существует
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}

	// Подключение к базе данных с улучшенными параметрами для конкурентного доступа
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	// Проверка соединения
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if migrationsPath != "" {
		m, err := migrate.New("file://"+migrationsPath, "sqlite3://"+dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to init migrations: %w", err)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return &SQLiteStorage{db: db}, nil
}

// Close закрывает соединение с базой данных
func (s *SQLiteStorage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *SQLiteStorage) SaveSchedule(artifact *models.Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	query := `
		INSERT INTO schedule (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, string(data), time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetSchedule() (*models.Artifact, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM schedule WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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

func (s *SQLiteStorage) AddRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, run_time, semester, group_code, lesson_count)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
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

func (s *SQLiteStorage) GetRun(id uuid.UUID) (*models.Run, error) {
	query := `
		SELECT id, run_time, semester, group_code, lesson_count
		FROM runs
		WHERE id = ?
	`
	run, err := scanRun(s.db.QueryRow(query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

func (s *SQLiteStorage) GetRuns() ([]*models.Run, error) {
	query := `
		SELECT id, run_time, semester, group_code, lesson_count
		FROM runs
		ORDER BY run_time
	`
	rows, err := s.db.Query(query)
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

func (s *SQLiteStorage) GetLastRun() (*models.Run, error) {
	query := `
		SELECT id, run_time, semester, group_code, lesson_count
		FROM runs
		ORDER BY run_time DESC
		LIMIT 1
	`
	run, err := scanRun(s.db.QueryRow(query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var (
		run     models.Run
		idStr   string
		timeStr string
	)
	if err := row.Scan(&idStr, &timeStr, &run.Semester, &run.Group, &run.LessonCount); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
	}
	run.Id = id

	runTime, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid run time %q: %w", timeStr, err)
	}
	run.Time = runTime

	return &run, nil
}
