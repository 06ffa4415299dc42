package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/univbot/schedule-system/internal/models"
)

// Константы для имен файлов
const (
	ScheduleFileName = "univBase.json"
	RunsFileName     = "runs.json"
)

// Filestorage реализует интерфейс Storage с хранением данных в файлах.
// Файл расписания перезаписывается целиком при каждом сохранении.
type Filestorage struct {
	mu       sync.RWMutex
	artifact *models.Artifact
	runs     map[uuid.UUID]*models.Run
	dataDir  string
}

// NewFilestorage создает новое файловое хранилище
func NewFilestorage(dataDir string) (*Filestorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	fs := &Filestorage{
		runs:    make(map[uuid.UUID]*models.Run),
		dataDir: dataDir,
	}

	if err := fs.loadSchedule(); err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if err := fs.loadRuns(); err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	return fs, nil
}

// SchedulePath возвращает путь к файлу расписания
func (fs *Filestorage) SchedulePath() string {
	return filepath.Join(fs.dataDir, ScheduleFileName)
}

// loadSchedule загружает расписание из файла, если оно уже было сохранено
func (fs *Filestorage) loadSchedule() error {
	data, err := os.ReadFile(fs.SchedulePath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schedule file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	artifact := &models.Artifact{}
	if err := json.Unmarshal(data, artifact); err != nil {
		return fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	fs.artifact = artifact
	return nil
}

// loadRuns загружает историю обновлений из файла
func (fs *Filestorage) loadRuns() error {
	data, err := os.ReadFile(filepath.Join(fs.dataDir, RunsFileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read runs file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var runs []*models.Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return fmt.Errorf("failed to unmarshal runs: %w", err)
	}

	for _, run := range runs {
		fs.runs[run.Id] = run
	}
	return nil
}

// saveRuns сохраняет историю обновлений в файл
func (fs *Filestorage) saveRuns() error {
	runs := make([]*models.Run, 0, len(fs.runs))
	for _, run := range fs.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Time.Before(runs[j].Time)
	})

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	if err := os.WriteFile(filepath.Join(fs.dataDir, RunsFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write runs file: %w", err)
	}
	return nil
}

func (fs *Filestorage) SaveSchedule(artifact *models.Artifact) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(artifact, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	if err := os.WriteFile(fs.SchedulePath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write schedule file: %w", err)
	}

	fs.artifact = artifact
	return nil
}

func (fs *Filestorage) GetSchedule() (*models.Artifact, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if fs.artifact == nil {
		return nil, ErrScheduleNotFound
	}
	return fs.artifact, nil
}

func (fs *Filestorage) AddRun(run *models.Run) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.runs[run.Id] = run
	return fs.saveRuns()
}

func (fs *Filestorage) GetRun(id uuid.UUID) (*models.Run, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	run, ok := fs.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (fs *Filestorage) GetRuns() ([]*models.Run, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	runs := make([]*models.Run, 0, len(fs.runs))
	for _, run := range fs.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Time.Before(runs[j].Time)
	})
	return runs, nil
}

func (fs *Filestorage) GetLastRun() (*models.Run, error) {
	runs, err := fs.GetRuns()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return runs[len(runs)-1], nil
}
