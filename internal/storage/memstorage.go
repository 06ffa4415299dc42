package storage

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/univbot/schedule-system/internal/models"
)

// Memstorage хранит расписание и историю обновлений в памяти
type Memstorage struct {
	mu       sync.RWMutex
	artifact *models.Artifact
	runs     map[uuid.UUID]*models.Run
}

func NewMemstorage() *Memstorage {
	return &Memstorage{
		runs: make(map[uuid.UUID]*models.Run),
	}
}

func (m *Memstorage) SaveSchedule(artifact *models.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifact = artifact
	return nil
}

func (m *Memstorage) GetSchedule() (*models.Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.artifact == nil {
		return nil, ErrScheduleNotFound
	}
	return m.artifact, nil
}

func (m *Memstorage) AddRun(run *models.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.Id] = run
	return nil
}

func (m *Memstorage) GetRun(id uuid.UUID) (*models.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (m *Memstorage) GetRuns() ([]*models.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*models.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Time.Before(runs[j].Time)
	})
	return runs, nil
}

func (m *Memstorage) GetLastRun() (*models.Run, error) {
	runs, err := m.GetRuns()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return runs[len(runs)-1], nil
}
