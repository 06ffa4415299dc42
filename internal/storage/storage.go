package storage

import (
	"errors"

	"github.com/google/uuid"

	"github.com/univbot/schedule-system/internal/models"
)

// Ошибки хранилища
var (
	ErrScheduleNotFound = errors.New("расписание ещё не сохранено")
	ErrRunNotFound      = errors.New("запуск не найден")
)

// Storage хранит последний артефакт расписания и историю обновлений.
// Артефакт всегда заменяется целиком: неудачный цикл обновления не должен
// оставить частично записанное расписание.
type Storage interface {
	// Методы для расписания
	SaveSchedule(artifact *models.Artifact) error
	GetSchedule() (*models.Artifact, error)

	// Методы для истории обновлений
	AddRun(run *models.Run) error
	GetRun(id uuid.UUID) (*models.Run, error)
	GetRuns() ([]*models.Run, error)
	GetLastRun() (*models.Run, error)
}
