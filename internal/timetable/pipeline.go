package timetable

import (
	"context"

	"github.com/google/uuid"

	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/models"
	"github.com/univbot/schedule-system/internal/storage"
)

// Pipeline выполняет полный цикл обновления расписания: загрузка страницы,
// разбор сетки, разбиение по неделям, рендеринг и сохранение артефакта.
// Любая фатальная ошибка прерывает цикл до записи в хранилище.
type Pipeline struct {
	fetcher Fetcher
	store   storage.Storage
	log     logger.Logger
}

// NewPipeline создает конвейер обновления расписания
func NewPipeline(fetcher Fetcher, store storage.Storage, log logger.Logger) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		store:   store,
		log:     log,
	}
}

// Run выполняет один цикл обновления и возвращает построенный артефакт
func (p *Pipeline) Run(ctx context.Context) (*models.Artifact, error) {
	data, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	lessons, err := ParseLessons(data)
	if err != nil {
		return nil, err
	}
	p.log.Infof("Разобрано занятий: %d", len(lessons))

	weeks := SplitByWeek(lessons)
	artifact := Render(weeks)

	if err := p.store.SaveSchedule(artifact); err != nil {
		return nil, err
	}

	semester, group := p.fetcher.Target()
	run := &models.Run{
		Id:          uuid.New(),
		Time:        models.GetCurrentTime(),
		Semester:    semester,
		Group:       group,
		LessonCount: len(lessons),
	}
	if err := p.store.AddRun(run); err != nil {
		// Расписание уже сохранено, история обновлений вторична
		p.log.Errorf("Ошибка записи истории обновлений: %v", err)
	}

	p.log.Infof("Расписание обновлено, запуск %s", run.Id)

	return artifact, nil
}
