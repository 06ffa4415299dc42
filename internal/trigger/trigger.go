package trigger

import (
	"context"
	"time"

	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/models"
)

// Время, отводимое на одно обновление расписания
const runTimeout = 2 * time.Minute

// Runner запускает одно обновление расписания
type Runner interface {
	Run(ctx context.Context) (*models.Artifact, error)
}

// DailyTrigger вызывает Runner в заданные моменты времени (ЧЧ:ММ).
// Таймер принадлежит процессу-хозяину и ничего не знает о внутренностях
// конвейера: неудачное обновление просто логируется, старое расписание
// остаётся в силе до следующего запуска.
type DailyTrigger struct {
	times  map[string]struct{}
	runner Runner
	log    logger.Logger
	stop   chan struct{}
	done   chan struct{}

	// Метка "дата + минута" последнего срабатывания, защита от повторного
	// запуска в пределах одной минуты. Дата в метке обязательна: одна и та
	// же минута наступает каждый день.
	lastFired string
}

// NewDailyTrigger создает триггер, срабатывающий в перечисленные времена
func NewDailyTrigger(times []string, runner Runner, log logger.Logger) *DailyTrigger {
	set := make(map[string]struct{}, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}

	return &DailyTrigger{
		times:  set,
		runner: runner,
		log:    log,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start запускает цикл триггера в отдельной горутине
func (t *DailyTrigger) Start() {
	go t.loop()
}

// Stop останавливает триггер и дожидается завершения цикла
func (t *DailyTrigger) Stop() {
	close(t.stop)
	<-t.done
}

func (t *DailyTrigger) loop() {
	defer close(t.done)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case now := <-ticker.C:
			if !t.shouldFire(now) {
				continue
			}

			t.log.Infof("Плановое обновление расписания (%s)", now.Format("15:04"))
			ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
			if _, err := t.runner.Run(ctx); err != nil {
				t.log.Errorf("Ошибка планового обновления: %v", err)
			}
			cancel()
		}
	}
}

// shouldFire решает, нужно ли запускать обновление в этот момент,
// и помечает минуту сработавшей
func (t *DailyTrigger) shouldFire(now time.Time) bool {
	if _, ok := t.times[now.Format("15:04")]; !ok {
		return false
	}

	stamp := now.Format("2006-01-02 15:04")
	if stamp == t.lastFired {
		return false
	}
	t.lastFired = stamp

	return true
}
