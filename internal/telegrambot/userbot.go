package telegrambot

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/models"
	"github.com/univbot/schedule-system/internal/storage"
)

const commandsMessage = `Доступные команды:
1. "Бот расписание сегодня/брс" - расписание на сегодня.
2. "Бот расписание завтра/брз" - расписание на завтра.
3. "Бот расписание 1 неделя/бр1" - расписание на первую неделю.
4. "Бот расписание 2 неделя/бр2" - расписание на вторую неделю.
5. "Бот пара сейчас/бпс" - текущая пара.
6. "Бот команды/бк" - меню.
7. /source - QR-код страницы расписания.`

// UserBot показывает сохранённое расписание в Telegram
type UserBot struct {
	bot     *tele.Bot
	storage storage.Storage
	logger  logger.Logger
	config  Config
}

// NewUserBot создает нового бота для пользователей
func NewUserBot(config Config, storage storage.Storage, logger logger.Logger) (*UserBot, error) {
	pref := tele.Settings{
		Token:  config.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	return &UserBot{
		bot:     bot,
		storage: storage,
		logger:  logger,
		config:  config,
	}, nil
}

// Start запускает бота
func (ub *UserBot) Start() error {
	ub.logger.Info("Запуск бота расписания")

	ub.bot.Handle("/start", ub.handleStart)
	ub.bot.Handle("/source", ub.handleSource)
	ub.bot.Handle(tele.OnText, ub.handleText)

	go ub.bot.Start()

	return nil
}

// Stop останавливает бота
func (ub *UserBot) Stop() error {
	ub.logger.Info("Остановка бота расписания")
	ub.bot.Stop()
	return nil
}

// handleStart обрабатывает команду /start
func (ub *UserBot) handleStart(c tele.Context) error {
	ub.logger.Infof("Пользователь %d запустил бота", c.Sender().ID)
	return c.Send("Привет! Я бот расписания. Напиши \"бк\", чтобы увидеть список команд.")
}

// handleSource отправляет QR-код со ссылкой на страницу расписания
func (ub *UserBot) handleSource(c tele.Context) error {
	ub.logger.Infof("Пользователь %d запросил страницу расписания", c.Sender().ID)

	qrCode, err := GenerateQRCode(ub.config.SourceURL, qrCodeSize)
	if err != nil {
		ub.logger.Errorf("Ошибка генерации QR-кода: %v", err)
		return c.Send(ub.config.SourceURL)
	}

	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(qrCode)),
		Caption: ub.config.SourceURL,
	}
	return c.Send(photo)
}

// handleText обрабатывает текстовые команды расписания
func (ub *UserBot) handleText(c tele.Context) error {
	command := strings.ToLower(strings.TrimSpace(c.Text()))

	switch command {
	case "бот расписание сегодня", "брс":
		return ub.sendDaySchedule(c, time.Now(), "Расписание на сегодня")
	case "бот расписание завтра", "брз":
		return ub.sendDaySchedule(c, time.Now().AddDate(0, 0, 1), "Расписание на завтра")
	case "бот расписание 1 неделя", "бр1":
		return ub.sendWeekSchedule(c, firstWeek)
	case "бот расписание 2 неделя", "бр2":
		return ub.sendWeekSchedule(c, secondWeek)
	case "бот пара сейчас", "бпс":
		return ub.sendCurrentClass(c)
	case "бот команды", "бк":
		return c.Send(commandsMessage)
	}

	return nil
}

type weekKind int

const (
	firstWeek weekKind = iota
	secondWeek
)

// loadWeeks читает последнее сохранённое расписание
func (ub *UserBot) loadWeeks() (*models.ArtifactLessons, error) {
	artifact, err := ub.storage.GetSchedule()
	if err != nil {
		return nil, err
	}
	return &artifact.Lessons, nil
}

func (ub *UserBot) sendDaySchedule(c tele.Context, date time.Time, title string) error {
	ub.logger.Infof("Пользователь %d запросил расписание на %s", c.Sender().ID, date.Format(scheduleDateLayout))

	weeks, err := ub.loadWeeks()
	if err != nil {
		return ub.sendScheduleError(c, err)
	}

	blocks := scheduleByDate(weeks.FirstWeek, date)
	if len(blocks) == 0 {
		blocks = scheduleByDate(weeks.SecondWeek, date)
	}
	if len(blocks) == 0 {
		return c.Send(title + " недоступно.")
	}

	return c.Send(title + ":\n\n" + strings.Join(blocks, "\n"))
}

func (ub *UserBot) sendWeekSchedule(c tele.Context, week weekKind) error {
	ub.logger.Infof("Пользователь %d запросил расписание недели", c.Sender().ID)

	weeks, err := ub.loadWeeks()
	if err != nil {
		return ub.sendScheduleError(c, err)
	}

	blocks := weeks.FirstWeek
	if week == secondWeek {
		blocks = weeks.SecondWeek
	}
	if len(blocks) == 0 {
		return c.Send("Расписание недели недоступно.")
	}

	return c.Send(strings.Join(blocks, "\n"))
}

func (ub *UserBot) sendCurrentClass(c tele.Context) error {
	ub.logger.Infof("Пользователь %d запросил текущую пару", c.Sender().ID)

	weeks, err := ub.loadWeeks()
	if err != nil {
		return ub.sendScheduleError(c, err)
	}

	now := time.Now()
	blocks := scheduleByDate(weeks.FirstWeek, now)
	blocks = append(blocks, scheduleByDate(weeks.SecondWeek, now)...)

	lesson, ok := currentClass(blocks, now)
	if !ok {
		return c.Send("Сейчас нет активных пар.")
	}

	return c.Send("Сейчас пара:\n\n" + lesson)
}

func (ub *UserBot) sendScheduleError(c tele.Context, err error) error {
	if errors.Is(err, storage.ErrScheduleNotFound) {
		return c.Send("Расписание ещё не загружено. Попробуйте позже.")
	}
	ub.logger.Errorf("Ошибка чтения расписания: %v", err)
	return c.Send("Произошла ошибка при получении расписания. Пожалуйста, попробуйте позже.")
}
