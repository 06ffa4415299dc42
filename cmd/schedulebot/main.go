package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/univbot/schedule-system/internal/config"
	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/models"
	"github.com/univbot/schedule-system/internal/storage"
	"github.com/univbot/schedule-system/internal/telegrambot"
	"github.com/univbot/schedule-system/internal/timetable"
)

func main() {
	// Загружаем конфигурацию
	conf, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем логгер
	zapLogger, err := logger.NewZapLogger(conf)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	zapLogger.Info("Инициализирован логгер")

	// Инициализируем хранилище
	var store storage.Storage
	var storeErr error

	switch conf.Storage.Type {
	case "file":
		zapLogger.Info("Инициализация файлового хранилища")
		store, storeErr = storage.NewFilestorage(conf.Storage.DataPath)
	case "postgres":
		zapLogger.Info("Инициализация хранилища PostgreSQL")
		store, storeErr = storage.NewPgStorage(conf.Storage.ConnectionString, conf.Storage.MigrationsPath)
	case "sqlite":
		zapLogger.Info("Инициализация хранилища SQLite")
		store, storeErr = storage.NewSQLiteStorage(conf.Storage.DBPath, conf.Storage.MigrationsPath)
	default:
		zapLogger.Info("Инициализация хранилища в памяти")
		store = storage.NewMemstorage()
	}

	if storeErr != nil {
		zapLogger.Errorf("Ошибка инициализации хранилища: %v", storeErr)
		os.Exit(1)
	}

	zapLogger.Info("Хранилище инициализировано успешно")

	// Проверяем, указан ли токен
	if conf.Bot.Token == "" {
		zapLogger.Error("Не указан токен бота в конфигурации")
		os.Exit(1)
	}

	// Адрес страницы расписания для команды /source
	semester, group := timetable.SemesterAndGroup(models.GetCurrentTime(), conf.Timetable.Group)
	sourceURL := conf.Timetable.BaseURL + "/" + semester + "/" + group + ".htm"

	botConfig := telegrambot.Config{
		Token:     conf.Bot.Token,
		SourceURL: sourceURL,
	}

	// Создаем бота
	bot, err := telegrambot.NewUserBot(botConfig, store, zapLogger)
	if err != nil {
		zapLogger.Errorf("Ошибка создания бота: %v", err)
		os.Exit(1)
	}

	// Запускаем бота
	if err := bot.Start(); err != nil {
		zapLogger.Errorf("Ошибка запуска бота: %v", err)
		os.Exit(1)
	}

	zapLogger.Info("Бот запущен")

	// Ожидаем сигнала завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLogger.Info("Получен сигнал завершения")

	// Останавливаем бота
	if err := bot.Stop(); err != nil {
		zapLogger.Errorf("Ошибка остановки бота: %v", err)
	}

	zapLogger.Info("Бот остановлен")
}
