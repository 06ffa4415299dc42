package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/univbot/schedule-system/internal/admin"
	"github.com/univbot/schedule-system/internal/config"
	"github.com/univbot/schedule-system/internal/handlers"
	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/middleware"
	"github.com/univbot/schedule-system/internal/scheduleserver"
	"github.com/univbot/schedule-system/internal/storage"
	"github.com/univbot/schedule-system/internal/timetable"
	"github.com/univbot/schedule-system/internal/trigger"
)

func main() {
	conf, err := config.LoadConfig("")
	if err != nil {
		panic(err)
	}
	log, err := logger.NewZapLogger(conf)
	if err != nil {
		panic(err)
	}
	log.Info("Initialized logger")

	// Инициализация хранилища
	var store storage.Storage
	var storeErr error

	switch conf.Storage.Type {
	case "file":
		log.Info("Initializing file storage")
		store, storeErr = storage.NewFilestorage(conf.Storage.DataPath)
	case "postgres":
		log.Info("Initializing PostgreSQL storage")
		store, storeErr = storage.NewPgStorage(conf.Storage.ConnectionString, conf.Storage.MigrationsPath)
	case "sqlite":
		log.Info("Initializing SQLite storage")
		store, storeErr = storage.NewSQLiteStorage(conf.Storage.DBPath, conf.Storage.MigrationsPath)
	default:
		log.Info("Initializing memory storage")
		store = storage.NewMemstorage()
	}

	if storeErr != nil {
		log.Errorf("Failed to initialize storage: %v", storeErr)
		panic(storeErr)
	}

	// Закрываем хранилище при завершении работы
	defer func() {
		switch s := store.(type) {
		case *storage.PgStorage:
			log.Info("Closing PostgreSQL connection")
			s.Close()
		case *storage.SQLiteStorage:
			log.Info("Closing SQLite connection")
			s.Close()
		}
	}()

	log.Info("Storage initialized successfully")

	// Конвейер обновления расписания
	fetcher := timetable.NewHTTPFetcher(conf.Timetable, log)
	pipeline := timetable.NewPipeline(fetcher, store, log)

	// Первое обновление при старте: при ошибке остаётся прежний артефакт
	startCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := pipeline.Run(startCtx); err != nil {
		log.Errorf("Стартовое обновление расписания не удалось: %v", err)
	}
	cancel()

	// Плановые обновления
	updateTrigger := trigger.NewDailyTrigger(conf.Timetable.UpdateTimes, pipeline, log)
	updateTrigger.Start()
	log.Infof("Scheduled updates at %v", conf.Timetable.UpdateTimes)

	// Инициализация обработчиков API
	router := handlers.NewRouter(log, store)

	// Инициализация обработчиков админки
	adminHandler := admin.NewAdminHandler(store, log, pipeline, conf.Storage.DataPath, conf.Admin.JWTSecret)
	adminHandler.RegisterRoutes(router)
	log.Info("Admin handlers initialized")

	// Инициализация сервера
	server := scheduleserver.NewScheduleServer(conf.Server.RunAddress, router, log)

	hLogger := middleware.NewHTTPLoger(log)
	compressor := middleware.NewGzipCompressor(log)
	tokenAuth := middleware.NewTokenAuth(middleware.TokenAuthConfig{
		APIToken: conf.API.Token,
		Logger:   log,
	})
	log.Info("Initialized middleware functions")

	server.AddMiddleware(hLogger.HTTPLogHandler, compressor.CompressHandler, tokenAuth.Middleware)

	go server.RunServer()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Initialized shutdown")
	updateTrigger.Stop()
	if err := server.Shutdown(context.Background()); err != nil {
		log.Errorf("Cann't stop server %s", err)
	}

	// Закрываем логгер перед завершением программы
	if err := log.Close(); err != nil {
		panic(err)
	}
}
