package telegrambot

// Config представляет конфигурацию Telegram-бота
type Config struct {
	Token     string // Токен бота
	SourceURL string // Адрес страницы расписания на сайте университета
}

// Bot представляет интерфейс для Telegram-бота
type Bot interface {
	Start() error
	Stop() error
}
