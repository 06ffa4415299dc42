package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/univbot/schedule-system/internal/admin"
	"github.com/univbot/schedule-system/internal/config"
)

func main() {
	// Парсим аргументы командной строки
	password := flag.String("password", "", "Новый пароль администратора (минимум 8 символов)")
	configPath := flag.String("c", "config.yaml", "config path")
	flag.Parse()

	if *password == "" {
		fmt.Println("Ошибка: пароль не указан")
		fmt.Println("Использование: setadminpassword -password=НОВЫЙ_ПАРОЛЬ")
		os.Exit(1)
	}

	conf, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Создаем менеджер паролей
	passwordMgr := admin.NewPasswordManager(conf.Storage.DataPath)

	// Устанавливаем пароль
	if err := passwordMgr.SetPassword(*password); err != nil {
		fmt.Printf("Ошибка установки пароля: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Пароль администратора успешно установлен")
}
