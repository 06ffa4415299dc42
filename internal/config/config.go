package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	ErrorPath  string `yaml:"errorpath"`
	MaxSize    int    `yaml:"maxsize"`
	MaxBackups int    `yaml:"maxbackups"`
	MaxAge     int    `yaml:"maxage"`
	Compress   bool   `yaml:"compress"`
}

type ServerConfig struct {
	RunAddress string `yaml:"runaddress"`
}

type StorageConfig struct {
	Type             string `yaml:"type"`
	DataPath         string `yaml:"datapath"`
	DBPath           string `yaml:"dbpath"`
	ConnectionString string `yaml:"connectionstring"`
	MigrationsPath   string `yaml:"migrationspath"`
}

// TimetableConfig описывает источник расписания и расписание обновлений
type TimetableConfig struct {
	BaseURL     string   `yaml:"baseurl"`
	Group       string   `yaml:"group"`
	UpdateTimes []string `yaml:"updatetimes"`
}

// Config представляет структуру конфигурации
type Config struct {
	Server ServerConfig `yaml:"server"`

	Storage StorageConfig `yaml:"storage"`

	Timetable TimetableConfig `yaml:"timetable"`

	Bot struct {
		Token string `yaml:"token"`
	} `yaml:"bot"`

	API struct {
		Token string `yaml:"token"`
	} `yaml:"api"`

	Admin struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"admin"`

	Log LogConfig `yaml:"logger"`
}

// LoadConfig загружает конфигурацию из файла YAML
func LoadConfig(filepath string) (*Config, error) {
	if filepath == "" {
		flag.StringVar(&filepath, "c", "config.yaml", "config path")
		flag.Parse()
	}
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	if len(config.Timetable.UpdateTimes) == 0 {
		config.Timetable.UpdateTimes = []string{"10:00", "22:00"}
	}

	return config, nil
}
