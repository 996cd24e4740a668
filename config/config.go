package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"staticDir"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // tictactoe-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Game struct {
	ReconnectGrace   string `yaml:"reconnectGrace"`   // окно на переподключение перед удалением комнаты
	ChatHistoryLimit int    `yaml:"chatHistoryLimit"` // максимум сообщений в истории чата
}

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Logging Logging `yaml:"logging"`
	Game    Game    `yaml:"game"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if path == "" {
		path = "./config/config.yaml"
	}
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !explicit:
		// файла нет — работаем на дефолтах
	default:
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	// установка дефолтов, если значения не указаны
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.HTTP.StaticDir == "" {
		c.HTTP.StaticDir = "./web"
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "tictactoe-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Game.ChatHistoryLimit < 0 {
		return errors.New("game.chatHistoryLimit must be >= 0")
	}
	if c.Game.ChatHistoryLimit == 0 {
		c.Game.ChatHistoryLimit = 50
	}
	return nil
}

// ReconnectGrace возвращает распарсенное окно переподключения.
func (c *Config) ReconnectGrace() time.Duration {
	return parseDurationOr(5*time.Minute, c.Game.ReconnectGrace)
}

// helper для парсинга timeout-ов
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
