package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config describes all runtime settings for the server.
// Load once in main, validate, then pass down explicitly.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"dev"` // dev|stage|prod

	Log       LogConfig
	HTTP      HTTPConfig
	WS        WSConfig
	Broadcast BroadcastConfig
	Redis     RedisConfig
	Game      GameConfig
}

type LogConfig struct {
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text|json
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
}

type HTTPConfig struct {
	Port              string        `env:"PORT" envDefault:"3000"`
	Addr              string        `env:"HTTP_ADDR"` // overrides PORT when set
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type WSConfig struct {
	SendBuffer      int           `env:"WS_SEND_BUFFER" envDefault:"64"`
	PingInterval    time.Duration `env:"WS_PING_INTERVAL" envDefault:"25s"`
	WriteWait       time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	MaxMessageBytes int64         `env:"WS_MAX_MESSAGE_BYTES" envDefault:"4096"`
	RateLimit       float64       `env:"WS_RATE_LIMIT" envDefault:"10"`
	RateBurst       int           `env:"WS_RATE_BURST" envDefault:"20"`
}

type BroadcastConfig struct {
	Backend string `env:"BROADCAST_BACKEND" envDefault:"local"` // local|redis
}

type RedisConfig struct {
	Addr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB      int    `env:"REDIS_DB" envDefault:"0"`
	Channel string `env:"REDIS_CHANNEL" envDefault:"dice-duel:events"`
}

type GameConfig struct {
	DiceSeed int64 `env:"DICE_SEED"` // 0 => seeded from crypto/rand
}

func LoadFromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":" + c.HTTP.Port
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" || c.HTTP.Addr == ":" {
		return errors.New("HTTP addr is empty")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want text|json)", c.Log.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Broadcast.Backend {
	case "local":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is empty")
		}
		if c.Redis.Channel == "" {
			return errors.New("REDIS_CHANNEL is empty")
		}
	default:
		return fmt.Errorf("unsupported BROADCAST_BACKEND=%q (want local|redis)", c.Broadcast.Backend)
	}
	if c.WS.SendBuffer <= 0 {
		return errors.New("WS_SEND_BUFFER must be positive")
	}
	if c.WS.PingInterval <= 0 || c.WS.WriteWait <= 0 {
		return errors.New("WS_PING_INTERVAL and WS_WRITE_WAIT must be positive")
	}
	if c.WS.RateLimit <= 0 || c.WS.RateBurst <= 0 {
		return errors.New("WS_RATE_LIMIT and WS_RATE_BURST must be positive")
	}
	return nil
}

func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("unsupported LOG_LEVEL=%q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
