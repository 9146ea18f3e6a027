package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPAddr  string    `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080"`
	Game      Game      `yaml:"game"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
	Auth      Auth      `yaml:"auth"`
}

type Game struct {
	OpponentDelay time.Duration `yaml:"opponent-delay" env:"OPPONENT_DELAY" env-default:"600ms"`
	// RandomSeed of 0 seeds each room from the clock.
	RandomSeed uint64 `yaml:"random-seed" env:"RANDOM_SEED" env-default:"0"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr    string `yaml:"addr" env:"REDIS_CONNSTRING" env-default:"localhost:6379"`
}

type Telemetry struct {
	Enabled           bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	CollectorEndpoint string `yaml:"collector-endpoint" env:"OTEL_COLLECTOR" env-default:"otel-collector:4317"`
	ServiceName       string `yaml:"service-name" env-default:"tic-tac-toe-minimax"`
	StdoutTraces      bool   `yaml:"stdout-traces" env-default:"false"`
}

type Auth struct {
	// An empty JWTSecret makes the server sign with a random per-process key.
	JWTSecret string        `yaml:"jwt-secret" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token-ttl" env:"TOKEN_TTL" env-default:"72h"`
}

// MustLoad reads the yml file at path, falling back to the environment alone
// when no file exists.
func MustLoad(path string) *Config {
	config := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, config); err != nil {
				panic(fmt.Errorf("unable to load config file: %w", err))
			}
			return config
		} else if !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Errorf("unable to stat config file: %w", err))
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to load config from environment: %w", err))
	}

	return config
}
