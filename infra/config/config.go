package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/drakos74/free-coin-cross/internal/account"
	"github.com/drakos74/free-coin-cross/internal/recommend"
	"github.com/drakos74/free-coin-cross/internal/volume"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the location of the default configuration file.
const DefaultPath = "infra/config/free-coin-cross.yaml"

const (
	GatewayRest  = "rest"
	GatewayLocal = "local"

	SourceBinance = "binance"
	SourceGateway = "gateway"
	SourceLocal   = "local"
)

// Config is the application configuration.
type Config struct {
	LogLevel  string           `yaml:"log_level"`
	AutoTrade bool             `yaml:"auto_trade"`
	Server    Server           `yaml:"server"`
	Gateway   Gateway          `yaml:"gateway"`
	Sources   []Source         `yaml:"sources" validate:"required,min=1,dive"`
	Signal    Signal           `yaml:"signal"`
	Volume    volume.Config    `yaml:"volume"`
	Recommend recommend.Config `yaml:"recommend"`
	Schedule  Schedule         `yaml:"schedule"`
	Telegram  Telegram         `yaml:"telegram"`
}

type Server struct {
	Port  int  `yaml:"port" validate:"gt=0,lt=65536"`
	Debug bool `yaml:"debug"`
}

// Gateway defines the exchange the orders are placed on.
type Gateway struct {
	Type       string          `yaml:"type" validate:"oneof=rest local"`
	URL        string          `yaml:"url" validate:"omitempty,url"`
	RecvWindow time.Duration   `yaml:"recv_window"`
	Timeout    time.Duration   `yaml:"timeout"`
	Account    account.Details `yaml:"account"`
}

// Source defines the symbols polled from a volume source.
type Source struct {
	Exchange string   `yaml:"exchange" validate:"oneof=binance gateway local"`
	Symbols  []string `yaml:"symbols" validate:"required,min=1"`
}

// Signal defines the moving average windows, in samples.
type Signal struct {
	Fast int `yaml:"fast" validate:"gt=0,ltfield=Slow"`
	Slow int `yaml:"slow" validate:"gt=0"`
}

type Schedule struct {
	Poll    time.Duration `yaml:"poll" validate:"gt=0"`
	Refresh time.Duration `yaml:"refresh" validate:"gt=0"`
}

type Telegram struct {
	Enabled bool         `yaml:"enabled"`
	Account account.Name `yaml:"account"`
}

// Default returns the configuration used when no file or environment overrides are given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: Server{
			Port: 8080,
		},
		Gateway: Gateway{
			Type:       GatewayLocal,
			RecvWindow: 5 * time.Second,
			Timeout:    10 * time.Second,
			Account: account.Details{
				Name:     "main",
				Exchange: "gateway",
			},
		},
		Sources: []Source{
			{
				Exchange: SourceBinance,
				Symbols:  []string{"BTC", "ETH", "SOL"},
			},
		},
		Signal: Signal{
			Fast: 7,
			Slow: 25,
		},
		Volume:    volume.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
		Schedule: Schedule{
			Poll:    5 * time.Minute,
			Refresh: time.Minute,
		},
		Telegram: Telegram{
			Account: "telegram",
		},
	}
}

// Load reads the configuration file on top of the defaults and applies the environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
		}
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Gateway.Type == GatewayRest && cfg.Gateway.URL == "" {
		return Config{}, fmt.Errorf("invalid config: missing url for %s gateway", cfg.Gateway.Type)
	}

	log.Info().
		Str("path", path).
		Str("gateway", cfg.Gateway.Type).
		Int("sources", len(cfg.Sources)).
		Bool("auto-trade", cfg.AutoTrade).
		Msg("loaded config")
	return cfg, nil
}

// MustLoad loads the config from the given path, and panics if it is not valid.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("could not load config: %s", err.Error()))
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("POSITION_SIZE_PERCENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("could not parse POSITION_SIZE_PERCENT: %w", err)
		}
		cfg.Recommend.PositionSizePercent = f
	}
	if v := os.Getenv("MIN_TRADE_BALANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("could not parse MIN_TRADE_BALANCE: %w", err)
		}
		cfg.Recommend.MinTradeBalance = f
	}
	if v := os.Getenv("AUTO_TRADE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("could not parse AUTO_TRADE_ENABLED: %w", err)
		}
		cfg.AutoTrade = b
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("could not parse SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GATEWAY_URL"); v != "" {
		cfg.Gateway.URL = v
	}
	return nil
}
