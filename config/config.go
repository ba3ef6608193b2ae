package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	BaseConfig
	ClickHouse ClickHouse
}

type BaseConfig struct {
	IsProduction bool           `env:"PRODUCTION"`
	DatasetPath  string         `env:"DATASET_PATH"`
	Store        SupportedStore `env:"STORE" envDefault:"memory"`
	API          API
}

type API struct {
	Port string `env:"API_PORT"`
}

// ClickHouse configures the optional analytical mirror. Only parsed when
// STORE is set to 'clickhouse'.
type ClickHouse struct {
	Address            string `env:"CLICKHOUSE_ADDRESS"`
	DatabaseName       string `env:"CLICKHOUSE_DB_NAME"`
	Username           string `env:"CLICKHOUSE_USERNAME"`
	Password           string `env:"CLICKHOUSE_PASSWORD"`
	Debug              bool   `env:"CLICKHOUSE_DEBUG_ENABLED" envDefault:"false"`
	DropTableOnStartup bool   `env:"DEBUG_DROP_TABLE_ON_STARTUP" envDefault:"false"`
}

type SupportedStore string

const (
	// Dataset held in memory only (the default).
	StoreMemory SupportedStore = "memory"
	// Dataset additionally mirrored into ClickHouse for push-down aggregation.
	StoreClickHouse SupportedStore = "clickhouse"
)

func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config

	if err := env.ParseWithOptions(&config.BaseConfig, parseOptions); err != nil {
		return Config{}, err
	}

	switch config.Store {
	case StoreMemory:
	case StoreClickHouse:
		if err := env.ParseWithOptions(&config.ClickHouse, parseOptions); err != nil {
			return Config{}, err
		}
	default:
		err := fmt.Errorf("must be one of: '%s', '%s'", StoreMemory, StoreClickHouse)
		return Config{}, wrap.Errorf(err, "unsupported value '%s' for STORE in env", config.Store)
	}

	return config, nil
}
