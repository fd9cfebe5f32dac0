package config

import (
	"time"
	_ "time/tzdata"

	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Address string `env:"RUN_ADDRESS"`

	DatabaseDNS string `env:"DATABASE_URI"`

	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	AMQPURL string `env:"AMQP_URL"`

	LogLevel string `env:"LOG_LEVEL"`

	// DispatchTimezone defines where "today" starts and ends for dispatch operations.
	DispatchTimezone string `env:"DISPATCH_TIMEZONE"`

	SuperAdminLogin    string `env:"SUPER_ADMIN_LOGIN"`
	SuperAdminPassword string `env:"SUPER_ADMIN_PASSWORD"`
}

func InitConfig() *Config {
	flags := Flags{}
	flags.Init()

	return newConfig(flags)
}

func newConfig(flags Flags) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug(".env file was not loaded", zap.Error(err))
	}

	cfg := Config{
		Address:          flags.address,
		DatabaseDNS:      flags.dbDNS,
		JWTSecret:        flags.jwtSecret,
		AccessTokenTTL:   defaultAccessTokenTTL,
		AMQPURL:          flags.amqpURL,
		LogLevel:         flags.logLevel,
		DispatchTimezone: flags.timezone,
	}
	cfg.parseEnv()

	return &cfg
}

func (cfg *Config) parseEnv() {
	err := env.Parse(cfg)
	if err != nil {
		logger.Log.Warn("Getting an error while parsing the configuration", zap.String("err", err.Error()))
	}
}

// Location resolves the dispatch timezone, falling back to UTC.
func (cfg *Config) Location() *time.Location {
	if cfg.DispatchTimezone == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(cfg.DispatchTimezone)
	if err != nil {
		logger.Log.Warn("unknown dispatch timezone, using UTC", zap.String("timezone", cfg.DispatchTimezone))
		return time.UTC
	}
	return location
}
