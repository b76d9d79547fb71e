package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envFile is read before the environment when present. Variables already
// set in the process environment take precedence over it.
var envFile = ".env"

// envConfig mirrors Config for USERKEEPER_* variables. Unset variables keep
// the value copied in from Config.
type envConfig struct {
	EndpointAddrGRPC     string `env:"USERKEEPER_GRPC_ADDRESS"`
	DatabaseDSN          string `env:"USERKEEPER_DATABASE_DSN"`
	SecretKey            string `env:"USERKEEPER_SECRET_KEY"`
	TokenValiditySeconds int    `env:"USERKEEPER_TOKEN_VALIDITY_SECONDS"`
	BcryptCost           int    `env:"USERKEEPER_BCRYPT_COST"`
	AdminLogin           string `env:"USERKEEPER_ADMIN_LOGIN"`
	AdminPassword        string `env:"USERKEEPER_ADMIN_PASSWORD"`
	LogLevel             string `env:"USERKEEPER_LOG_LEVEL"`
	LogFormat            string `env:"USERKEEPER_LOG_FORMAT"`
}

func parseEnv(config *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	c := envConfig{
		EndpointAddrGRPC:     config.EndpointAddrGRPC,
		DatabaseDSN:          config.DatabaseDSN,
		SecretKey:            config.SecretKey,
		TokenValiditySeconds: int(config.TokenValidityDuration / time.Second),
		BcryptCost:           config.BcryptCost,
		AdminLogin:           config.AdminLogin,
		AdminPassword:        config.AdminPassword,
		LogLevel:             config.LogLevel,
		LogFormat:            config.LogFormat,
	}
	if err := env.Parse(&c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValiditySeconds) * time.Second
	config.BcryptCost = c.BcryptCost
	config.AdminLogin = c.AdminLogin
	config.AdminPassword = c.AdminPassword
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	return nil
}
