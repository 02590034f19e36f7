package config

import "errors"

var (
	ErrReadingConfigFile   = errors.New("failed to read config file")
	ErrUnmarshallingConfig = errors.New("failed to unmarshal config")
	ErrEmptyJWTSecret      = errors.New("auth jwtSecret cannot be empty")
	ErrInvalidQueryTimeout = errors.New("server queryTimeout must be positive")
	ErrEmptyIngestBrokers  = errors.New("ingest brokers list cannot be empty when ingest is enabled")
	ErrInvalidReportPolicy = errors.New("invalid report policy")
)
