package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvPort            = "PORT"
	EnvDBDSN           = "DB_DSN"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvAppName         = "APP_NAME"
	EnvDevAuth         = "DEV_AUTH"
	EnvJWTSecret       = "JWT_SECRET"
	EnvJWTTTL          = "JWT_TTL"
	EnvJWKSURL         = "AUTH_JWKS_URL"
	EnvKafkaBrokers    = "KAFKA_BROKERS"
	EnvKafkaNotifTopic = "KAFKA_NOTIFICATIONS_TOPIC"
	EnvAccountingURL   = "ACCOUNTING_BASE_URL"
	EnvAccountingToken = "ACCOUNTING_TOKEN"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
	EnvBootstrapEmail  = "BOOTSTRAP_MANAGER_EMAIL"
	EnvBootstrapPass   = "BOOTSTRAP_MANAGER_PASSWORD"
)

const (
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultAppName         = "doggy-daycare"
	DefaultJWTTTL          = 12 * time.Hour
	DefaultKafkaNotifTopic = "daycare.notifications"
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)

type Config struct {
	Port string

	// DBDSN vacío => storage in-memory (modo dev).
	DBDSN string

	LogLevel  string
	LogFormat string
	AppName   string

	// DevAuth habilita X-Debug-User-ID / X-Debug-Role.
	DevAuth bool

	JWTSecret string
	JWTTTL    time.Duration
	JWKSURL   string

	KafkaBrokers            []string
	KafkaNotificationsTopic string

	AccountingBaseURL string
	AccountingToken   string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// BootstrapEmail crea un manager al arrancar si todavía no existe.
	BootstrapEmail    string
	BootstrapPassword string
}

// Load lee la configuración del entorno y la valida.
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnvStr(EnvPort, DefaultPort),
		DBDSN: getEnvStr(EnvDBDSN, ""),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),
		AppName:   getEnvStr(EnvAppName, DefaultAppName),

		DevAuth: getEnvBool(EnvDevAuth, false),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTTTL:    getEnvDuration(EnvJWTTTL, DefaultJWTTTL),
		JWKSURL:   getEnvStr(EnvJWKSURL, ""),

		KafkaBrokers:            getEnvList(EnvKafkaBrokers),
		KafkaNotificationsTopic: getEnvStr(EnvKafkaNotifTopic, DefaultKafkaNotifTopic),

		AccountingBaseURL: getEnvStr(EnvAccountingURL, ""),
		AccountingToken:   getEnvStr(EnvAccountingToken, ""),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		BootstrapEmail:    getEnvStr(EnvBootstrapEmail, ""),
		BootstrapPassword: os.Getenv(EnvBootstrapPass),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got: %s", cfg.Port))
	}
	if cfg.JWTTTL <= 0 {
		problems = append(problems, fmt.Sprintf("JWT_TTL must be positive, got: %s", cfg.JWTTTL))
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		problems = append(problems, "READ_TIMEOUT, WRITE_TIMEOUT and SHUTDOWN_TIMEOUT must be positive")
	}
	// sin DevAuth necesitamos alguna forma real de verificar tokens
	if !cfg.DevAuth && cfg.JWTSecret == "" && cfg.JWKSURL == "" {
		problems = append(problems, "JWT_SECRET or AUTH_JWKS_URL is required when DEV_AUTH is disabled")
	}
	if cfg.JWKSURL != "" {
		if _, err := url.ParseRequestURI(cfg.JWKSURL); err != nil {
			problems = append(problems, fmt.Sprintf("AUTH_JWKS_URL is invalid: %v", err))
		}
	}
	if cfg.AccountingBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.AccountingBaseURL); err != nil {
			problems = append(problems, fmt.Sprintf("ACCOUNTING_BASE_URL is invalid: %v", err))
		}
	}
	if len(cfg.KafkaBrokers) > 0 && strings.TrimSpace(cfg.KafkaNotificationsTopic) == "" {
		problems = append(problems, "KAFKA_NOTIFICATIONS_TOPIC cannot be empty when KAFKA_BROKERS is set")
	}

	if cfg.BootstrapEmail != "" && len(cfg.BootstrapPassword) < 8 {
		problems = append(problems, "BOOTSTRAP_MANAGER_PASSWORD must have at least 8 characters")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Fields resume la configuración para loguear al arrancar (sin secretos).
func (cfg *Config) Fields() map[string]any {
	return map[string]any{
		"port":             cfg.Port,
		"storage":          cfg.StorageKind(),
		"log_level":        cfg.LogLevel,
		"dev_auth":         cfg.DevAuth,
		"jwt_configured":   cfg.JWTSecret != "",
		"jwks_url":         cfg.JWKSURL,
		"kafka_brokers":    strings.Join(cfg.KafkaBrokers, ","),
		"accounting_sync":  cfg.AccountingBaseURL != "",
		"read_timeout":     cfg.ReadTimeout.String(),
		"write_timeout":    cfg.WriteTimeout.String(),
		"shutdown_timeout": cfg.ShutdownTimeout.String(),
		"bootstrap":        cfg.BootstrapEmail != "",
	}
}

func (cfg *Config) StorageKind() string {
	if cfg.DBDSN != "" {
		return "postgres"
	}
	return "memory"
}

func getEnvStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
