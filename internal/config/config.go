package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки подключения к БД
	JWT      JWTConfig      // Настройки JWT авторизации
	Autosave AutosaveConfig // Настройки автосохранения черновиков
	Admin    AdminConfig    // Настройки администраторов
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"hackathon"`
	Password string `envconfig:"DB_PASSWORD" default:"hackathon_pass"`
	Name     string `envconfig:"DB_NAME" default:"hackathon"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`
}

// AutosaveConfig содержит настройки дебаунса автосохранения
type AutosaveConfig struct {
	// DebounceMS период тишины после последней правки перед записью
	DebounceMS int `envconfig:"AUTOSAVE_DEBOUNCE_MS" default:"2000"`
}

// AdminConfig содержит bootstrap-настройки администраторов
type AdminConfig struct {
	// Emails список email-адресов, получающих роль admin при первом входе
	Emails []string `envconfig:"ADMIN_EMAILS"`
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// GetDebounce возвращает период дебаунса как time.Duration
func (a AutosaveConfig) GetDebounce() time.Duration {
	return time.Duration(a.DebounceMS) * time.Millisecond
}

// IsAdminEmail проверяет входит ли email в список администраторов
func (a AdminConfig) IsAdminEmail(email string) bool {
	for _, admin := range a.Emails {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return true
		}
	}
	return false
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
