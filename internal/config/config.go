package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	CourtAPI  CourtAPIConfig  `toml:"court_api"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL (журнал бронирований)
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig настройки хранилища сессий выбора
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	SessionTTL int    `toml:"session_ttl"` // минуты
}

// SessionTTLDuration время жизни сессии
func (r RedisConfig) SessionTTLDuration() time.Duration {
	return time.Duration(r.SessionTTL) * time.Minute
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CourtAPIConfig настройки бэкенда площадок
type CourtAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig параметры сетки слотов
type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	FirstHour          int    `toml:"first_hour"`
	LastHour           int    `toml:"last_hour"`
	LockHorizonMinutes int    `toml:"lock_horizon_minutes"`
}

// Location часовой пояс площадок
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// LockHorizon интервал от текущего момента, в котором слоты недоступны
func (b BookingConfig) LockHorizon() time.Duration {
	return time.Duration(b.LockHorizonMinutes) * time.Minute
}

// RateLimitConfig ограничение частоты запросов на клиента
// TrustedProxies - адреса или CIDR прокси, чьим X-Forwarded-For / X-Real-IP можно верить
type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	RPS            float64  `toml:"rps"`
	Burst          int      `toml:"burst"`
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyPrefixes разбирает TrustedProxies; одиночный адрес становится префиксом /32 или /128
func (r RateLimitConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(r.TrustedProxies))
	for _, raw := range r.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy prefix %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Load загружает конфигурацию из TOML файла, заполняя значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			SessionTTL: 30,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "court_booking",
		},
		CourtAPI: CourtAPIConfig{
			Timeout: 10,
		},
		Booking: BookingConfig{
			Timezone:           "Asia/Ho_Chi_Minh",
			FirstHour:          5,
			LastHour:           23,
			LockHorizonMinutes: 60,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.CourtAPI.URL == "" {
		return fmt.Errorf("court_api.url is required")
	}
	if c.CourtAPI.Timeout <= 0 {
		return fmt.Errorf("court_api.timeout must be positive")
	}
	if c.Redis.SessionTTL <= 0 {
		return fmt.Errorf("redis.session_ttl must be positive")
	}
	if c.Booking.FirstHour < 0 || c.Booking.LastHour > 23 || c.Booking.FirstHour > c.Booking.LastHour {
		return fmt.Errorf("booking hours %d..%d are invalid", c.Booking.FirstHour, c.Booking.LastHour)
	}
	if c.Booking.LockHorizonMinutes < 0 {
		return fmt.Errorf("booking.lock_horizon_minutes must not be negative")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("booking.timezone: %w", err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive")
	}
	if _, err := c.RateLimit.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("rate_limit.trusted_proxies: %w", err)
	}
	return nil
}
