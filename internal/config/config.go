package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig controls how days, weeks and lateness are computed.
type AttendanceConfig struct {
	Timezone            string
	ExpectedStart       string
	WeekStart           string
	AutoCheckoutAt      string
	AutoCheckoutEvery   time.Duration
	location            *time.Location
	expectedStartClock  worktime.ClockTime
	autoCheckoutAtClock worktime.ClockTime
	weekStartDay        time.Weekday
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func Load() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables.
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// Attendance configuration
	every, err := time.ParseDuration(getEnv("ATTENDANCE_AUTO_CHECKOUT_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_AUTO_CHECKOUT_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:          getEnv("ATTENDANCE_TIMEZONE", "Asia/Tehran"),
		ExpectedStart:     getEnv("ATTENDANCE_EXPECTED_START", "09:00"),
		WeekStart:         strings.ToLower(getEnv("ATTENDANCE_WEEK_START", "monday")),
		AutoCheckoutAt:    getEnv("ATTENDANCE_AUTO_CHECKOUT_AT", "18:00"),
		AutoCheckoutEvery: every,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration and resolves the attendance settings.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	return c.Attendance.resolve()
}

func (a *AttendanceConfig) resolve() error {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	start, err := worktime.ParseClock(a.ExpectedStart)
	if err != nil {
		return fmt.Errorf("invalid ATTENDANCE_EXPECTED_START: %w", err)
	}
	closeAt, err := worktime.ParseClock(a.AutoCheckoutAt)
	if err != nil {
		return fmt.Errorf("invalid ATTENDANCE_AUTO_CHECKOUT_AT: %w", err)
	}
	day, ok := weekdays[a.WeekStart]
	if !ok {
		return fmt.Errorf("invalid ATTENDANCE_WEEK_START: %q", a.WeekStart)
	}
	if a.AutoCheckoutEvery <= 0 {
		return fmt.Errorf("ATTENDANCE_AUTO_CHECKOUT_INTERVAL must be positive")
	}

	a.location = loc
	a.expectedStartClock = start
	a.autoCheckoutAtClock = closeAt
	a.weekStartDay = day
	return nil
}

// Location is the timezone "today" and report days are evaluated in.
func (a AttendanceConfig) Location() *time.Location {
	if a.location == nil {
		return time.UTC
	}
	return a.location
}

func (a AttendanceConfig) ExpectedStartClock() worktime.ClockTime {
	if a.location == nil {
		return worktime.DefaultExpectedStart
	}
	return a.expectedStartClock
}

func (a AttendanceConfig) AutoCheckoutClock() worktime.ClockTime {
	return a.autoCheckoutAtClock
}

func (a AttendanceConfig) WeekStartDay() time.Weekday {
	if a.location == nil {
		return time.Monday
	}
	return a.weekStartDay
}

// AccessTTL returns the parsed access token lifetime.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessExpiration)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
