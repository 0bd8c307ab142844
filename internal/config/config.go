package config

import (
	"time"

	"github.com/flashlearn/scheduler/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SchedulerConfig holds spaced-repetition scheduling parameters.
type SchedulerConfig struct {
	Algorithm          string  `yaml:"algorithm"            env:"SCHEDULER_ALGORITHM"            env-default:"SM2"`
	DefaultEaseFactor  float64 `yaml:"default_ease_factor"  env:"SCHEDULER_DEFAULT_EASE"         env-default:"2.5"`
	MinEaseFactor      float64 `yaml:"min_ease_factor"      env:"SCHEDULER_MIN_EASE"             env-default:"1.3"`
	FirstIntervalDays  float64 `yaml:"first_interval_days"  env:"SCHEDULER_FIRST_INTERVAL"       env-default:"1"`
	SecondIntervalDays float64 `yaml:"second_interval_days" env:"SCHEDULER_SECOND_INTERVAL"      env-default:"6"`
	InitialStability   float64 `yaml:"initial_stability"    env:"SCHEDULER_INITIAL_STABILITY"    env-default:"1.0"`
	InitialDifficulty  float64 `yaml:"initial_difficulty"   env:"SCHEDULER_INITIAL_DIFFICULTY"   env-default:"5.0"`
	SessionLimit       int     `yaml:"session_limit"        env:"SCHEDULER_SESSION_LIMIT"        env-default:"20"`
	DefaultTimezone    string  `yaml:"default_timezone"     env:"SCHEDULER_DEFAULT_TIMEZONE"     env-default:"UTC"`
}

// AlgorithmKind returns the configured algorithm as a domain enum.
// Only meaningful after Validate has passed.
func (s SchedulerConfig) AlgorithmKind() domain.Algorithm {
	return domain.Algorithm(s.Algorithm)
}
