package config

import (
	"fmt"
	"time"

	"github.com/flashlearn/scheduler/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	return nil
}

func (s *SchedulerConfig) validate() error {
	if !domain.Algorithm(s.Algorithm).IsValid() {
		return fmt.Errorf("algorithm must be one of SM2, FSRS (got %q)", s.Algorithm)
	}
	if s.MinEaseFactor <= 0 {
		return fmt.Errorf("min_ease_factor must be > 0 (got %v)", s.MinEaseFactor)
	}
	if s.DefaultEaseFactor < s.MinEaseFactor {
		return fmt.Errorf("default_ease_factor must be >= min_ease_factor (got %v < %v)",
			s.DefaultEaseFactor, s.MinEaseFactor)
	}
	if s.FirstIntervalDays <= 0 {
		return fmt.Errorf("first_interval_days must be > 0 (got %v)", s.FirstIntervalDays)
	}
	if s.SecondIntervalDays < s.FirstIntervalDays {
		return fmt.Errorf("second_interval_days must be >= first_interval_days (got %v < %v)",
			s.SecondIntervalDays, s.FirstIntervalDays)
	}
	if s.InitialStability <= 0 {
		return fmt.Errorf("initial_stability must be > 0 (got %v)", s.InitialStability)
	}
	if s.InitialDifficulty <= 0 {
		return fmt.Errorf("initial_difficulty must be > 0 (got %v)", s.InitialDifficulty)
	}
	if s.SessionLimit <= 0 {
		return fmt.Errorf("session_limit must be > 0 (got %d)", s.SessionLimit)
	}
	if _, err := time.LoadLocation(s.DefaultTimezone); err != nil {
		return fmt.Errorf("default_timezone: %w", err)
	}
	return nil
}
