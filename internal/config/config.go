package config

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/style"
)

// SupportedMajor is the config file major version this build reads.
const SupportedMajor = "v1"

// ErrUnsupportedVersion is returned for config files written for another
// major version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Config is the application configuration.
type Config struct {
	Version string        `koanf:"version"`
	DB      DBConfig      `koanf:"db"`
	Logging LoggingConfig `koanf:"logging"`
	Quiz    QuizConfig    `koanf:"quiz"`
}

// DBConfig locates the SQLite database.
type DBConfig struct {
	// Path is empty to use the default XDG data location.
	Path string `koanf:"path"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// QuizConfig holds the quiz rules. Empty score tables fall back to the
// built-in tables.
type QuizConfig struct {
	MinRounds int `koanf:"min_rounds"`
	MaxRounds int `koanf:"max_rounds"`
	WinMargin int `koanf:"win_margin"`
	// Seed makes every session reproducible when non-zero.
	Seed uint64                    `koanf:"seed"`
	Q1   map[string]map[string]int `koanf:"q1,omitempty"`
	Q2   map[string]map[string]int `koanf:"q2,omitempty"`
}

func defaultConfig() *Config {
	return &Config{
		Version: "v1.0.0",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Quiz: QuizConfig{
			MinRounds: quiz.DefaultMinRounds,
			MaxRounds: quiz.DefaultMaxRounds,
			WinMargin: quiz.DefaultWinMargin,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Validate checks version compatibility, logging settings and quiz rules.
func (c *Config) Validate() error {
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, c.Version)
	}
	if major := semver.Major(c.Version); major != SupportedMajor {
		return fmt.Errorf("%w: %s (this build reads %s)", ErrUnsupportedVersion, major, SupportedMajor)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if _, err := c.QuizRules(); err != nil {
		return err
	}
	return nil
}

// QuizRules converts the quiz section into engine rules.
func (c *Config) QuizRules() (quiz.Config, error) {
	rules := quiz.DefaultConfig()
	rules.MinRounds = c.Quiz.MinRounds
	rules.MaxRounds = c.Quiz.MaxRounds
	rules.WinMargin = c.Quiz.WinMargin

	if len(c.Quiz.Q1) > 0 {
		t, err := toScoreTable(c.Quiz.Q1)
		if err != nil {
			return quiz.Config{}, fmt.Errorf("quiz.q1: %w", err)
		}
		rules.Q1 = t
	}
	if len(c.Quiz.Q2) > 0 {
		t, err := toScoreTable(c.Quiz.Q2)
		if err != nil {
			return quiz.Config{}, fmt.Errorf("quiz.q2: %w", err)
		}
		rules.Q2 = t
	}

	if err := rules.Validate(); err != nil {
		return quiz.Config{}, err
	}
	return rules, nil
}

func toScoreTable(raw map[string]map[string]int) (quiz.ScoreTable, error) {
	t := make(quiz.ScoreTable, len(raw))
	for key, deltas := range raw {
		d := make(quiz.Deltas, len(deltas))
		for name, points := range deltas {
			c, err := style.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("answer %s: %w", key, err)
			}
			d[c] = points
		}
		t[quiz.AnswerKey(key)] = d
	}
	return t, nil
}
