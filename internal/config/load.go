package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/lashpop/stylematch/internal/quiz"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STYLEMATCH_"

// ConfigPathEnv names an explicit config file when --config is not given.
const ConfigPathEnv = "STYLEMATCH_CONFIG"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://stylematch/config.json"

// ErrInvalidFile is returned when a config file fails schema validation.
var ErrInvalidFile = errors.New("invalid config file")

// envKeys maps environment variables onto config keys. Variables that are
// not listed are ignored.
var envKeys = map[string]string{
	"STYLEMATCH_DB":         "db.path",
	"STYLEMATCH_LOG_LEVEL":  "logging.level",
	"STYLEMATCH_LOG_FORMAT": "logging.format",
	"STYLEMATCH_MIN_ROUNDS": "quiz.min_rounds",
	"STYLEMATCH_MAX_ROUNDS": "quiz.max_rounds",
	"STYLEMATCH_WIN_MARGIN": "quiz.win_margin",
	"STYLEMATCH_SEED":       "quiz.seed",
}

// Loaded is a resolved configuration and the file it came from.
type Loaded struct {
	*Config
	// Source is the config file path, or empty when only defaults and
	// environment were used.
	Source string
}

// Load resolves configuration with precedence defaults < file < environment.
// path is optional; when empty, STYLEMATCH_CONFIG and then DefaultPaths are
// searched. An explicit path that does not exist is an error.
func Load(path string) (*Loaded, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	source, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if source != "" {
		fk, err := loadFile(source)
		if err != nil {
			return nil, err
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("merge %s: %w", source, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Source: source}, nil
}

// ValidateFile checks a config file against the schema and the quiz rules
// without applying environment overrides.
func ValidateFile(path string) error {
	fk, err := loadFile(path)
	if err != nil {
		return err
	}
	cfg := defaultConfig()
	if err := fk.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return cfg.Validate()
}

// DefaultPaths lists the config files searched when no path is given.
func DefaultPaths() []string {
	paths := []string{"stylematch.yaml", "stylematch.yml"}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	if dir != "" {
		paths = append(paths, filepath.Join(dir, "stylematch", "config.yaml"))
	}
	return paths
}

// YAML renders the configuration, including the effective score tables.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	rules, err := c.QuizRules()
	if err == nil {
		out.Quiz.Q1 = fromScoreTable(rules.Q1)
		out.Quiz.Q2 = fromScoreTable(rules.Q2)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(out, "koanf"), nil); err != nil {
		return nil, err
	}
	return k.Marshal(yaml.Parser())
}

func resolvePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func loadFile(path string) (*koanf.Koanf, error) {
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := validateDocument(fk.Raw()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fk, nil
}

func envKey(name string) string {
	return envKeys[strings.ToUpper(name)]
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateDocument round-trips the parsed YAML through JSON so the schema
// sees plain JSON types.
func validateDocument(raw map[string]any) error {
	schema, err := configSchema()
	if err != nil {
		return err
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return nil
}

func fromScoreTable(t quiz.ScoreTable) map[string]map[string]int {
	out := make(map[string]map[string]int, len(t))
	for key, deltas := range t {
		d := make(map[string]int, len(deltas))
		for c, points := range deltas {
			d[string(c)] = points
		}
		out[string(key)] = d
	}
	return out
}
