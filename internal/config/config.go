// Package config handles project and user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectFile marks the root of a citectx project.
	ProjectFile = "citectx.yml"
	// EnvFile holds environment overrides next to the project file.
	EnvFile = ".env"

	DefaultDataDir  = "data/raw"
	DefaultXMLDir   = "xml"
	DefaultArticles = "ARTICLE.csv"
	DefaultPairs    = "LR_CP.csv"
	DefaultOutput   = "data/interim/CITATION.csv"
)

// ErrNoProject is returned when no project file is found.
var ErrNoProject = errors.New("not in a citectx project (no " + ProjectFile + " found)")

// Config is the configuration of an extraction run.
type Config struct {
	DataDir     string     `yaml:"data_dir,omitempty"`     // Input directory
	XMLDir      string     `yaml:"xml_dir,omitempty"`      // TEI documents; defaults to <data_dir>/xml
	Articles    string     `yaml:"articles,omitempty"`     // Article table; defaults to <data_dir>/ARTICLE.csv
	BibTeX      string     `yaml:"bibtex,omitempty"`       // Optional BibTeX file with article metadata
	Pairs       string     `yaml:"pairs,omitempty"`        // Pair table; defaults to <data_dir>/LR_CP.csv
	Output      string     `yaml:"output,omitempty"`       // Output table; format follows the extension
	Workers     int        `yaml:"workers,omitempty"`      // Concurrent pairs; 0 means NumCPU-2
	MetricsFile string     `yaml:"metrics_file,omitempty"` // Optional Prometheus textfile
	Thresholds  Thresholds `yaml:"thresholds,omitempty"`
	Log         Log        `yaml:"log,omitempty"`
}

// Thresholds are the minimum similarity scores for accepting a
// bibliography entry.
type Thresholds struct {
	Numeric float64 `yaml:"numeric,omitempty"` // strictly exceeded in numeric documents
	Lookup  float64 `yaml:"lookup,omitempty"`  // reached by reference-id lookups
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // json or console
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		DataDir:    DefaultDataDir,
		Output:     DefaultOutput,
		Thresholds: Thresholds{Numeric: 0.85, Lookup: 0.8},
		Log:        Log{Level: "info", Format: "json"},
	}
}

// ProjectPath returns the path to the project file from a root path.
func ProjectPath(root string) string {
	return filepath.Join(root, ProjectFile)
}

// IsProject checks if the given path holds a project file.
func IsProject(root string) bool {
	info, err := os.Stat(ProjectPath(root))
	return err == nil && !info.IsDir()
}

// FindProject walks up from the given path to find a project.
// Returns the project root path or ErrNoProject.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoProject
		}
		abs = parent
	}
}

// Load builds the configuration of the project at root: defaults, then
// the user config, then the project file, then CITECTX_* environment
// variables (including those in the project's .env file). An empty root
// skips the project file. Relative paths are resolved against root.
func Load(root string) (*Config, error) {
	cfg := Default()

	user, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}
	cfg.merge(user)

	if root != "" {
		data, err := os.ReadFile(ProjectPath(root))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
		if err := LoadEnvFile(filepath.Join(root, EnvFile)); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Resolve(root)
	return cfg, nil
}

// merge copies the fields set in other over c.
func (c *Config) merge(other *Config) {
	if other == nil {
		return
	}
	data, err := yaml.Marshal(other)
	if err != nil {
		return
	}
	_ = yaml.Unmarshal(data, c)
}

// Resolve fills derived defaults and makes paths absolute relative to
// root. An empty root leaves relative paths relative to the working
// directory.
func (c *Config) Resolve(root string) {
	c.DataDir = resolvePath(root, c.DataDir)
	if c.XMLDir == "" {
		c.XMLDir = filepath.Join(c.DataDir, DefaultXMLDir)
	} else {
		c.XMLDir = resolvePath(root, c.XMLDir)
	}
	if c.Articles == "" {
		c.Articles = filepath.Join(c.DataDir, DefaultArticles)
	} else {
		c.Articles = resolvePath(root, c.Articles)
	}
	if c.Pairs == "" {
		c.Pairs = filepath.Join(c.DataDir, DefaultPairs)
	} else {
		c.Pairs = resolvePath(root, c.Pairs)
	}
	c.BibTeX = resolvePath(root, c.BibTeX)
	c.Output = resolvePath(root, c.Output)
	c.MetricsFile = resolvePath(root, c.MetricsFile)
}

func resolvePath(root, path string) string {
	if path == "" {
		return ""
	}
	path = ExpandPath(path)
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// WorkerCount returns the number of concurrent pairs to process.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return max(runtime.NumCPU()-2, 1)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d (must be >= 0)", c.Workers)
	}
	for name, v := range map[string]float64{"numeric": c.Thresholds.Numeric, "lookup": c.Thresholds.Lookup} {
		if v < 0 || v > 1 {
			return fmt.Errorf("invalid %s threshold: %v (must be in [0,1])", name, v)
		}
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Log.Format)
	}
	if c.Output == "" {
		return errors.New("output path not configured")
	}
	return nil
}

// Save writes the configuration as a project file at root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
