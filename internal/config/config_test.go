package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// isolate points the user config at an empty directory and clears the
// CITECTX_* variables a test might read.
func isolate(t *testing.T) {
	t.Helper()
	ResetUserConfigCache()
	t.Cleanup(ResetUserConfigCache)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"DATA_DIR", "XML_DIR", "ARTICLES", "BIBTEX", "PAIRS", "OUTPUT",
		"METRICS_FILE", "LOG_LEVEL", "LOG_FORMAT", "WORKERS"} {
		t.Setenv(EnvPrefix+name, "")
	}
}

func TestIsProject(t *testing.T) {
	tmpDir := t.TempDir()

	if IsProject(tmpDir) {
		t.Error("IsProject() = true for directory without project file")
	}

	if err := os.WriteFile(ProjectPath(tmpDir), []byte("data_dir: data\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !IsProject(tmpDir) {
		t.Error("IsProject() = false for project directory")
	}
}

func TestFindProject(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(ProjectPath(tmpDir), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(tmpDir, "data", "raw", "xml")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProject(nested)
	if err != nil {
		t.Fatalf("FindProject() error = %v", err)
	}
	want, _ := filepath.Abs(tmpDir)
	if got != want {
		t.Errorf("FindProject() = %q, want %q", got, want)
	}
}

func TestFindProject_NotFound(t *testing.T) {
	_, err := FindProject(t.TempDir())
	if !errors.Is(err, ErrNoProject) {
		t.Errorf("FindProject() error = %v, want ErrNoProject", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name, got, want string
	}{
		{"DataDir", cfg.DataDir, filepath.Join(root, "data/raw")},
		{"XMLDir", cfg.XMLDir, filepath.Join(root, "data/raw/xml")},
		{"Articles", cfg.Articles, filepath.Join(root, "data/raw/ARTICLE.csv")},
		{"Pairs", cfg.Pairs, filepath.Join(root, "data/raw/LR_CP.csv")},
		{"Output", cfg.Output, filepath.Join(root, "data/interim/CITATION.csv")},
		{"BibTeX", cfg.BibTeX, ""},
		{"Log.Level", cfg.Log.Level, "info"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if cfg.Thresholds.Numeric != 0.85 || cfg.Thresholds.Lookup != 0.8 {
		t.Errorf("Thresholds = %+v, want {0.85 0.8}", cfg.Thresholds)
	}
}

func TestLoad_ProjectFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	data := []byte(`data_dir: input
xml_dir: /srv/tei
output: out/citations.db
workers: 3
thresholds:
  numeric: 0.9
log:
  format: console
`)
	if err := os.WriteFile(ProjectPath(root), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != filepath.Join(root, "input") {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.XMLDir != "/srv/tei" {
		t.Errorf("XMLDir = %q, want /srv/tei", cfg.XMLDir)
	}
	if cfg.Pairs != filepath.Join(root, "input", DefaultPairs) {
		t.Errorf("Pairs = %q", cfg.Pairs)
	}
	if cfg.Output != filepath.Join(root, "out/citations.db") {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.WorkerCount() != 3 {
		t.Errorf("WorkerCount() = %d, want 3", cfg.WorkerCount())
	}
	if cfg.Thresholds.Numeric != 0.9 {
		t.Errorf("Thresholds.Numeric = %v, want 0.9", cfg.Thresholds.Numeric)
	}
	// Unset nested fields keep their defaults
	if cfg.Thresholds.Lookup != 0.8 {
		t.Errorf("Thresholds.Lookup = %v, want 0.8", cfg.Thresholds.Lookup)
	}
	if cfg.Log.Format != "console" || cfg.Log.Level != "info" {
		t.Errorf("Log = %+v, want {info console}", cfg.Log)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	if err := os.WriteFile(ProjectPath(root), []byte("workers: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	t.Setenv(EnvPrefix+"OUTPUT", "/tmp/out.jsonl")
	t.Setenv(EnvPrefix+"WORKERS", "5")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "/tmp/out.jsonl" {
		t.Errorf("Output = %q, want /tmp/out.jsonl", cfg.Output)
	}
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want 5", cfg.Workers)
	}

	t.Setenv(EnvPrefix+"WORKERS", "many")
	if _, err := Load(root); err == nil {
		t.Error("Load() should reject a non-numeric worker count")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	os.Unsetenv(EnvPrefix + "BIBTEX")
	t.Cleanup(func() { os.Unsetenv(EnvPrefix + "BIBTEX") })
	if err := os.WriteFile(filepath.Join(root, EnvFile), []byte("CITECTX_BIBTEX=library.bib\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BibTeX != filepath.Join(root, "library.bib") {
		t.Errorf("BibTeX = %q", cfg.BibTeX)
	}
}

func TestLoad_UserConfig(t *testing.T) {
	isolate(t)
	home := os.Getenv("XDG_CONFIG_HOME")
	dir := filepath.Join(home, UserConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, UserConfigFile), []byte("workers: 7\nlog:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	if err := os.WriteFile(ProjectPath(root), []byte("workers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// The project file wins over the user config
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"threshold above one", func(c *Config) { c.Thresholds.Lookup = 1.5 }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"no output", func(c *Config) { c.Output = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkerCount_Default(t *testing.T) {
	cfg := Default()
	if cfg.WorkerCount() < 1 {
		t.Errorf("WorkerCount() = %d, want >= 1", cfg.WorkerCount())
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	cfg := Default()
	cfg.Workers = 4
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Workers != 4 {
		t.Errorf("Workers = %d, want 4", loaded.Workers)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got := ExpandPath("~/lex.txt"); got != filepath.Join(home, "lex.txt") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/lex.txt"); got != "/abs/lex.txt" {
		t.Errorf("ExpandPath() = %q", got)
	}
}
