package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// EnvPrefix prefixes the environment variables that override
// configuration values.
const EnvPrefix = "CITECTX_"

// LoadEnvFile loads variables from a .env file into the environment.
// Variables already set are kept. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// GetConfigValue returns the environment variable if set, otherwise the
// configured value.
func GetConfigValue(envVar, configValue string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return configValue
}

// ApplyEnv overrides configuration values from CITECTX_* variables.
func (c *Config) ApplyEnv() error {
	c.DataDir = GetConfigValue(EnvPrefix+"DATA_DIR", c.DataDir)
	c.XMLDir = GetConfigValue(EnvPrefix+"XML_DIR", c.XMLDir)
	c.Articles = GetConfigValue(EnvPrefix+"ARTICLES", c.Articles)
	c.BibTeX = GetConfigValue(EnvPrefix+"BIBTEX", c.BibTeX)
	c.Pairs = GetConfigValue(EnvPrefix+"PAIRS", c.Pairs)
	c.Output = GetConfigValue(EnvPrefix+"OUTPUT", c.Output)
	c.MetricsFile = GetConfigValue(EnvPrefix+"METRICS_FILE", c.MetricsFile)
	c.Log.Level = GetConfigValue(EnvPrefix+"LOG_LEVEL", c.Log.Level)
	c.Log.Format = GetConfigValue(EnvPrefix+"LOG_FORMAT", c.Log.Format)

	if v := os.Getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("parsing %sWORKERS: %w", EnvPrefix, err)
		}
		c.Workers = n
	}
	return nil
}
