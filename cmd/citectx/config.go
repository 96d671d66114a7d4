package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsen/citectx/internal/config"
)

var configForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing project file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the configuration",
	Long: `Show or initialize the configuration.

Configuration is layered: built-in defaults, the user file
($XDG_CONFIG_HOME/citectx/config.yml), the project file (citectx.yml),
then CITECTX_* environment variables, including a project .env file.

Usage:
  citectx config show      # Show the effective configuration
  citectx config init      # Write citectx.yml with defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		if humanOutput {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				exitWithError(ExitError, "encoding config: %v", err)
			}
			os.Stdout.Write(data)
			return nil
		}
		return outputJSON(ConfigResponse{
			DataDir:     cfg.DataDir,
			XMLDir:      cfg.XMLDir,
			Articles:    cfg.Articles,
			BibTeX:      cfg.BibTeX,
			Pairs:       cfg.Pairs,
			Output:      cfg.Output,
			Workers:     cfg.WorkerCount(),
			MetricsFile: cfg.MetricsFile,
			Numeric:     cfg.Thresholds.Numeric,
			Lookup:      cfg.Thresholds.Lookup,
			LogLevel:    cfg.Log.Level,
			LogFormat:   cfg.Log.Format,
		})
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a project file with default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = config.ExpandPath(args[0])
		}
		if config.IsProject(root) && !configForce {
			exitWithError(ExitConfigError, "%s already exists (use --force to overwrite)", config.ProjectPath(root))
		}
		if err := os.MkdirAll(root, 0755); err != nil {
			exitWithError(ExitError, "creating directory: %v", err)
		}
		if err := config.Default().Save(root); err != nil {
			exitWithError(ExitError, "%v", err)
		}

		path := config.ProjectPath(root)
		if humanOutput {
			outputHuman("Created %s\n", path)
			return nil
		}
		return outputJSON(StatusResponse{Status: "created", Path: path})
	},
}

// ConfigResponse is the response of config show.
type ConfigResponse struct {
	DataDir     string  `json:"data_dir"`
	XMLDir      string  `json:"xml_dir"`
	Articles    string  `json:"articles"`
	BibTeX      string  `json:"bibtex,omitempty"`
	Pairs       string  `json:"pairs"`
	Output      string  `json:"output"`
	Workers     int     `json:"workers"`
	MetricsFile string  `json:"metrics_file,omitempty"`
	Numeric     float64 `json:"numeric_threshold"`
	Lookup      float64 `json:"lookup_threshold"`
	LogLevel    string  `json:"log_level"`
	LogFormat   string  `json:"log_format"`
}
