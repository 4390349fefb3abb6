package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catalystscan/catalystscan/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalystscan",
	Short: "CatalystScan - Extract forward-looking catalysts from market filings",
	Long: `CatalystScan extracts forward-looking "catalyst" statements from
ASX and SEC filings (PDF and HTML).

A filing is segmented into sections, filtered down to candidate
sentences with a per-filing-type keyword taxonomy, classified in
adaptive batches by a language model, and normalized into validated
catalyst records with impact, tone, forecast type and score.

Extraction strategies are keyed by (exchange, filing type); supported
pairs include ASX annual reports, ASX quarterly reports, ASX investor
presentations and SEC 10-Q filings.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("catalystscan v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.catalystscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".catalystscan"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CATALYSTSCAN_*
	viper.SetEnvPrefix("CATALYSTSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// initLogger configures structured logging to stderr. Verbose mode
// drops the level to debug.
func initLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			EndWithMessage: true,
		},
	}
}

// loadConfig merges defaults, the config file and environment into one
// runtime configuration, then resolves provider credentials
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".catalystscan", "cache")
		}
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	switch cfg.LLM.Provider {
	case "openai", "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("%s provider requires an API key (set OPENAI_API_KEY or ANTHROPIC_API_KEY)", cfg.LLM.Provider)
		}
	}

	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg, nil
}
