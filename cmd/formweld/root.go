package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/formweld/go-formweld/pkg/formweld"
)

var (
	configPath string
	logLevel   string
	debugDump  bool
)

var rootCmd = &cobra.Command{
	Use:   "formweld",
	Short: "Detect placeholders in Word templates and merge data rows into them",
	Long: `formweld scans .docx templates for placeholder fields (bookmarks and
bracketed tokens such as {{Name}}), maps data columns onto them manually or
through fuzzy auto-matching, and merges data rows into filled documents,
one section per row separated by page breaks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().BoolVar(&debugDump, "debug", false, "dump internal structures for troubleshooting")
}

// setupConfig layers configuration: .env file, environment variables, an
// optional TOML file, then explicit flags.
func setupConfig() error {
	// A .env next to the working directory is a convenience, not a requirement.
	_ = godotenv.Load()

	config := formweld.ConfigFromEnvironment()

	if configPath != "" {
		fileConfig, err := formweld.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
		config = fileConfig
	}

	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if debugDump {
		config.LogLevel = "debug"
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	formweld.SetGlobalConfig(config)
	return nil
}

func fail(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
