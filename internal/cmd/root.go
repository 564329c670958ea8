package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/faize-ai/vagrant-helpers/internal/config"
)

var (
	cfgFile string
	debug   bool

	settings *config.Config
	logger   = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "vagrant-helpers",
	Short: "vagrant-helpers - describe Vagrant machines in YAML",
	Long: `vagrant-helpers turns an opts.yaml file describing one or more virtual
machines into Vagrant configuration.

Render a Vagrantfile for the current directory:
  vagrant-helpers render

Check an options file and summarize its machines:
  vagrant-helpers check --dir ~/code/lab

Show the private networks public_network entries can match:
  vagrant-helpers networks`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vagrant-helpers/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("dir", ".", "base directory holding opts.yaml and .env")
	rootCmd.PersistentFlags().String("opts", "", "options file relative to --dir (env: VAGRANT_HELPERS_OPTS)")
	rootCmd.PersistentFlags().String("env-file", ".env", "env file loaded before reading options")
	rootCmd.PersistentFlags().String("path-translator", "wslpath", "utility translating drive-letter paths (empty disables)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
}

var flagKeys = map[string]string{
	"dir":             "dir",
	"opts":            "opts",
	"env-file":        "env_file",
	"path-translator": "path_translator",
	"log-format":      "log_format",
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	for flag, key := range flagKeys {
		if err := cfg.Viper().BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return err
		}
	}
	if err := cfg.Reload(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings = cfg

	return setupLogger(cfg.LogFormat)
}

func setupLogger(format string) error {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q: must be 'text' or 'json'", format)
	}

	logger.WithField("dir", settings.Dir).Debug("config loaded")
	return nil
}
