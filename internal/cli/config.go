package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/coderev/internal/config"
)

var (
	flagConfigForce    bool
	flagConfigFileOnly bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage coderev configuration",
	Long: `Manage the coderev configuration file.

Settings are merged in this order, later sources winning:
  built-in defaults <- config file <- CODEREV_* environment <- command flags

The file lives at $XDG_CONFIG_HOME/coderev/config.json (see "coderev config path").`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Init writes the built-in defaults (groq with llama3-8b-8192, feedback at
temperature 0.25 and 900 tokens, summary at 0.4 and 300 tokens, secret
redaction on) to the config file. An existing file is kept unless --force is
given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !flagConfigForce {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s (use --force to overwrite)\n", path)
			return nil
		}

		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value in the config file",
	Long: "Set validates one value and stores it in the config file.\n\nKeys:\n  " +
		strings.Join(config.Keys(), "\n  ") + `

Examples:
  coderev config set provider anthropic
  coderev config set feedbackTemperature 0.3
  coderev config set summaryMaxTokens 400
  coderev config set privacy.redactSecrets false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := config.SetField(&cfg, key, value); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		if key == "privacy.redactSecrets" && !cfg.Privacy.RedactSecrets {
			fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: snippets will be sent to the provider without secret redaction")
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	Long: `Show prints the configuration a review would run with, after merging the
file, CODEREV_* environment variables and defaults. With --file only the
config file (over the defaults) is shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		load := func() (config.Config, error) { return config.Load(nil) }
		if flagConfigFileOnly {
			load = config.LoadFile
		}
		cfg, err := load()
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configShowCmd.Flags().BoolVar(&flagConfigFileOnly, "file", false, "Show the config file without environment overrides")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
