package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitlab.com/lanterman/loglady/internal/config"
	errs "gitlab.com/lanterman/loglady/internal/errors"
	"gitlab.com/lanterman/loglady/internal/output"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage loglady configuration",
	Long: `Manage loglady configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (LOGLADY_*)
  2. Config file (--config, ./loglady.yaml, or the user config dir)
  3. Built-in defaults`,
	Example: `  # Create a default config file in the working directory
  loglady config init

  # Overwrite an existing config file
  loglady config init --force`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a commented default config file to fill in.

The file is created as ./loglady.yaml unless --config names another path.
An existing file is left unchanged unless --force is given.`,
	Example: `  # Create ./loglady.yaml
  loglady config init

  # Create it somewhere else
  loglady --config team/loglady.yaml config init`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command) error {
	target := cfgFile
	if target == "" {
		target = config.DefaultConfigName
	}

	existed := false
	if _, err := os.Stat(target); err == nil {
		if !configForce {
			return errs.NewConfigError(
				fmt.Sprintf("config file already exists: %s", target),
				"Re-run with --force to overwrite it",
				"Or edit the existing file directly",
			)
		}
		existed = true
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(target, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", target, err)
	}

	out := cmd.OutOrStdout()
	verb := "Created"
	if existed {
		verb = "Overwrote"
	}
	output.PrintStepSuccess(out, fmt.Sprintf("%s %s", verb, target))
	output.PrintNotice(out, "Set gitlab.token in the file or export LOGLADY_GITLAB_TOKEN before running loglady.")
	return nil
}
