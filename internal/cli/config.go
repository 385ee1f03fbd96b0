package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mgpai22/waveline/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration in effect after defaults, the config file and
environment fallbacks are applied. API keys are masked.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	if shown.Translate.APIKey != "" {
		shown.Translate.APIKey = "********"
	}
	data, err := shown.Encode()
	if err != nil {
		return err
	}

	source := cfgPath
	if !cfgFound {
		source = "defaults (no file at " + cfgPath + ")"
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "# source: %s\n", source)
	_, _ = out.Write(data)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}

	defaults := config.Default()
	data, err := defaults.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Infow("Wrote default config", "path", path)
	return nil
}
