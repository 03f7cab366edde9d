package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shieldai/shield/internal/config"
	"github.com/shieldai/shield/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting (base-url, theme, notifications, log-path)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if err := applySetting(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", args[0], cfg.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, cfg *config.Config) {
	theme := cfg.GetTheme()
	if theme == "" {
		theme = string(ui.ThemeShield) + " (default)"
	}
	logPath := cfg.GetLogPath()
	if logPath == "" {
		logPath = "(default)"
	}
	fmt.Fprintf(w, "config file:    %s\n", cfg.Path())
	fmt.Fprintf(w, "base-url:       %s\n", cfg.GetBaseURL())
	fmt.Fprintf(w, "theme:          %s\n", theme)
	fmt.Fprintf(w, "notifications:  %t\n", cfg.GetNotificationsEnabled())
	fmt.Fprintf(w, "log-path:       %s\n", logPath)
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "base-url":
		return cfg.SetBaseURL(value)
	case "theme":
		for _, name := range ui.ThemeNames() {
			if string(name) == value {
				cfg.SetTheme(value)
				return nil
			}
		}
		return fmt.Errorf("unknown theme %q (available: %s)", value, themeList())
	case "notifications":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("notifications must be true or false, got %q", value)
		}
		cfg.SetNotificationsEnabled(enabled)
		return nil
	case "log-path":
		cfg.SetLogPath(value)
		return nil
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func themeList() string {
	names := ui.ThemeNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}
