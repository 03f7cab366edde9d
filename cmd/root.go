package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/shieldai/shield/internal/app"
	"github.com/shieldai/shield/internal/config"
	"github.com/shieldai/shield/internal/gateway"
	"github.com/shieldai/shield/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	baseURLFlag           string
	version, commit, date string
)

// loadConfig is replaced in tests.
var loadConfig = config.Load

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "shield",
	Short: "Insurance assistant and premium calculator for the terminal",
	Long: `Shield is a terminal client for the Shield AI insurance service.
Ask the assistant questions about health insurance, or estimate an annual
premium from a short applicant form.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Inference service origin (overrides config and SHIELD_BASE_URL)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("shield %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("shield %s\n", version)
}

// resolveConfig loads the config and applies command-line overrides.
func resolveConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if baseURLFlag != "" {
		if err := cfg.SetBaseURL(baseURLFlag); err != nil {
			return nil, fmt.Errorf("invalid --base-url: %w", err)
		}
	}
	return cfg, nil
}

func initLogger(cfg *config.Config) error {
	path := cfg.GetLogPath()
	if path == "" {
		path = logger.DefaultLogPath
	}
	return logger.Init(path)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if err := initLogger(cfg); err != nil {
		return err
	}
	defer logger.Close()

	client := gateway.New(cfg.GetBaseURL())
	m := app.New(cfg, client, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
