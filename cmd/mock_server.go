package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shieldai/shield/internal/logger"
	"github.com/shieldai/shield/internal/mockserver"
)

var (
	mockAddr  string
	mockDelay time.Duration
	mockFail  []string
	mockRPS   float64
	mockBurst int
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local stand-in for the inference service",
	Long: `Serves POST /chat and POST /predict with canned answers and a simple
premium heuristic, so the client can be tried without the real service.

Examples:
  shield mock-server --delay 2s
  shield mock-server --fail predict
  shield mock-server --addr 127.0.0.1:9000   # then: shield --base-url http://127.0.0.1:9000`,
	RunE: runMockServer,
}

func init() {
	defaults := mockserver.DefaultConfig()
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", defaults.Addr, "Listen address")
	mockServerCmd.Flags().DurationVar(&mockDelay, "delay", 0, "Artificial latency added to every request")
	mockServerCmd.Flags().StringSliceVar(&mockFail, "fail", nil, "Endpoints that answer 500 (chat, predict)")
	mockServerCmd.Flags().Float64Var(&mockRPS, "rps", defaults.RPS, "Requests per second allowed (0 disables limiting)")
	mockServerCmd.Flags().IntVar(&mockBurst, "burst", defaults.Burst, "Token bucket burst size")
	rootCmd.AddCommand(mockServerCmd)
}

func mockConfig() (mockserver.Config, error) {
	for _, f := range mockFail {
		if f != "chat" && f != "predict" {
			return mockserver.Config{}, fmt.Errorf("unknown endpoint %q for --fail (want chat or predict)", f)
		}
	}
	return mockserver.Config{
		Addr:        mockAddr,
		Delay:       mockDelay,
		FailChat:    slices.Contains(mockFail, "chat"),
		FailPredict: slices.Contains(mockFail, "predict"),
		RPS:         mockRPS,
		Burst:       mockBurst,
	}, nil
}

func runMockServer(cmd *cobra.Command, args []string) error {
	cfg, err := mockConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Mock service listening on http://%s (ctrl+c to stop)\n", cfg.Addr)
	return mockserver.New(cfg).Run(ctx)
}
