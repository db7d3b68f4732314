// Package cli implements the nandad command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petasbytes/nanda-agents/internal/config"
)

var (
	configPath string
	debugMode  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "nandad",
	Short: "NANDA demo services",
	Long:  "Two small NANDA demo services: a rate-limited command agent with durable memory, and a market index snapshot service.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	RootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
