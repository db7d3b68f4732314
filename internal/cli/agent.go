package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petasbytes/nanda-agents/internal/agent"
	"github.com/petasbytes/nanda-agents/internal/httpserv"
)

func init() {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the rate-limited command agent",
		Long:  "Serve the NANDA agent API: /api/health, /api/send, /api/render, /api/agents/list, /api/tools.",
		RunE:  runAgent,
	}
	RootCmd.AddCommand(cmd)
}

func runAgent(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a := agent.New(agent.Options{
		Name:       cfg.Agent.Name,
		Version:    cfg.Agent.Version,
		MemoryPath: cfg.Agent.MemoryPath,
		RatePerMin: cfg.Agent.RateLimitPerMin,
		Logger:     logger,
	})
	srv := httpserv.NewServer(httpserv.Config{
		Addr:     cfg.Agent.Addr,
		Handler:  httpserv.Handler(a, logger),
		Logger:   logger,
		CertFile: cfg.Agent.CertFile,
		KeyFile:  cfg.Agent.KeyFile,
	})

	ctx, stop := signalContext()
	defer stop()

	logger.Info("starting agent service",
		zap.String("addr", cfg.Agent.Addr),
		zap.String("memory_path", cfg.Agent.MemoryPath),
		zap.Int("rate_limit_per_min", cfg.Agent.RateLimitPerMin))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(ctx) })
	return g.Wait()
}
