package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petasbytes/nanda-agents/internal/httpserv"
	"github.com/petasbytes/nanda-agents/internal/market"
	"github.com/petasbytes/nanda-agents/internal/provider"
	"github.com/petasbytes/nanda-agents/internal/registry"
)

func init() {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Run the market index snapshot service",
		Long:  "Serve the SPX snapshot API: /svc/healthz, /svc/summary, /svc/catalog, /svc/announce.",
		RunE:  runMarket,
	}
	RootCmd.AddCommand(cmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var summ market.Summarizer = market.StaticSummarizer{}
	if provider.Available() {
		summ = &market.LLMSummarizer{Client: provider.NewClient(), Model: provider.Model()}
	}

	var reg *registry.Client
	if cfg.Market.RegistryURL != "" {
		reg = registry.New(cfg.Market.RegistryURL)
	}

	svc := market.NewService(market.Options{
		Name:       "spx-today",
		Version:    "0.1.0",
		Title:      cfg.Market.Title,
		Ticker:     cfg.Market.Ticker,
		Addr:       cfg.Market.Addr,
		PublicURL:  cfg.Market.PublicURL,
		Source:     market.NewYahooSource(),
		Summarizer: summ,
		Registry:   reg,
		Logger:     logger,
	})
	srv := httpserv.NewServer(httpserv.Config{
		Addr:    cfg.Market.Addr,
		Handler: svc.Handler(),
		Logger:  logger,
	})

	ctx, stop := signalContext()
	defer stop()

	logger.Info("starting market service",
		zap.String("addr", cfg.Market.Addr),
		zap.String("ticker", cfg.Market.Ticker),
		zap.String("ident", svc.Ident()),
		zap.Bool("anthropic", provider.Available()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(ctx) })
	return g.Wait()
}
