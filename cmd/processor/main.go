// Command processor runs one batch over the input directory: every order
// spreadsheet is read, enriched with tax rates, aggregated per order, and
// persisted, with unresolved orders routed to the review queue.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ordersvc/internal/config"
	"ordersvc/internal/logging"
	"ordersvc/internal/metrics"
	"ordersvc/internal/pipeline"
	mongorepo "ordersvc/internal/repository/mongo"
	"ordersvc/internal/service"
	"ordersvc/internal/taxrate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewRegistry()
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	entries := taxrate.BuiltinEntries()
	if cfg.Tax.RulesFile != "" {
		extra, err := taxrate.LoadEntries(cfg.Tax.RulesFile)
		if err != nil {
			return err
		}
		logger.Info("loaded rate rule overrides",
			zap.String("file", cfg.Tax.RulesFile), zap.Int("rules", len(extra)))
		entries = append(entries, extra...)
	}
	table := taxrate.NewTable(entries)
	logger.Info("tax rate table ready", zap.Int("routes", table.Len()))

	client, err := mongorepo.NewClient(ctx, &cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	store := mongorepo.NewOrderRepo(client, &cfg.Mongo)

	enricher := pipeline.NewEnricher(table)
	aggregator := pipeline.NewAggregator(logger)
	router := pipeline.NewRouter(store, cfg.Pipeline.ChunkSize, logger, m)
	processor := service.NewProcessor(enricher, aggregator, router, cfg.Pipeline.Workers, logger, m)
	runner := service.NewRunner(processor, cfg.Input, logger)

	logger.Info("starting order processing", zap.String("input_dir", cfg.Input.Dir))
	return runner.Run(ctx)
}
