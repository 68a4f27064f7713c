package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/matrix-sign/internal/adapter/httpadapter"
	"github.com/couchcryptid/matrix-sign/internal/arbiter"
	"github.com/couchcryptid/matrix-sign/internal/config"
	"github.com/couchcryptid/matrix-sign/internal/display"
	"github.com/couchcryptid/matrix-sign/internal/engine"
	"github.com/couchcryptid/matrix-sign/internal/feed"
	"github.com/couchcryptid/matrix-sign/internal/feed/inject"
	"github.com/couchcryptid/matrix-sign/internal/feed/kafkafeed"
	"github.com/couchcryptid/matrix-sign/internal/feed/nws"
	"github.com/couchcryptid/matrix-sign/internal/observability"
	"github.com/couchcryptid/matrix-sign/internal/render"
	signalfile "github.com/couchcryptid/matrix-sign/internal/signal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		logger.Error("failed to create cache dir", "dir", cfg.CacheDir, "error", err)
		os.Exit(1)
	}

	// Select the feed source and wrap it with the disk-snapshot fallback.
	var source feed.Source
	var kafkaReader *kafkafeed.Reader
	switch cfg.FeedSource {
	case config.FeedKafka:
		kafkaReader = kafkafeed.NewReader(kafkafeed.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
		}, logger)
		source = kafkaReader
		go func() {
			if err := kafkaReader.Run(ctx); err != nil {
				logger.Error("kafka feed error", "error", err)
			}
		}()
		logger.Info("kafka feed enabled", "topic", cfg.KafkaTopic)
	default:
		source = nws.NewClient(cfg.Latitude, cfg.Longitude, cfg.FetchTimeout, logger)
		logger.Info("nws feed enabled", "lat", cfg.Latitude, "lon", cfg.Longitude)
	}
	source = feed.NewFallback(source, cfg.CacheDir, cfg.SnapshotMaxAge, clock, logger)

	injector := inject.NewWatcher(cfg.InjectFile, logger)
	go func() {
		if err := injector.Run(ctx); err != nil {
			logger.Error("scenario watcher error", "error", err)
		}
	}()

	port := signalfile.NewFilePort(cfg.SignalFile)
	arb := arbiter.New(clock, port, cfg.OneShotCooldown, logger)
	renderer := render.New(render.Config{
		Width:       cfg.DisplayWidth,
		Height:      cfg.DisplayHeight,
		ScrollSpeed: cfg.ScrollSpeed,
		LoopGap:     cfg.LoopGap,
		Region:      cfg.Region,
	}, logger)

	eng := engine.New(engine.Options{
		Source:         source,
		Injector:       injector,
		PollInterval:   cfg.PollInterval,
		UpdateInterval: cfg.UpdateInterval,
	}, arb, renderer, cfg.ShowWhenClear, clock, metrics, logger)

	var sink display.Sink = display.DiscardSink{}
	if cfg.FrameDir != "" {
		pngSink, err := display.NewPNGSink(cfg.FrameDir)
		if err != nil {
			logger.Error("failed to create frame sink", "error", err)
			os.Exit(1)
		}
		sink = pngSink
		logger.Info("png frame sink enabled", "dir", cfg.FrameDir)
	}
	loop := display.NewLoop(eng, sink, cfg.DisplayFPS, clock, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, eng, eng, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	go func() {
		if err := eng.Run(ctx); err != nil {
			logger.Error("engine error", "error", err)
		}
	}()
	go func() {
		if err := loop.Run(ctx); err != nil {
			logger.Error("display loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	eng.Cleanup()
	if kafkaReader != nil {
		if err := kafkaReader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if err := sink.Close(); err != nil {
		logger.Error("frame sink close error", "error", err)
	}

	logger.Info("shutdown complete")
}
