package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yanminmin/sui/internal/collector"
	"github.com/yanminmin/sui/internal/config"
	"github.com/yanminmin/sui/internal/metrics"
	"github.com/yanminmin/sui/internal/push"
)

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(args, nil)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := metrics.NewRegistry()
	reg.MustRegister(collector.NewHost())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics == nil {
		logger.Info("metrics push disabled: no push url configured")
		<-ctx.Done()
		return nil
	}

	key, err := networkKey(cfg.KeyFile, logger)
	if err != nil {
		return err
	}

	pm := metrics.NewPushMetrics(reg)
	pusher, err := push.New(*cfg.Metrics, key, reg, logger, push.WithMetrics(pm))
	if err != nil {
		return fmt.Errorf("failed to init metrics push: %w", err)
	}

	pusher.Run(ctx)
	return nil
}

func networkKey(path string, logger *zap.Logger) (ed25519.PrivateKey, error) {
	if path != "" {
		key, err := push.LoadKey(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load network key: %w", err)
		}
		return key, nil
	}
	logger.Info("no network key configured, generating an ephemeral one")
	return push.GenerateKey()
}
