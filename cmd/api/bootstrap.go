package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/config"
	"github.com/NordCoder/Postbox/internal/obs"
	pg "github.com/NordCoder/Postbox/internal/repository/postgres"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(cfg.AsLoggerConfig())
}

func initOTel(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	closer, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		return nil, err
	}
	return closer.Shutdown, nil
}

func initDB(ctx context.Context, cfg *config.Config) (*pg.DB, error) {
	return pg.New(ctx, cfg.DB)
}
