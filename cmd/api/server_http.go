package main

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/auth"
	"github.com/NordCoder/Postbox/internal/config"
	pg "github.com/NordCoder/Postbox/internal/repository/postgres"
	"github.com/NordCoder/Postbox/internal/services/api"
	authsvc "github.com/NordCoder/Postbox/internal/services/api/auth"
	"github.com/NordCoder/Postbox/internal/services/api/posts"
)

func buildHTTPServer(cfg *config.Config, logger *zap.Logger, db *pg.DB) *http.Server {
	users := pg.NewUserRepo(db)
	postRepo := pg.NewPostRepo(db)

	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), logger)
	uc := authsvc.NewUsecase(users, tokens, logger, authsvc.Config{
		AccessTTL: cfg.Auth.AccessTTL,
		Validation: authsvc.ValidationPolicy{
			MinUsernameLen: cfg.Validation.MinUsernameLen,
			MinPasswordLen: cfg.Validation.MinPasswordLen,
		},
	})

	handler := api.NewHandler(api.Deps{
		Log:    logger,
		Tokens: tokens,
		Auth:   authsvc.NewHandler(uc, logger),
		Posts:  posts.NewHandler(postRepo, logger),
	})

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           otelhttp.NewHandler(handler, "http.api"),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func serveHTTP(srv *http.Server, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", cfg.Server.HTTPAddr))
	return srv.ListenAndServe()
}
