package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trmpgx "github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/ooyyss26/product-api/config"
	"github.com/ooyyss26/product-api/controllers"
	"github.com/ooyyss26/product-api/repository"
	"github.com/ooyyss26/product-api/service"
	"github.com/ooyyss26/product-api/web"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	mainCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Get(logger)

	dbConf, err := pgxpool.ParseConfig(cfg.Database.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse database config")
		return
	}

	pool, err := pgxpool.NewWithConfig(mainCtx, dbConf)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
		return
	}

	db := stdlib.OpenDBFromPool(pool)

	err = goose.SetDialect("postgres")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set postgres dialect")
		return
	}

	err = goose.Up(db, "cmd/changelog")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
		return
	}

	conn := trmpgx.DefaultCtxGetter.DefaultTrOrDB(mainCtx, pool)

	productRepo := repository.NewProductRepository(conn)

	tokenService := service.NewTokenService(cfg.Auth.Secret)
	productService := service.NewProductService(productRepo)

	server, err := web.New(logger, cfg.Server.RESTPort,
		controllers.NewAuthController(tokenService, cfg.Auth.Username, cfg.Auth.Password),
		controllers.NewProductController(productService, tokenService),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build http server")
		return
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	select {
	case <-mainCtx.Done():
		logger.Info().Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http server shutdown failed")
		}
	}
}
