package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authdash/internal/buildinfo"
	"github.com/dmitrijs2005/authdash/internal/client/config"
	"github.com/dmitrijs2005/authdash/internal/client/services"
	"github.com/dmitrijs2005/authdash/internal/client/web"
	"github.com/dmitrijs2005/authdash/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	svc, err := services.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error(ctx, "close failed", "error", err)
		}
	}()

	ui, err := web.New(svc.Form, svc.Dashboard, logger)
	if err != nil {
		logger.Error(ctx, "templates", "error", err)
		return
	}

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           ui.Router(),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error(sctx, "shutdown failed", "error", err)
		}
	}()

	logger.Info(ctx, "listening", "addr", cfg.WebAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server failed", "error", err)
	}

}
