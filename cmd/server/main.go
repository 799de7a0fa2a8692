package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/internal/server"
	"github.com/cronforge/jenkins-scheduler/pkg/config"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/jenkins"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
	"github.com/cronforge/jenkins-scheduler/pkg/services/scheduler"
	"github.com/cronforge/jenkins-scheduler/pkg/services/store"
)

func init() {
	_ = gotenv.Load()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := st.Init(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	clients := library.BuildClientFactory(func(srv *payloads.BuildServer) library.BuildClient {
		return jenkins.New(srv, cfg.RetryMode, cfg.RetryMaxTime, log)
	})

	registry := scheduler.New(st, clients, log)
	defer registry.Stop()

	// Rebuild every trigger from stored jobs before taking traffic.
	if err := registry.ArmAll(ctx); err != nil {
		return fmt.Errorf("arming stored jobs: %w", err)
	}

	srv := server.New(st, registry, clients, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down", zap.String("reason", "signal"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
