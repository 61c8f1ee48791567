package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/todod/pkg/config"
	"github.com/adfharrison1/todod/pkg/server"
	"github.com/adfharrison1/todod/pkg/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "todod: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	store, err := storage.Open(cfg.DatabasePath,
		storage.WithPoolSize(cfg.PoolSize),
		storage.WithLogger(logger),
	)
	if err != nil {
		logger.WithError(err).Fatal("Could not open database")
	}

	logger.Info("Mapping Routes")
	srv := server.NewServer(store, server.Options{
		RedirectURL: cfg.RedirectURL,
		JSONAcks:    cfg.AckMode == config.AckJSON,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}

	// Bind before serving so a taken port fails startup.
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		store.Close()
		logger.WithError(err).Fatalf("Could not listen on %s", cfg.Addr)
	}

	go func() {
		logger.Infof("Creating Server at http://%s", listener.Addr())
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	if cfg.BackupFile != "" {
		logger.Infof("Saving backup to: %s", cfg.BackupFile)
		srv.SaveBackup(ctx, cfg.BackupFile)
	}

	if err := store.Close(); err != nil {
		logger.WithError(err).Error("Could not close database")
	}

	logger.Info("Server exited")
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	// Validated by config.Load.
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
