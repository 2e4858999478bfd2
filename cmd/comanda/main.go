package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"comanda-pos/internal/config"
)

func main() {
	mode := flag.String("mode", "api", "api | notifier | migrate | create-user")
	userName := flag.String("user", "", "create-user: account name")
	userPass := flag.String("password", "", "create-user: account password")
	userRol := flag.String("rol", "cajero", "create-user: account role")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	lg := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		lg.Fatalw("config_load_failed", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "api":
		lg.Infow("service_started", "service", "api", "addr", cfg.HTTP.Addr)
		if err := runAPI(ctx, cfg, lg); err != nil {
			lg.Fatalw("fatal", "error", err)
		}
	case "notifier":
		lg.Infow("service_started", "service", "notifier")
		if err := runNotifier(ctx, cfg, lg); err != nil {
			lg.Fatalw("fatal", "error", err)
		}
	case "migrate":
		if err := runMigrate(ctx, cfg, lg); err != nil {
			lg.Fatalw("fatal", "error", err)
		}
	case "create-user":
		if *userName == "" || *userPass == "" {
			fmt.Fprintln(os.Stderr, "--user and --password are required for create-user")
			os.Exit(2)
		}
		if err := runCreateUser(ctx, cfg, lg, *userName, *userPass, *userRol); err != nil {
			lg.Fatalw("fatal", "error", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: api | notifier | migrate | create-user")
		os.Exit(2)
	}
}
