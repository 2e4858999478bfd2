package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"comanda-pos/internal/auth"
	"comanda-pos/internal/config"
	"comanda-pos/internal/connections/database"
	"comanda-pos/internal/migrations"
)

func runMigrate(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger) error {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Apply(ctx, db, lg); err != nil {
		return err
	}
	lg.Infow("migrations_done")
	return nil
}

func runCreateUser(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger, nombre, password, rol string) error {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() { _ = db.Close() }()

	svc := auth.NewService(auth.NewUsersRepository(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	id, err := svc.CreateUser(ctx, nombre, password, rol)
	if err != nil {
		return err
	}
	lg.Infow("user_created", "id", id, "nombre", nombre, "rol", rol)
	return nil
}
