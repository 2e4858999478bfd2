package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"comanda-pos/internal/config"
	"comanda-pos/internal/connections/rabbitmq"
	notificator "comanda-pos/internal/notificator/service"
)

func runNotifier(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger) error {
	rmq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	defer rmq.Close()
	if err := rmq.DeclareAll(); err != nil {
		return fmt.Errorf("rabbitmq topology: %w", err)
	}

	n, err := notificator.New(rmq, lg, cfg.Telegram)
	if err != nil {
		return err
	}
	return n.Run(ctx)
}
