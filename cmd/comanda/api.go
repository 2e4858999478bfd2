package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"comanda-pos/internal/api"
	"comanda-pos/internal/auth"
	cajahandlers "comanda-pos/internal/caja/handlers"
	cajarepo "comanda-pos/internal/caja/repository"
	cajaservice "comanda-pos/internal/caja/service"
	comandahandlers "comanda-pos/internal/comanda/handlers"
	comandarepo "comanda-pos/internal/comanda/repository"
	comandaservice "comanda-pos/internal/comanda/service"
	"comanda-pos/internal/common/httpx"
	"comanda-pos/internal/config"
	"comanda-pos/internal/connections/database"
	"comanda-pos/internal/connections/rabbitmq"
	mesahandlers "comanda-pos/internal/mesa/handlers"
	mesarepo "comanda-pos/internal/mesa/repository"
	menuhandlers "comanda-pos/internal/menu/handlers"
	menurepo "comanda-pos/internal/menu/repository"
	orderhandlers "comanda-pos/internal/order/handlers"
	orderrepo "comanda-pos/internal/order/repository"
	orderservice "comanda-pos/internal/order/service"
)

func runAPI(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger) error {
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set for the api mode")
	}

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() { _ = db.Close() }()
	lg.Infow("database_connected", "host", cfg.DB.Host, "database", cfg.DB.Database)

	rmq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	defer rmq.Close()
	if err := rmq.DeclareAll(); err != nil {
		return fmt.Errorf("rabbitmq topology: %w", err)
	}
	lg.Infow("rabbitmq_connected", "host", cfg.Rabbit.Host)

	events := rabbitmq.NewEvents(rmq)

	orders := orderservice.NewOrderService(orderrepo.NewOrdersRepository(db), events, lg)
	comanda := comandaservice.NewComandaService(comandarepo.NewComandaRepository(db), orders)
	caja := cajaservice.NewCajaService(cajarepo.NewCajaRepository(db), orders, events, cfg.Caja.CloseFrom, lg)
	authService := auth.NewService(auth.NewUsersRepository(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := api.Router(api.Deps{
		Orders:    orderhandlers.NewOrderHandler(orders),
		Comanda:   comandahandlers.NewComandaHandler(comanda),
		Caja:      cajahandlers.NewCajaHandler(caja),
		Mesas:     mesahandlers.NewMesaHandler(mesarepo.NewMesasRepository(db)),
		Menu:      menuhandlers.NewMenuHandler(menurepo.NewMenuRepository(db)),
		Auth:      auth.NewHandler(authService),
		JWTSecret: cfg.Auth.JWTSecret,
	})

	srv := httpx.New(cfg.HTTP.Addr, router)
	return srv.Run(ctx)
}
