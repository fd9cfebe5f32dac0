package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/Bessima/food-dispatch/internal/clients/broker"
	"github.com/Bessima/food-dispatch/internal/config"
	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/handlers"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/Bessima/food-dispatch/internal/repository"
	"github.com/Bessima/food-dispatch/internal/server"
	"github.com/Bessima/food-dispatch/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Fatal("dispatcher stopped", zap.Error(err))
	}
}

func run() error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf := config.InitConfig()

	if err := logger.Initialize(conf.LogLevel); err != nil {
		logger.Log.Warn(err.Error())
	}
	defer logger.Log.Sync()

	if conf.JWTSecret == "" {
		return errors.New("jwt secret is not configured")
	}

	storage, err := db.NewDB(rootCtx, conf.DatabaseDNS)
	if err != nil {
		return err
	}
	defer storage.Close()

	adminService := service.NewAdminService(repository.NewAdminRepository(storage), nil)
	if err = adminService.EnsureSuperAdmin(rootCtx, conf.SuperAdminLogin, conf.SuperAdminPassword); err != nil {
		return err
	}

	var publisher service.ActionPublisherI
	if conf.AMQPURL != "" {
		amqpPublisher, err := broker.Dial(conf.AMQPURL, broker.DefaultExchange)
		if err != nil {
			logger.Log.Warn("action log exchange is unavailable, publishing disabled", zap.Error(err))
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	clock := service.NewClock(conf.Location())
	serverService := server.NewServerService(rootCtx, conf.Address, storage, publisher, clock)
	serverService.SetRouter(&handlers.JWTConfig{
		SecretKey:      conf.JWTSecret,
		AccessTokenTTL: conf.AccessTokenTTL,
	})

	serverErr := make(chan error, 1)
	logger.Log.Info("Running Server on",
		zap.String("address", conf.Address),
		zap.String("timezone", clock.Location.String()),
	)
	go serverService.RunServer(serverErr)

	select {
	case <-rootCtx.Done():
		logger.Log.Info("Received shutdown signal, shutting down.")
	case err = <-serverErr:
		logger.Log.Error("Server error", zap.Error(err))
	}

	if shutdownErr := serverService.Shutdown(); shutdownErr != nil {
		logger.Log.Error("Server shutdown error", zap.Error(shutdownErr))
	}

	return err
}
