package main

import (
	"context"
	"fmt"
	"log"

	"goshorturl/config"
	"goshorturl/logger"
	"goshorturl/repository"
	"goshorturl/server"

	"go.uber.org/zap"
)

func main() {
	env, err := config.Process()
	if err != nil {
		log.Fatalf("failed to process env: %s", err)
	}

	zaplogger, err := logger.New(env.Production())
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	defer zaplogger.Sync()

	creds, err := config.LoadCredentials(env.EnvFile)
	if err != nil {
		zaplogger.Fatal("failed to load store credentials", zap.String("env_file", env.EnvFile), zap.Error(err))
	}

	db, err := repository.Open(context.Background(), env.StoreBackend, creds, env.DBName, env.DBContainer)
	if err != nil {
		zaplogger.Fatal("failed to initialize store",
			zap.String("backend", env.StoreBackend),
			zap.String("db", env.DBName),
			zap.String("container", env.DBContainer),
			zap.Error(err),
		)
	}
	if _, ok := db.(repository.ClickIncrementer); !ok || !env.AtomicClicks {
		zaplogger.Info("click counter uses read-modify-write; concurrent redirects may lose increments")
	}

	r := server.NewRouter(db, zaplogger, server.Options{
		RedirectOrigin: env.RedirectOrigin,
		AtomicClicks:   env.AtomicClicks,
		RequestTimeout: env.RequestTimeout,
	})
	if err := r.Run(fmt.Sprintf(":%d", env.AppPort)); err != nil {
		zaplogger.Fatal("server stopped", zap.Error(err))
	}
}
