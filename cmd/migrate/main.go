package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"dsignme/internal/config"
	"dsignme/internal/db"
	"dsignme/internal/logging"
	"dsignme/internal/migrate"
)

func main() {
	reset := flag.Bool("reset", false, "roll back every migration and apply them again")
	flag.Parse()

	cfg, err := config.FromEnv()
	logger := logging.New("migrate", cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	run, action := migrate.Apply, "apply migrations"
	if *reset {
		run, action = migrate.Reset, "reset schema"
	}
	if err := run(ctx, pool, migrate.WithLogger(logger)); err != nil {
		logger.WithError(err).Fatal(action)
	}

	version, dirty, ok, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.WithError(err).Fatal("read schema version")
	}
	if !ok {
		logger.Info("schema is empty")
		return
	}
	logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("schema ready")
}
