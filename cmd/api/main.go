package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dsignme/internal/config"
	"dsignme/internal/db"
	"dsignme/internal/httpserver"
	"dsignme/internal/logging"
	categoryrepo "dsignme/internal/repository/category"
	contactrepo "dsignme/internal/repository/contact"
	filerepo "dsignme/internal/repository/file"
	projectrepo "dsignme/internal/repository/project"
	steprepo "dsignme/internal/repository/servicestep"
	tokenrepo "dsignme/internal/repository/token"
	userrepo "dsignme/internal/repository/user"
	accesssvc "dsignme/internal/service/access"
	accountsvc "dsignme/internal/service/account"
	categorysvc "dsignme/internal/service/category"
	contactsvc "dsignme/internal/service/contact"
	filesvc "dsignme/internal/service/file"
	projectsvc "dsignme/internal/service/project"
	stepsvc "dsignme/internal/service/servicestep"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New("api", cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer dbpool.Close()

	fileRepo := filerepo.NewPostgres(dbpool)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	tokens := accesssvc.New(tokenrepo.NewPostgres(dbpool), logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CategorySvc: categoryService,
		ProjectSvc:  projectsvc.New(projectrepo.NewPostgres(dbpool), fileRepo, categoryService, logger),
		StepSvc:     stepsvc.New(steprepo.NewPostgres(dbpool), categoryService),
		FileSvc:     filesvc.New(fileRepo, logger),
		ContactSvc:  contactsvc.New(contactrepo.NewPostgres(dbpool, logger), logger),
		AccountSvc:  accountsvc.New(userrepo.NewPostgres(dbpool), tokens, logger),
		Tokens:      tokens,
	}, httpserver.Options{
		FileURLHost:       cfg.FileURLHost,
		CORSOrigins:       cfg.CORSOrigins,
		RateLimit:         cfg.RateLimit,
		AllowRegistration: cfg.AllowRegistration,
	})
	if err != nil {
		logger.WithError(err).Fatal("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
}
