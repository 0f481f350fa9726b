package main

import (
	"context"
	"fmt"

	"dsignme/internal/config"
	"dsignme/internal/db"
	"dsignme/internal/logging"
	categoryrepo "dsignme/internal/repository/category"
	contactrepo "dsignme/internal/repository/contact"
	filerepo "dsignme/internal/repository/file"
	projectrepo "dsignme/internal/repository/project"
	steprepo "dsignme/internal/repository/servicestep"
	tokenrepo "dsignme/internal/repository/token"
	userrepo "dsignme/internal/repository/user"
	"dsignme/internal/seed"
	accesssvc "dsignme/internal/service/access"
	accountsvc "dsignme/internal/service/account"
	categorysvc "dsignme/internal/service/category"
	contactsvc "dsignme/internal/service/contact"
	projectsvc "dsignme/internal/service/project"
	stepsvc "dsignme/internal/service/servicestep"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New("seed", cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	fx, err := seed.Default()
	if err != nil {
		logger.WithError(err).Fatal("load fixtures")
	}

	categories := categorysvc.New(categoryrepo.NewPostgres(pool))
	tokens := accesssvc.New(tokenrepo.NewPostgres(pool), logger)
	s := &seed.Seeder{
		Categories: categories,
		Projects:   projectsvc.New(projectrepo.NewPostgres(pool), filerepo.NewPostgres(pool), categories, logger),
		Steps:      stepsvc.New(steprepo.NewPostgres(pool), categories),
		Contacts:   contactsvc.New(contactrepo.NewPostgres(pool, logger), logger),
		Tokens:     tokens,
		Users:      accountsvc.New(userrepo.NewPostgres(pool), tokens, logger),
		Admin:      seed.Admin{Email: cfg.SeedAdminEmail, Password: cfg.SeedAdminPassword},
		Logger:     logger,
	}
	rep, err := s.Apply(ctx, fx, cfg.SeedAdminToken)
	if err != nil {
		logger.WithError(err).Fatal("seed apply")
	}

	fmt.Printf("Admin token (valid %s): %s\n", seed.TokenTTL, rep.Token)
	if rep.AdminCreated {
		fmt.Printf("Admin account created: %s\n", cfg.SeedAdminEmail)
	}
}
