package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"dsignme/internal/config"
	"dsignme/internal/db"
	"dsignme/internal/importer"
	"dsignme/internal/logging"
	categoryrepo "dsignme/internal/repository/category"
	filerepo "dsignme/internal/repository/file"
	projectrepo "dsignme/internal/repository/project"
	categorysvc "dsignme/internal/service/category"
	projectsvc "dsignme/internal/service/project"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a projects CSV (category,title,type,imageUrl,videoUrl)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.FromEnv()
	logger := logging.New("importer", cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Fatal("open file")
	}
	defer f.Close()

	categories := categorysvc.New(categoryrepo.NewPostgres(pool))
	projects := projectsvc.New(projectrepo.NewPostgres(pool), filerepo.NewPostgres(pool), categories, logger)
	imp := importer.NewCSVImporter(f, categories, projects, logger)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.WithError(err).Fatal("import failed")
	}

	fmt.Printf("Imported %d projects (%d new categories) in %s\n", res.Projects, res.Categories, time.Since(start).Truncate(time.Millisecond))
}
