// main.go
package main

import (
	"context"
	"log"
	"os"

	"classroom-tools/config"
	"classroom-tools/controllers"
	"classroom-tools/ledger"
	"classroom-tools/report"
	"classroom-tools/routes"
	"classroom-tools/workbook"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("init database")
	}
	defer db.Close()

	opts := []ledger.Option{ledger.WithLogger(logger)}
	if cfg.WorkbookPath != "" {
		opts = append(opts, ledger.WithSnapshotter(workbook.NewWriter(cfg.WorkbookPath, logger)))
	}
	store := ledger.New(db, opts...)

	if cfg.WorkbookPath != "" {
		imported, err := workbook.Import(context.Background(), cfg.WorkbookPath, store)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.WorkbookPath).Msg("import workbook")
		}
		if imported {
			logger.Info().Str("path", cfg.WorkbookPath).Msg("workbook imported")
		}
	}

	var mailer report.Mailer
	if cfg.SMTP.User != "" {
		mailer = report.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	}
	handler := controllers.NewHandler(store, mailer, cfg.ReportDir, cfg.LowStockThreshold, logger)

	router := gin.New()
	router.Use(gin.Recovery(), routes.RequestLogger(logger))
	routes.RegisterRoutes(router, handler)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("run server")
	}
}
