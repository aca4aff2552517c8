package main

import (
	"context"
	"os"

	"anhthu_server/config"
	"anhthu_server/database"
	"anhthu_server/importer"
	"anhthu_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

// The import command runs the spreadsheet reconciliation pipeline once and
// exits. Configuration comes from the environment (IMPORT_* variables); a
// missing point-of-sale export aborts before anything is written.
func main() {
	envErr := godotenv.Load()

	cfg := config.GetConfig()
	logger := config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if cfg.Import.POSFile == "" {
		logger.Error("IMPORT_POS_FILE is not set")
		os.Exit(1)
	}
	if _, err := os.Stat(cfg.Import.POSFile); err != nil {
		logger.Error("Point-of-sale export not found", gecho.Field("path", cfg.Import.POSFile))
		os.Exit(1)
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
	defer database.CloseInstance()

	db := database.GetInstance()
	store := importer.NewDatabaseStore(db, cfg.Import.BatchSize)
	translator := importer.NewTranslator(cfg.Import.Translate)

	logger.Info("Starting catalog import, this may take a while",
		gecho.Field("pos_file", cfg.Import.POSFile),
		gecho.Field("translate", cfg.Import.Translate),
	)

	report, err := importer.New(cfg.Import, store, translator, logger).Run(context.Background())
	if err != nil {
		logger.Fatal("Import failed", gecho.Field("error", err))
	}

	emailService := services.NewEmailService(logger, cfg)
	if err := emailService.SendImportReport(report); err != nil {
		logger.Warn("Failed to send import report email", gecho.Field("error", err))
	}

	if report.NeedsReview() {
		logger.Warn("Import finished with items needing review",
			gecho.Field("row_errors", report.RowErrors),
			gecho.Field("ambiguous_images", report.ImagesAmbiguous),
		)
	}
}
