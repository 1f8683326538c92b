package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/supacrm/internal/cli"
	"github.com/dmitrijs2005/supacrm/internal/config"
	"github.com/dmitrijs2005/supacrm/internal/logging"
	"github.com/dmitrijs2005/supacrm/internal/normalize"
	"github.com/dmitrijs2005/supacrm/internal/repositories/repomanager"
	"github.com/dmitrijs2005/supacrm/internal/services"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			log.Fatalf("error running migrations: %v", err)
		}
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
	geocoder := normalize.NewRestCountries(cfg.GeocoderURL, cfg.GeocoderTimeout)

	app := cli.NewApp(prompter,
		services.NewRecordService(rm.Records(db), geocoder, logger, prompter),
		services.NewEventService(rm.Events(db), logger, prompter),
		services.NewMarkerService(rm.Markers(db), logger, prompter),
		rm,
		logger,
	)

	if err := app.Run(ctx, cfg.OnlineCheckInterval); err != nil {
		logger.Error(ctx, "crm stopped", "err", err)
		os.Exit(1)
	}
}
