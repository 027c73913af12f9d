package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/orgball2608/insta-media-telegram-bot/internal/migrations"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
)

const usage = "Usage: migrate [up|down|status|reset]"

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	command := os.Args[1]
	run, ok := map[string]func(context.Context, *sql.DB) error{
		"up":     migrations.Up,
		"down":   migrations.Down,
		"status": migrations.Status,
		"reset":  migrations.Reset,
	}[command]
	if !ok {
		log.Fatalf("Unknown command: %s\n%s", command, usage)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := migrations.Open(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Running %s on embedded migrations (%s)\n", command, migrations.Dir)
	if err := run(context.Background(), db); err != nil {
		log.Fatalf("Migration %s failed: %v", command, err)
	}
	fmt.Printf("Migration %s completed\n", command)
}
