package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/ballotbox/internal/app"
	"github.com/vncsmyrnk/ballotbox/internal/config"
)

// usage: migrations [flags] up|down
func main() {
	cfg, err := config.Load("migrations", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	direction := "up"
	if len(cfg.Args) > 0 {
		direction = cfg.Args[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	switch direction {
	case "up":
		err = app.Migrate(ctx, cfg, db)
	case "down":
		err = app.Rollback(ctx, cfg, db)
	default:
		log.Fatalf("unknown migration direction %q (want up or down)", direction)
	}
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	fmt.Printf("Migrations (%s) applied successfully to %s.\n", direction, cfg.Driver)
}
