package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stake-plus/expertdesk/src/actions"
	_ "github.com/stake-plus/expertdesk/src/ai/providers"
	"github.com/stake-plus/expertdesk/src/config"
	shareddata "github.com/stake-plus/expertdesk/src/data"
)

func main() {
	config.LoadDotEnv()

	// Settings table is optional; without it everything comes from env.
	if dsn, ok := shareddata.GetMySQLDSN(); ok {
		db, err := shareddata.ConnectMySQL(dsn)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		if err := shareddata.MigrateSettings(db); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		if err := shareddata.LoadSettings(db); err != nil {
			log.Printf("settings: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager, err := actions.StartAll(ctx, config.Load())
	if err != nil {
		log.Fatalf("actions start: %v", err)
	}

	// Wait for termination
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	manager.Stop(ctx)
}
