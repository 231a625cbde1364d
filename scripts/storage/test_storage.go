package main

import (
	"log"

	"github.com/stake-plus/expertdesk/src/config"
	shareddata "github.com/stake-plus/expertdesk/src/data"
)

func main() {
	config.LoadDotEnv()

	dsn, ok := shareddata.GetMySQLDSN()
	if !ok {
		log.Fatal("MYSQL_DSN is not set")
	}

	db, err := shareddata.ConnectMySQL(dsn)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	if err := shareddata.MigrateSettings(db); err != nil {
		log.Fatalf("Migrate: %v", err)
	}
	if err := shareddata.LoadSettings(db); err != nil {
		log.Fatalf("Load settings: %v", err)
	}

	cfg := config.Load()
	log.Printf("Effective configuration:")
	log.Printf("  AI provider: %s", cfg.AI.Provider)
	log.Printf("  AI model: %s", cfg.AI.Model)
	log.Printf("  Temperature: %.2f", cfg.AI.Temperature)
	log.Printf("  OpenAI key set: %t", cfg.AI.OpenAIKey != "")
	log.Printf("  Claude key set: %t", cfg.AI.ClaudeKey != "")
	log.Printf("  Web: enabled=%t port=%s", cfg.Web.Enabled, cfg.Web.Port)
	log.Printf("  Discord: enabled=%t", cfg.Discord.Enabled)
	log.Printf("  Events stream: %s (redis set: %t)", cfg.Events.Stream, cfg.Events.RedisURL != "")
}
