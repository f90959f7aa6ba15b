package main

import (
	"log"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/models"
)

func main() {
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	if err := models.SeedAccounts(basAccounts); err != nil {
		log.Fatalf("seeding BAS accounts failed: %v", err)
	}
	log.Printf("seeded %d BAS accounts", len(basAccounts))
}
