package main

import (
	"log"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/models"
)

func main() {
	config.ConnectDatabaseWithRetry()
	if err := models.MigrateTable(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migration complete")
}
