package models

import (
	"github.com/bokfora/ledger_backend/config"
)

// MigrateTable creates or updates every table the ledger uses.
func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Workspace{},
		&Account{},
		&FiscalPeriod{},
		&VerificationNumberSeries{},
		&JournalEntry{},
		&JournalEntryLine{},
		&OpeningBalance{},
		&OpeningBalanceLine{},
		&CategorizationRule{},
		&BankTransaction{},
		&NebilagaAdjustment{},
	)
}
