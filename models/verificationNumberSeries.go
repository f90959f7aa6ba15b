package models

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationNumberSeries holds the per-period posting counter. Numbers are
// gapless within a (workspace, fiscal period) pair, so the increment happens
// under a row lock inside the same transaction that inserts the entry: a
// rollback returns the number.
type VerificationNumberSeries struct {
	Id             int    `gorm:"primaryKey" json:"id"`
	WorkspaceId    string `gorm:"size:36;not null;index:idx_verification_series,unique" json:"workspaceId"`
	FiscalPeriodId int    `gorm:"not null;index:idx_verification_series,unique" json:"fiscalPeriodId"`
	NextNumber     int    `gorm:"not null;default:1" json:"nextNumber"`
}

// nextVerificationNumber allocates the next number for the period. Must run
// inside the caller's transaction; SELECT ... FOR UPDATE serializes
// concurrent postings to the same period.
func nextVerificationNumber(tx *gorm.DB, workspaceId string, fiscalPeriodId int) (int, error) {
	var series VerificationNumberSeries
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("workspace_id = ? AND fiscal_period_id = ?", workspaceId, fiscalPeriodId).
		First(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		series = VerificationNumberSeries{
			WorkspaceId:    workspaceId,
			FiscalPeriodId: fiscalPeriodId,
			NextNumber:     1,
		}
		// A concurrent posting may insert the row first; the unique index
		// rejects the loser, who picks up the winner's row below.
		_ = tx.Create(&series).Error
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("workspace_id = ? AND fiscal_period_id = ?", workspaceId, fiscalPeriodId).
			First(&series).Error
		if err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	number := series.NextNumber
	err = tx.Model(&VerificationNumberSeries{}).
		Where("id = ?", series.Id).
		Update("next_number", number+1).Error
	if err != nil {
		return 0, err
	}
	return number, nil
}
