package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OpeningBalance carries the balance-sheet position into a fiscal period.
// One record per period; submitting again replaces the previous lines.
type OpeningBalance struct {
	Id             int                   `gorm:"primaryKey" json:"id"`
	WorkspaceId    string                `gorm:"size:36;not null;index:idx_opening_balance_period,unique" json:"workspaceId"`
	FiscalPeriodId int                   `gorm:"not null;index:idx_opening_balance_period,unique" json:"fiscalPeriodId"`
	Lines          []*OpeningBalanceLine `gorm:"constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type OpeningBalanceLine struct {
	Id               int             `gorm:"primaryKey" json:"id"`
	OpeningBalanceId int             `gorm:"not null;index" json:"openingBalanceId"`
	AccountNumber    int             `gorm:"not null" json:"accountNumber"`
	Debit            decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"debit"`
	Credit           decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"credit"`
}

type NewOpeningBalanceLine struct {
	AccountNumber int             `json:"accountNumber" validate:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

type NewOpeningBalance struct {
	FiscalPeriodId int                     `json:"fiscalPeriodId" validate:"required"`
	Lines          []NewOpeningBalanceLine `json:"lines" validate:"required"`
}

// ValidateOpeningBalanceLines checks the line set alone: balance-sheet
// accounts only, non-negative sides, debits equal credits within tolerance.
func ValidateOpeningBalanceLines(lines []NewOpeningBalanceLine) error {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	seen := make(map[int]bool)
	for i, line := range lines {
		if !IsValidAccountNumber(line.AccountNumber) {
			return validationError(CodeInvalidAccount, fmt.Sprintf("line %d: account %d is outside the BAS chart of accounts", i+1, line.AccountNumber))
		}
		if !IsBalanceSheetAccount(line.AccountNumber) {
			return validationError(CodeInvalidAccount, fmt.Sprintf("line %d: account %d is not a balance sheet account", i+1, line.AccountNumber))
		}
		if seen[line.AccountNumber] {
			return validationError(CodeInvalidAccount, fmt.Sprintf("account %d appears more than once", line.AccountNumber))
		}
		seen[line.AccountNumber] = true
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return validationError(CodeUnbalancedEntry, fmt.Sprintf("line %d: amounts must not be negative", i+1))
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return validationError(CodeUnbalancedEntry,
			fmt.Sprintf("opening debits %s do not equal credits %s", totalDebit.String(), totalCredit.String()))
	}
	return nil
}

// SubmitOpeningBalance stores the period's opening position, replacing any
// earlier submission in one transaction.
func SubmitOpeningBalance(ctx context.Context, input NewOpeningBalance) (*OpeningBalance, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if validationErrors := utils.ValidateInput(input); validationErrors != nil {
		return nil, errors.New("invalid opening balance input")
	}
	if err := ValidateOpeningBalanceLines(input.Lines); err != nil {
		return nil, err
	}

	period, err := GetFiscalPeriod(ctx, input.FiscalPeriodId)
	if err != nil {
		return nil, err
	}
	if period.Locked {
		return nil, stateConflict(CodePeriodLocked, "fiscal period is locked")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var record OpeningBalance
	err = tx.Where("workspace_id = ? AND fiscal_period_id = ?", workspaceId, period.Id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = OpeningBalance{WorkspaceId: workspaceId, FiscalPeriodId: period.Id}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	} else if err != nil {
		tx.Rollback()
		return nil, err
	} else {
		if err := tx.Where("opening_balance_id = ?", record.Id).Delete(&OpeningBalanceLine{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	var lines []*OpeningBalanceLine
	for _, line := range input.Lines {
		lines = append(lines, &OpeningBalanceLine{
			OpeningBalanceId: record.Id,
			AccountNumber:    line.AccountNumber,
			Debit:            line.Debit,
			Credit:           line.Credit,
		})
	}
	if len(lines) > 0 {
		if err := tx.Create(&lines).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	record.Lines = lines
	return &record, nil
}

// GetOpeningBalance returns the period's opening position, or nil when none
// has been submitted.
func GetOpeningBalance(ctx context.Context, fiscalPeriodId int) (*OpeningBalance, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	db := config.GetDB()
	var record OpeningBalance
	err := db.WithContext(ctx).
		Preload("Lines").
		Where("workspace_id = ? AND fiscal_period_id = ?", workspaceId, fiscalPeriodId).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
