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

// balanceTolerance absorbs rounding in user-supplied amounts. Anything wider
// than one öre is a real imbalance.
var balanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is a posted verification. Immutable in a locked period; inside
// an open period it can be corrected or removed.
type JournalEntry struct {
	Id                 int                 `gorm:"primaryKey" json:"id"`
	WorkspaceId        string              `gorm:"size:36;not null;index:idx_journal_entry_number,unique" json:"workspaceId"`
	FiscalPeriodId     int                 `gorm:"not null;index:idx_journal_entry_number,unique" json:"fiscalPeriodId"`
	VerificationNumber int                 `gorm:"not null;index:idx_journal_entry_number,unique" json:"verificationNumber"`
	EntryDate          time.Time           `gorm:"not null;index" json:"entryDate"`
	Description        string              `gorm:"size:500;not null" json:"description"`
	EntryType          JournalEntryType    `gorm:"size:50;not null" json:"entryType"`
	Source             JournalEntrySource  `gorm:"size:50;not null;default:Manual" json:"source"`
	Lines              []*JournalEntryLine `gorm:"constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

type JournalEntryLine struct {
	Id             int             `gorm:"primaryKey" json:"id"`
	JournalEntryId int             `gorm:"not null;index" json:"journalEntryId"`
	AccountNumber  int             `gorm:"not null;index" json:"accountNumber"`
	Debit          decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"debit"`
	Credit         decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"credit"`
	VatCode        *string         `gorm:"size:20" json:"vatCode"`
	Description    string          `gorm:"size:500" json:"description"`
	SortOrder      int             `gorm:"not null;default:0" json:"sortOrder"`
}

type NewJournalEntryLine struct {
	AccountNumber int             `json:"accountNumber" validate:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	VatCode       *string         `json:"vatCode" validate:"omitempty,max=20"`
	Description   string          `json:"description" validate:"max=500"`
}

// buildEntryLines carries the input order into SortOrder; a verification's
// lines always read back in the order they were entered.
func buildEntryLines(lines []NewJournalEntryLine) []*JournalEntryLine {
	built := make([]*JournalEntryLine, 0, len(lines))
	for i, line := range lines {
		built = append(built, &JournalEntryLine{
			AccountNumber: line.AccountNumber,
			Debit:         line.Debit,
			Credit:        line.Credit,
			VatCode:       line.VatCode,
			Description:   line.Description,
			SortOrder:     i,
		})
	}
	return built
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

type NewJournalEntry struct {
	EntryDate   time.Time             `json:"entryDate" validate:"required"`
	Description string                `json:"description" validate:"required,max=500"`
	EntryType   string                `json:"entryType" validate:"required"`
	Source      string                `json:"source"`
	Lines       []NewJournalEntryLine `json:"lines"`
}

// ValidateJournalLines checks the line set alone: enough lines, one positive
// side per line, known accounts, debits equal credits within tolerance.
func ValidateJournalLines(lines []NewJournalEntryLine) error {
	if len(lines) < 2 {
		return validationError(CodeInsufficientLines, "a journal entry needs at least two lines")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		if !IsValidAccountNumber(line.AccountNumber) {
			return validationError(CodeInvalidAccount, fmt.Sprintf("line %d: account %d is outside the BAS chart of accounts", i+1, line.AccountNumber))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return validationError(CodeUnbalancedEntry, fmt.Sprintf("line %d: amounts must not be negative", i+1))
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return validationError(CodeUnbalancedEntry, fmt.Sprintf("line %d: exactly one of debit or credit must be positive", i+1))
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return validationError(CodeUnbalancedEntry,
			fmt.Sprintf("debits %s do not equal credits %s", totalDebit.String(), totalCredit.String()))
	}
	return nil
}

func (input *NewJournalEntry) validate(ctx context.Context, workspaceId string) (*FiscalPeriod, error) {
	if validationErrors := utils.ValidateInput(*input); validationErrors != nil {
		return nil, errors.New("invalid journal entry input")
	}
	if _, err := ParseJournalEntryType(input.EntryType); err != nil {
		return nil, err
	}
	if input.Source == "" {
		input.Source = string(JournalEntrySourceManual)
	}
	if _, err := ParseJournalEntrySource(input.Source); err != nil {
		return nil, err
	}
	if err := ValidateJournalLines(input.Lines); err != nil {
		return nil, err
	}

	period, err := findPeriodForDate(ctx, workspaceId, input.EntryDate)
	if err != nil {
		return nil, err
	}
	if period.Locked {
		return nil, stateConflict(CodePeriodLocked, "fiscal period is locked")
	}
	return period, nil
}

// CreateJournalEntry validates and posts atomically. The verification number
// is drawn inside the insert transaction so a failed posting leaves no gap.
func CreateJournalEntry(ctx context.Context, input NewJournalEntry) (*JournalEntry, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	period, err := input.validate(ctx, workspaceId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Re-check the lock flag under a row lock; LockFiscalPeriod may have won
	// the race since validation, and a plain read would see a stale snapshot.
	if err := lockPeriodRow(tx, workspaceId, period.Id); err != nil {
		tx.Rollback()
		return nil, err
	}

	number, err := nextVerificationNumber(tx, workspaceId, period.Id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	entry := JournalEntry{
		WorkspaceId:        workspaceId,
		FiscalPeriodId:     period.Id,
		VerificationNumber: number,
		EntryDate:          utils.TruncateToDate(input.EntryDate),
		Description:        input.Description,
		EntryType:          JournalEntryType(input.EntryType),
		Source:             JournalEntrySource(input.Source),
		Lines:              buildEntryLines(input.Lines),
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func GetJournalEntry(ctx context.Context, id int) (*JournalEntry, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	db := config.GetDB()
	var entry JournalEntry
	err := db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("workspace_id = ?", workspaceId).
		First(&entry, id).Error
	if err != nil {
		return nil, notFound("journal entry not found")
	}
	return &entry, nil
}

// UpdateJournalEntry replaces the header fields and lines of an entry in an
// open period. The verification number never changes; correcting an entry is
// not a new posting.
func UpdateJournalEntry(ctx context.Context, id int, input NewJournalEntry) (*JournalEntry, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	entry, err := GetJournalEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	period, err := input.validate(ctx, workspaceId)
	if err != nil {
		return nil, err
	}
	if period.Id != entry.FiscalPeriodId {
		return nil, validationError(CodePeriodMismatch, "the new entry date falls outside the entry's fiscal period")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := lockPeriodRow(tx, workspaceId, entry.FiscalPeriodId); err != nil {
		tx.Rollback()
		return nil, err
	}

	err = tx.Model(&JournalEntry{}).
		Where("id = ? AND workspace_id = ?", id, workspaceId).
		Updates(map[string]interface{}{
			"entry_date":  utils.TruncateToDate(input.EntryDate),
			"description": input.Description,
			"entry_type":  input.EntryType,
			"source":      input.Source,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("journal_entry_id = ?", id).Delete(&JournalEntryLine{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	lines := buildEntryLines(input.Lines)
	for _, line := range lines {
		line.JournalEntryId = id
	}
	if err := tx.Create(&lines).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetJournalEntry(ctx, id)
}

// DeleteJournalEntry removes an entry from an open period. The verification
// number is not reissued; a gap from deletion is visible and auditable.
func DeleteJournalEntry(ctx context.Context, id int) error {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return errors.New("workspaceId not found in context")
	}

	entry, err := GetJournalEntry(ctx, id)
	if err != nil {
		return err
	}
	period, err := GetFiscalPeriod(ctx, entry.FiscalPeriodId)
	if err != nil {
		return err
	}
	if period.Locked {
		return stateConflict(CodePeriodLocked, "fiscal period is locked")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := lockPeriodRow(tx, workspaceId, entry.FiscalPeriodId); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("journal_entry_id = ?", id).Delete(&JournalEntryLine{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("id = ? AND workspace_id = ?", id, workspaceId).Delete(&JournalEntry{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

type JournalEntrySearch struct {
	Description *string    `json:"description"`
	EntryType   *string    `json:"entryType"`
	DateFrom    *time.Time `json:"dateFrom"`
	DateTo      *time.Time `json:"dateTo"`
	PeriodId    *int       `json:"periodId"`
	Offset      int        `json:"offset"`
}

type JournalEntryPage struct {
	Entries     []*JournalEntry `json:"entries"`
	HasNextPage bool            `json:"hasNextPage"`
}

// SearchJournalEntries pages through matching entries, newest first. One row
// past the limit is fetched to learn whether another page exists.
func SearchJournalEntries(ctx context.Context, search JournalEntrySearch) (*JournalEntryPage, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("workspace_id = ?", workspaceId)

	if search.Description != nil && *search.Description != "" {
		dbCtx = dbCtx.Where("description LIKE ?", "%"+*search.Description+"%")
	}
	if search.EntryType != nil && *search.EntryType != "" {
		dbCtx = dbCtx.Where("entry_type = ?", *search.EntryType)
	}
	if search.DateFrom != nil {
		dbCtx = dbCtx.Where("entry_date >= ?", utils.TruncateToDate(*search.DateFrom))
	}
	if search.DateTo != nil {
		dbCtx = dbCtx.Where("entry_date <= ?", utils.TruncateToDate(*search.DateTo))
	}
	if search.PeriodId != nil {
		dbCtx = dbCtx.Where("fiscal_period_id = ?", *search.PeriodId)
	}

	var entries []*JournalEntry
	err := dbCtx.Order("entry_date DESC, verification_number DESC").
		Offset(search.Offset).
		Limit(config.SearchLimit + 1).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	hasNextPage := false
	if len(entries) > config.SearchLimit {
		entries = entries[:config.SearchLimit]
		hasNextPage = true
	}
	return &JournalEntryPage{Entries: entries, HasNextPage: hasNextPage}, nil
}
