package models

import (
	"context"
	"errors"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// BankTransaction is an imported bank statement row. Together with the posted
// journal it forms the stored side of the duplicate check.
type BankTransaction struct {
	Id              int             `gorm:"primaryKey" json:"id"`
	WorkspaceId     string          `gorm:"size:36;not null;index" json:"workspaceId"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transactionDate"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description     string          `gorm:"size:500" json:"description"`
	Counterpart     string          `gorm:"size:255" json:"counterpart"`
	JournalEntryId  *int            `gorm:"index" json:"journalEntryId"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CandidateBankTransaction is one row of an incoming import batch, not yet
// stored.
type CandidateBankTransaction struct {
	RowId       string          `json:"rowId"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Counterpart string          `json:"counterpart"`
}

// postedEntryRef is one line amount of a posted journal entry, the unit the
// detector compares bank rows against.
type postedEntryRef struct {
	JournalEntryId int
	EntryDate      time.Time
	Amount         decimal.Decimal
}

type MatchSource string

const (
	MatchSourceDatabase MatchSource = "database"
	MatchSourceBatch    MatchSource = "batch"
)

// DuplicateMatch points at what a candidate collides with: a posted entry
// (JournalEntryId), a stored bank row (BankTransactionId) or another row of
// the same batch (RowId).
type DuplicateMatch struct {
	Source            MatchSource `json:"source"`
	JournalEntryId    int         `json:"journalEntryId,omitempty"`
	BankTransactionId int         `json:"bankTransactionId,omitempty"`
	RowId             string      `json:"rowId,omitempty"`
}

type DuplicateCheckResult struct {
	IsDuplicate bool             `json:"isDuplicate"`
	Matches     []DuplicateMatch `json:"matches"`
}

func (c CandidateBankTransaction) valid() bool {
	return c.RowId != "" && !c.Date.IsZero()
}

func matchKey(date time.Time, amount decimal.Decimal) string {
	return utils.TruncateToDate(date).Format("2006-01-02") + "/" + amount.String()
}

// matchCandidates runs the duplicate check in memory. Two transactions
// collide when they share a date (day precision) and an amount. Posted
// entries and stored bank rows both count as database matches. Rows missing
// an id or a date cannot be matched and are left out of the result.
func matchCandidates(candidates []CandidateBankTransaction, posted []postedEntryRef, imported []*BankTransaction) map[string]*DuplicateCheckResult {
	stored := make(map[string][]DuplicateMatch)
	for _, ref := range posted {
		k := matchKey(ref.EntryDate, ref.Amount)
		stored[k] = append(stored[k], DuplicateMatch{Source: MatchSourceDatabase, JournalEntryId: ref.JournalEntryId})
	}
	for _, txn := range imported {
		k := matchKey(txn.TransactionDate, txn.Amount)
		stored[k] = append(stored[k], DuplicateMatch{Source: MatchSourceDatabase, BankTransactionId: txn.Id})
	}
	batch := make(map[string][]string)
	for _, c := range candidates {
		if !c.valid() {
			continue
		}
		k := matchKey(c.Date, c.Amount)
		batch[k] = append(batch[k], c.RowId)
	}

	results := make(map[string]*DuplicateCheckResult)
	for _, c := range candidates {
		if !c.valid() {
			continue
		}
		k := matchKey(c.Date, c.Amount)
		result := &DuplicateCheckResult{Matches: []DuplicateMatch{}}
		result.Matches = append(result.Matches, stored[k]...)
		for _, rowId := range batch[k] {
			if rowId == c.RowId {
				continue
			}
			result.Matches = append(result.Matches, DuplicateMatch{Source: MatchSourceBatch, RowId: rowId})
		}
		result.IsDuplicate = len(result.Matches) > 0
		results[c.RowId] = result
	}
	return results
}

// CheckDuplicateTransactions compares an import batch against the posted
// journal, the stored bank rows and itself. The batch is not stored.
func CheckDuplicateTransactions(ctx context.Context, candidates []CandidateBankTransaction) (map[string]*DuplicateCheckResult, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if len(candidates) == 0 {
		return map[string]*DuplicateCheckResult{}, nil
	}

	// Only the batch's date span needs to be loaded.
	var minDate, maxDate time.Time
	for _, c := range candidates {
		if !c.valid() {
			continue
		}
		day := utils.TruncateToDate(c.Date)
		if minDate.IsZero() || day.Before(minDate) {
			minDate = day
		}
		if maxDate.IsZero() || day.After(maxDate) {
			maxDate = day
		}
	}
	if minDate.IsZero() {
		return map[string]*DuplicateCheckResult{}, nil
	}

	db := config.GetDB()
	var posted []postedEntryRef
	err := db.WithContext(ctx).Raw(`
		SELECT DISTINCT e.id AS journal_entry_id, e.entry_date,
		       CASE WHEN l.debit > 0 THEN l.debit ELSE l.credit END AS amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE e.workspace_id = ? AND e.entry_date BETWEEN ? AND ?`,
		workspaceId, minDate, maxDate).Scan(&posted).Error
	if err != nil {
		return nil, err
	}

	var imported []*BankTransaction
	err = db.WithContext(ctx).
		Where("workspace_id = ? AND transaction_date BETWEEN ? AND ?", workspaceId, minDate, maxDate).
		Find(&imported).Error
	if err != nil {
		return nil, err
	}
	return matchCandidates(candidates, posted, imported), nil
}

// ImportBankTransactions stores a batch of statement rows. Duplicate checking
// is the caller's concern; an import is always accepted.
func ImportBankTransactions(ctx context.Context, candidates []CandidateBankTransaction) ([]*BankTransaction, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	var rows []*BankTransaction
	for _, c := range candidates {
		if !c.valid() {
			continue
		}
		rows = append(rows, &BankTransaction{
			WorkspaceId:     workspaceId,
			TransactionDate: utils.TruncateToDate(c.Date),
			Amount:          c.Amount,
			Description:     c.Description,
			Counterpart:     c.Counterpart,
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
