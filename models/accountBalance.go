package models

import (
	"context"
	"errors"
	"sort"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// AccountBalance is the aggregated position of one account within a fiscal
// period. Net carries the category sign convention, so a healthy bank account
// and a healthy sales account are both positive.
type AccountBalance struct {
	AccountNumber int             `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Category      AccountCategory `json:"category"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Net           decimal.Decimal `json:"net"`
}

type accountSumRow struct {
	AccountNumber int
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
}

// fetchAccountSums aggregates posted lines per account for the period,
// restricted to [from, to]. Opening balances are folded in for balance-sheet
// accounts; income-statement accounts start each period at zero.
func fetchAccountSums(ctx context.Context, workspaceId string, periodId int, from int, to int) ([]accountSumRow, error) {
	db := config.GetDB()
	var rows []accountSumRow
	err := db.WithContext(ctx).Raw(`
		SELECT l.account_number AS account_number,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE e.workspace_id = ? AND e.fiscal_period_id = ?
		  AND l.account_number BETWEEN ? AND ?
		GROUP BY l.account_number`,
		workspaceId, periodId, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Balance-sheet accounts also carry the period's opening position.
	if from <= 2999 {
		var openingRows []accountSumRow
		err = db.WithContext(ctx).Raw(`
			SELECT l.account_number AS account_number,
			       COALESCE(SUM(l.debit), 0) AS total_debit,
			       COALESCE(SUM(l.credit), 0) AS total_credit
			FROM opening_balance_lines l
			JOIN opening_balances b ON b.id = l.opening_balance_id
			WHERE b.workspace_id = ? AND b.fiscal_period_id = ?
			  AND l.account_number BETWEEN ? AND ?
			GROUP BY l.account_number`,
			workspaceId, periodId, from, to).Scan(&openingRows).Error
		if err != nil {
			return nil, err
		}
		rows = mergeAccountSums(rows, openingRows)
	}
	return rows, nil
}

func mergeAccountSums(base []accountSumRow, extra []accountSumRow) []accountSumRow {
	index := make(map[int]int, len(base))
	for i, row := range base {
		index[row.AccountNumber] = i
	}
	for _, row := range extra {
		if i, ok := index[row.AccountNumber]; ok {
			base[i].TotalDebit = base[i].TotalDebit.Add(row.TotalDebit)
			base[i].TotalCredit = base[i].TotalCredit.Add(row.TotalCredit)
		} else {
			base = append(base, row)
		}
	}
	return base
}

func buildAccountBalances(rows []accountSumRow, names map[int]string) []*AccountBalance {
	balances := make([]*AccountBalance, 0, len(rows))
	for _, row := range rows {
		category, err := AccountCategoryFor(row.AccountNumber)
		if err != nil {
			continue
		}
		balances = append(balances, &AccountBalance{
			AccountNumber: row.AccountNumber,
			AccountName:   names[row.AccountNumber],
			Category:      category,
			TotalDebit:    row.TotalDebit,
			TotalCredit:   row.TotalCredit,
			Net:           SignedNet(category, row.TotalDebit, row.TotalCredit),
		})
	}
	return balances
}

// GetAccountBalance returns one account's position for the period. An account
// with no postings comes back zero-valued, not as an error.
func GetAccountBalance(ctx context.Context, periodId int, accountNumber int) (*AccountBalance, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	category, err := AccountCategoryFor(accountNumber)
	if err != nil {
		return nil, err
	}
	if _, err := GetFiscalPeriod(ctx, periodId); err != nil {
		return nil, err
	}

	rows, err := fetchAccountSums(ctx, workspaceId, periodId, accountNumber, accountNumber)
	if err != nil {
		return nil, err
	}
	names, err := GetAccountNames()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &AccountBalance{
			AccountNumber: accountNumber,
			AccountName:   names[accountNumber],
			Category:      category,
			TotalDebit:    decimal.Zero,
			TotalCredit:   decimal.Zero,
			Net:           decimal.Zero,
		}, nil
	}
	return buildAccountBalances(rows, names)[0], nil
}

// GetAccountRangeBalances returns the positions of all accounts in [from, to]
// that saw activity in the period, ascending by account number.
func GetAccountRangeBalances(ctx context.Context, periodId int, from int, to int) ([]*AccountBalance, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if from > to {
		return nil, errors.New("invalid account range")
	}
	if _, err := GetFiscalPeriod(ctx, periodId); err != nil {
		return nil, err
	}

	rows, err := fetchAccountSums(ctx, workspaceId, periodId, from, to)
	if err != nil {
		return nil, err
	}
	names, err := GetAccountNames()
	if err != nil {
		return nil, err
	}
	balances := buildAccountBalances(rows, names)
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].AccountNumber < balances[j].AccountNumber
	})
	return balances, nil
}

// AccountEntriesPage is the drill-down from a balance to the entries behind
// it.
type AccountEntriesPage struct {
	Entries []*JournalEntry `json:"entries"`
	Total   int64           `json:"total"`
	HasMore bool            `json:"hasMore"`
}

// ListEntriesForAccount pages through the entries touching an account in a
// period, newest first.
func ListEntriesForAccount(ctx context.Context, periodId int, accountNumber int, limit int, offset int) (*AccountEntriesPage, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if limit <= 0 {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	baseQuery := db.WithContext(ctx).Model(&JournalEntry{}).
		Where("workspace_id = ? AND fiscal_period_id = ?", workspaceId, periodId).
		Where("id IN (?)", db.Model(&JournalEntryLine{}).
			Select("journal_entry_id").
			Where("account_number = ?", accountNumber))

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var entries []*JournalEntry
	err := baseQuery.
		Preload("Lines", orderedLines).
		Order("entry_date DESC, verification_number DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return &AccountEntriesPage{
		Entries: entries,
		Total:   total,
		HasMore: int64(offset+len(entries)) < total,
	}, nil
}
