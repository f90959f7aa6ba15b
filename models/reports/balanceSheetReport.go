package reports

import (
	"context"
	"errors"

	"github.com/bokfora/ledger_backend/models"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type BalanceSheetLine struct {
	AccountNumber int             `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Balance       decimal.Decimal `json:"balance"`
}

type BalanceSheetSection struct {
	Group models.BalanceSheetGroup `json:"group"`
	Lines []BalanceSheetLine       `json:"lines"`
	Total decimal.Decimal          `json:"total"`
}

// BalanceSheetReport is the period's position statement. IsBalanced is data,
// not an error: an unbalanced ledger still renders, flagged.
type BalanceSheetReport struct {
	FiscalPeriodId            int                   `json:"fiscalPeriodId"`
	Sections                  []BalanceSheetSection `json:"sections"`
	TotalAssets               decimal.Decimal       `json:"totalAssets"`
	TotalEquityAndLiabilities decimal.Decimal       `json:"totalEquityAndLiabilities"`
	IsBalanced                bool                  `json:"isBalanced"`
}

var balanceSheetSectionOrder = []models.BalanceSheetGroup{
	models.GroupFixedAssets,
	models.GroupCurrentAssets,
	models.GroupEquity,
	models.GroupLongTermLiabilities,
	models.GroupCurrentLiabilities,
}

var balanceTolerance = decimal.NewFromFloat(0.01)

// buildBalanceSheet groups signed account balances into the report. Every
// section is present even when empty; zero-balance accounts are dropped.
func buildBalanceSheet(periodId int, balances []*models.AccountBalance) *BalanceSheetReport {
	byGroup := make(map[models.BalanceSheetGroup][]BalanceSheetLine)
	totals := make(map[models.BalanceSheetGroup]decimal.Decimal)

	for _, balance := range balances {
		group, ok := models.BalanceSheetGroupFor(balance.AccountNumber)
		if !ok {
			continue
		}
		if balance.Net.IsZero() {
			continue
		}
		byGroup[group] = append(byGroup[group], BalanceSheetLine{
			AccountNumber: balance.AccountNumber,
			AccountName:   balance.AccountName,
			Balance:       balance.Net,
		})
		totals[group] = totals[group].Add(balance.Net)
	}

	report := &BalanceSheetReport{FiscalPeriodId: periodId}
	for _, group := range balanceSheetSectionOrder {
		lines := byGroup[group]
		if lines == nil {
			lines = []BalanceSheetLine{}
		}
		total := totals[group]
		report.Sections = append(report.Sections, BalanceSheetSection{
			Group: group,
			Lines: lines,
			Total: total,
		})
		switch group {
		case models.GroupFixedAssets, models.GroupCurrentAssets:
			report.TotalAssets = report.TotalAssets.Add(total)
		default:
			report.TotalEquityAndLiabilities = report.TotalEquityAndLiabilities.Add(total)
		}
	}
	report.IsBalanced = report.TotalAssets.Sub(report.TotalEquityAndLiabilities).Abs().LessThanOrEqual(balanceTolerance)
	return report
}

// GetBalanceSheetReport builds the balance sheet over accounts 1000-2999,
// opening balances included.
func GetBalanceSheetReport(ctx context.Context, fiscalPeriodId int) (*BalanceSheetReport, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	key := cacheKey("BalanceSheet", workspaceId, fiscalPeriodId)
	if cached, ok := cacheGet[BalanceSheetReport](key); ok {
		return cached, nil
	}

	balances, err := models.GetAccountRangeBalances(ctx, fiscalPeriodId, 1000, 2999)
	if err != nil {
		return nil, err
	}
	report := buildBalanceSheet(fiscalPeriodId, balances)
	cacheSet(key, report)
	return report, nil
}
