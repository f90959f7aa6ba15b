package reports

import (
	"context"
	"errors"

	"github.com/bokfora/ledger_backend/models"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type IncomeStatementLine struct {
	AccountNumber int             `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Balance       decimal.Decimal `json:"balance"`
}

type IncomeStatementSection struct {
	Group models.IncomeStatementGroup `json:"group"`
	Lines []IncomeStatementLine       `json:"lines"`
	Total decimal.Decimal             `json:"total"`
}

// IncomeStatementReport is the period's result statement. NetResult is
// income minus expenses; positive means profit.
type IncomeStatementReport struct {
	FiscalPeriodId int                      `json:"fiscalPeriodId"`
	Sections       []IncomeStatementSection `json:"sections"`
	TotalIncome    decimal.Decimal          `json:"totalIncome"`
	TotalExpenses  decimal.Decimal          `json:"totalExpenses"`
	NetResult      decimal.Decimal          `json:"netResult"`
}

var incomeStatementSectionOrder = []models.IncomeStatementGroup{
	models.GroupRevenue,
	models.GroupGoodsAndMaterials,
	models.GroupOtherExternalExpenses,
	models.GroupPersonnel,
	models.GroupDepreciation,
	models.GroupFinancialIncome,
	models.GroupFinancialExpenses,
}

func isIncomeGroup(group models.IncomeStatementGroup) bool {
	return group == models.GroupRevenue || group == models.GroupFinancialIncome
}

// buildIncomeStatement groups signed account balances into the report. Every
// section is present even when empty; zero-balance accounts are dropped.
func buildIncomeStatement(periodId int, balances []*models.AccountBalance) *IncomeStatementReport {
	byGroup := make(map[models.IncomeStatementGroup][]IncomeStatementLine)
	totals := make(map[models.IncomeStatementGroup]decimal.Decimal)

	for _, balance := range balances {
		group, ok := models.IncomeStatementGroupFor(balance.AccountNumber)
		if !ok {
			continue
		}
		if balance.Net.IsZero() {
			continue
		}
		byGroup[group] = append(byGroup[group], IncomeStatementLine{
			AccountNumber: balance.AccountNumber,
			AccountName:   balance.AccountName,
			Balance:       balance.Net,
		})
		totals[group] = totals[group].Add(balance.Net)
	}

	report := &IncomeStatementReport{FiscalPeriodId: periodId}
	for _, group := range incomeStatementSectionOrder {
		lines := byGroup[group]
		if lines == nil {
			lines = []IncomeStatementLine{}
		}
		total := totals[group]
		report.Sections = append(report.Sections, IncomeStatementSection{
			Group: group,
			Lines: lines,
			Total: total,
		})
		if isIncomeGroup(group) {
			report.TotalIncome = report.TotalIncome.Add(total)
		} else {
			report.TotalExpenses = report.TotalExpenses.Add(total)
		}
	}
	report.NetResult = report.TotalIncome.Sub(report.TotalExpenses)
	return report
}

// GetIncomeStatementReport builds the income statement over accounts
// 3000-8999. Opening balances never contribute; the result starts at zero
// each period.
func GetIncomeStatementReport(ctx context.Context, fiscalPeriodId int) (*IncomeStatementReport, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	key := cacheKey("IncomeStatement", workspaceId, fiscalPeriodId)
	if cached, ok := cacheGet[IncomeStatementReport](key); ok {
		return cached, nil
	}

	balances, err := models.GetAccountRangeBalances(ctx, fiscalPeriodId, 3000, 8999)
	if err != nil {
		return nil, err
	}
	report := buildIncomeStatement(fiscalPeriodId, balances)
	cacheSet(key, report)
	return report, nil
}
