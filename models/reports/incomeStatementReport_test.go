package reports

import (
	"testing"

	"github.com/bokfora/ledger_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isSectionByGroup(t *testing.T, report *IncomeStatementReport, group models.IncomeStatementGroup) IncomeStatementSection {
	t.Helper()
	for _, section := range report.Sections {
		if section.Group == group {
			return section
		}
	}
	t.Fatalf("section %s not found", group)
	return IncomeStatementSection{}
}

func TestBuildIncomeStatementProfit(t *testing.T) {
	report := buildIncomeStatement(1, []*models.AccountBalance{
		bal(3010, 100000), // revenue
		bal(4010, 30000),  // goods
		bal(5010, 12000),  // external expenses
		bal(7010, 20000),  // personnel
		bal(8310, 500),    // financial income
		bal(8410, 1500),   // financial expenses
	})

	require.Len(t, report.Sections, 7)
	assert.True(t, isSectionByGroup(t, report, models.GroupRevenue).Total.Equal(decimal.NewFromInt(100000)))
	assert.True(t, isSectionByGroup(t, report, models.GroupPersonnel).Total.Equal(decimal.NewFromInt(20000)))

	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(100500)))
	assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(63500)))
	assert.True(t, report.NetResult.Equal(decimal.NewFromInt(37000)))
}

func TestBuildIncomeStatementLoss(t *testing.T) {
	report := buildIncomeStatement(1, []*models.AccountBalance{
		bal(3010, 10000),
		bal(5010, 25000),
	})
	assert.True(t, report.NetResult.Equal(decimal.NewFromInt(-15000)))
}

func TestBuildIncomeStatementEmptyPeriod(t *testing.T) {
	report := buildIncomeStatement(1, nil)

	require.Len(t, report.Sections, 7)
	for _, section := range report.Sections {
		assert.Empty(t, section.Lines)
		assert.True(t, section.Total.IsZero())
	}
	assert.True(t, report.NetResult.IsZero())
}

func TestBuildIncomeStatementIgnoresBalanceSheetAccounts(t *testing.T) {
	report := buildIncomeStatement(1, []*models.AccountBalance{
		bal(1930, 5000),
		bal(3010, 100),
	})
	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.TotalExpenses.IsZero())
}
