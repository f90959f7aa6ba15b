package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCategoryFor(t *testing.T) {
	cases := []struct {
		number   int
		category AccountCategory
	}{
		{1000, AccountCategoryAsset},
		{1999, AccountCategoryAsset},
		{2000, AccountCategoryEquity},
		{2099, AccountCategoryEquity},
		{2100, AccountCategoryLiability},
		{2999, AccountCategoryLiability},
		{3000, AccountCategoryIncome},
		{3999, AccountCategoryIncome},
		{4000, AccountCategoryExpense},
		{7999, AccountCategoryExpense},
		{8000, AccountCategoryIncome},
		{8399, AccountCategoryIncome},
		{8400, AccountCategoryExpense},
		{8999, AccountCategoryExpense},
	}
	for _, c := range cases {
		category, err := AccountCategoryFor(c.number)
		require.NoError(t, err, "account %d", c.number)
		assert.Equal(t, c.category, category, "account %d", c.number)
	}
}

func TestAccountCategoryForOutsideChart(t *testing.T) {
	for _, number := range []int{0, 999, 9000, 10000, -1500} {
		_, err := AccountCategoryFor(number)
		require.Error(t, err, "account %d", number)
		assert.Equal(t, CodeInvalidAccount, ErrorCode(err))
		assert.False(t, IsValidAccountNumber(number))
	}
}

func TestBalanceSheetGroupBoundaries(t *testing.T) {
	cases := []struct {
		number int
		group  BalanceSheetGroup
	}{
		{1000, GroupFixedAssets},
		{1399, GroupFixedAssets},
		{1400, GroupCurrentAssets},
		{1999, GroupCurrentAssets},
		{2000, GroupEquity},
		{2099, GroupEquity},
		{2100, GroupLongTermLiabilities},
		{2399, GroupLongTermLiabilities},
		{2400, GroupCurrentLiabilities},
		{2999, GroupCurrentLiabilities},
	}
	for _, c := range cases {
		group, ok := BalanceSheetGroupFor(c.number)
		require.True(t, ok, "account %d", c.number)
		assert.Equal(t, c.group, group, "account %d", c.number)
	}

	_, ok := BalanceSheetGroupFor(3000)
	assert.False(t, ok)
}

func TestIncomeStatementGroupBoundaries(t *testing.T) {
	cases := []struct {
		number int
		group  IncomeStatementGroup
	}{
		{3000, GroupRevenue},
		{3999, GroupRevenue},
		{4000, GroupGoodsAndMaterials},
		{4999, GroupGoodsAndMaterials},
		{5000, GroupOtherExternalExpenses},
		{6999, GroupOtherExternalExpenses},
		{7000, GroupPersonnel},
		{7599, GroupPersonnel},
		{7600, GroupDepreciation},
		{7999, GroupDepreciation},
		{8000, GroupFinancialIncome},
		{8399, GroupFinancialIncome},
		{8400, GroupFinancialExpenses},
		{8999, GroupFinancialExpenses},
	}
	for _, c := range cases {
		group, ok := IncomeStatementGroupFor(c.number)
		require.True(t, ok, "account %d", c.number)
		assert.Equal(t, c.group, group, "account %d", c.number)
	}

	_, ok := IncomeStatementGroupFor(2999)
	assert.False(t, ok)
}

func TestNebilagaBalanceFieldBoundaries(t *testing.T) {
	cases := []struct {
		number int
		field  string
	}{
		{1000, "B1"},
		{1099, "B1"},
		{1100, "B2"},
		{1149, "B2"},
		{1150, "B3"},
		{1199, "B3"},
		{1200, "B4"},
		{1300, "B5"},
		{1400, "B6"},
		{1510, "B7"},
		{1630, "B8"},
		{1930, "B9"},
		{2010, "B10"},
		{2110, "B11"},
		{2220, "B12"},
		{2350, "B13"},
		{2440, "B15"},
		{2510, "B14"},
		{2610, "B16"},
		{2999, "B16"},
	}
	for _, c := range cases {
		field, ok := NebilagaBalanceFieldFor(c.number)
		require.True(t, ok, "account %d", c.number)
		assert.Equal(t, c.field, field, "account %d", c.number)
	}

	_, ok := NebilagaBalanceFieldFor(3010)
	assert.False(t, ok)
}

func TestNebilagaResultFieldBoundaries(t *testing.T) {
	cases := []struct {
		number int
		field  string
	}{
		{3010, "R1"},
		{3599, "R1"},
		{3610, "R2"},
		{3799, "R2"},
		{3800, "R3"},
		{3999, "R3"},
		{4010, "R5"},
		{5010, "R6"},
		{6999, "R6"},
		{7010, "R7"},
		{7599, "R7"},
		{7600, "R6"},
		{7799, "R6"},
		{7811, "R9"},
		{7829, "R9"},
		{7832, "R10"},
		{7999, "R10"},
		{8310, "R4"},
		{8410, "R8"},
	}
	for _, c := range cases {
		field, ok := NebilagaResultFieldFor(c.number)
		require.True(t, ok, "account %d", c.number)
		assert.Equal(t, c.field, field, "account %d", c.number)
	}

	_, ok := NebilagaResultFieldFor(1930)
	assert.False(t, ok)
}

func TestSignedNet(t *testing.T) {
	debit := decimal.NewFromInt(1000)
	credit := decimal.NewFromInt(400)

	// Asset and expense balances grow with debits.
	assert.True(t, SignedNet(AccountCategoryAsset, debit, credit).Equal(decimal.NewFromInt(600)))
	assert.True(t, SignedNet(AccountCategoryExpense, debit, credit).Equal(decimal.NewFromInt(600)))

	// Income, equity and liability balances grow with credits.
	assert.True(t, SignedNet(AccountCategoryIncome, debit, credit).Equal(decimal.NewFromInt(-600)))
	assert.True(t, SignedNet(AccountCategoryEquity, debit, credit).Equal(decimal.NewFromInt(-600)))
	assert.True(t, SignedNet(AccountCategoryLiability, debit, credit).Equal(decimal.NewFromInt(-600)))
}
