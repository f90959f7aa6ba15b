package models

import (
	"fmt"

	"github.com/bokfora/ledger_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// The BAS chart of accounts is range-driven: the leading digits of a 4-digit
// account number decide its category, its report group and its NE-bilaga
// field. All three mappings live here as data so each boundary is testable
// on its own.

type AccountRange struct {
	From     int
	To       int
	Category AccountCategory
}

var accountRanges = []AccountRange{
	{1000, 1999, AccountCategoryAsset},
	{2000, 2099, AccountCategoryEquity},
	{2100, 2999, AccountCategoryLiability},
	{3000, 3999, AccountCategoryIncome},
	{4000, 7999, AccountCategoryExpense},
	{8000, 8399, AccountCategoryIncome},
	{8400, 8999, AccountCategoryExpense},
}

// Balance sheet groups (accounts 1000-2999).
type BalanceSheetGroup string

const (
	GroupFixedAssets         BalanceSheetGroup = "FixedAssets"
	GroupCurrentAssets       BalanceSheetGroup = "CurrentAssets"
	GroupEquity              BalanceSheetGroup = "Equity"
	GroupLongTermLiabilities BalanceSheetGroup = "LongTermLiabilities"
	GroupCurrentLiabilities  BalanceSheetGroup = "CurrentLiabilities"
)

type balanceSheetGroupRange struct {
	From  int
	To    int
	Group BalanceSheetGroup
}

var balanceSheetGroupRanges = []balanceSheetGroupRange{
	{1000, 1399, GroupFixedAssets},
	{1400, 1999, GroupCurrentAssets},
	{2000, 2099, GroupEquity},
	{2100, 2399, GroupLongTermLiabilities},
	{2400, 2999, GroupCurrentLiabilities},
}

// Income statement groups (accounts 3000-8999).
type IncomeStatementGroup string

const (
	GroupRevenue               IncomeStatementGroup = "Revenue"
	GroupGoodsAndMaterials     IncomeStatementGroup = "GoodsAndMaterials"
	GroupOtherExternalExpenses IncomeStatementGroup = "OtherExternalExpenses"
	GroupPersonnel             IncomeStatementGroup = "Personnel"
	GroupDepreciation          IncomeStatementGroup = "Depreciation"
	GroupFinancialIncome       IncomeStatementGroup = "FinancialIncome"
	GroupFinancialExpenses     IncomeStatementGroup = "FinancialExpenses"
)

type incomeStatementGroupRange struct {
	From  int
	To    int
	Group IncomeStatementGroup
}

var incomeStatementGroupRanges = []incomeStatementGroupRange{
	{3000, 3999, GroupRevenue},
	{4000, 4999, GroupGoodsAndMaterials},
	{5000, 6999, GroupOtherExternalExpenses},
	{7000, 7599, GroupPersonnel},
	{7600, 7999, GroupDepreciation},
	{8000, 8399, GroupFinancialIncome},
	{8400, 8999, GroupFinancialExpenses},
}

// NE-bilaga balance fields B1-B16 (accounts 1000-2999).
type nebilagaBalanceRange struct {
	From  int
	To    int
	Field string
}

var nebilagaBalanceRanges = []nebilagaBalanceRange{
	{1000, 1099, "B1"},  // intangible fixed assets
	{1100, 1149, "B2"},  // buildings, land improvements
	{1150, 1199, "B3"},  // land, non-depreciable assets
	{1200, 1299, "B4"},  // machinery, equipment
	{1300, 1399, "B5"},  // other fixed assets
	{1400, 1499, "B6"},  // inventory
	{1500, 1599, "B7"},  // trade receivables
	{1600, 1799, "B8"},  // other receivables
	{1800, 1999, "B9"},  // cash, bank, short-term investments
	{2000, 2099, "B10"}, // equity
	{2100, 2199, "B11"}, // untaxed reserves
	{2200, 2299, "B12"}, // provisions
	{2300, 2399, "B13"}, // loan liabilities
	{2400, 2499, "B15"}, // trade payables
	{2500, 2599, "B14"}, // tax liabilities
	{2600, 2999, "B16"}, // other liabilities
}

// NE-bilaga result fields R1-R10 (accounts 3000-8999).
type nebilagaResultRange struct {
	From  int
	To    int
	Field string
}

var nebilagaResultRanges = []nebilagaResultRange{
	{3000, 3599, "R1"},  // VATable sales and work performed
	{3600, 3799, "R2"},  // VAT-free income
	{3800, 3999, "R3"},  // benefits and other income
	{4000, 4999, "R5"},  // goods, materials and services
	{5000, 6999, "R6"},  // other external expenses
	{7000, 7599, "R7"},  // personnel
	{7600, 7799, "R6"},  // other operating expenses
	{7800, 7829, "R9"},  // depreciation, buildings
	{7830, 7999, "R10"}, // depreciation, machinery and equipment
	{8000, 8399, "R4"},  // interest and other financial income
	{8400, 8999, "R8"},  // interest and other financial expenses
}

// IsValidAccountNumber reports whether the number falls inside a known
// BAS range.
func IsValidAccountNumber(number int) bool {
	_, err := AccountCategoryFor(number)
	return err == nil
}

// AccountCategoryFor resolves the category of a BAS account number.
func AccountCategoryFor(number int) (AccountCategory, error) {
	for _, r := range accountRanges {
		if number >= r.From && number <= r.To {
			return r.Category, nil
		}
	}
	return "", validationError(CodeInvalidAccount, fmt.Sprintf("account %d is outside the BAS chart of accounts", number))
}

// IsBalanceSheetAccount reports whether the account carries to the balance
// sheet (assets, equity, liabilities).
func IsBalanceSheetAccount(number int) bool {
	return number >= 1000 && number <= 2999
}

// IsIncomeStatementAccount reports whether the account carries to the income
// statement.
func IsIncomeStatementAccount(number int) bool {
	return number >= 3000 && number <= 8999
}

// BalanceSheetGroupFor resolves the report group of a balance-sheet account.
func BalanceSheetGroupFor(number int) (BalanceSheetGroup, bool) {
	for _, r := range balanceSheetGroupRanges {
		if number >= r.From && number <= r.To {
			return r.Group, true
		}
	}
	return "", false
}

// IncomeStatementGroupFor resolves the report group of an income-statement
// account.
func IncomeStatementGroupFor(number int) (IncomeStatementGroup, bool) {
	for _, r := range incomeStatementGroupRanges {
		if number >= r.From && number <= r.To {
			return r.Group, true
		}
	}
	return "", false
}

// NebilagaBalanceFieldFor maps a balance-sheet account to its declaration
// field B1-B16.
func NebilagaBalanceFieldFor(number int) (string, bool) {
	for _, r := range nebilagaBalanceRanges {
		if number >= r.From && number <= r.To {
			return r.Field, true
		}
	}
	return "", false
}

// NebilagaResultFieldFor maps an income-statement account to its declaration
// field R1-R10.
func NebilagaResultFieldFor(number int) (string, bool) {
	for _, r := range nebilagaResultRanges {
		if number >= r.From && number <= r.To {
			return r.Field, true
		}
	}
	return "", false
}

// SignedNet applies the category sign convention to raw debit/credit sums:
// debit-positive for asset/expense, credit-positive for the rest.
func SignedNet(category AccountCategory, totalDebit decimal.Decimal, totalCredit decimal.Decimal) decimal.Decimal {
	if category.IsDebitPositive() {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

// Account is BAS reference data: a number and its standard name. Seeded once
// (cmd/seed-bas) and read-mostly afterwards.
type Account struct {
	Number int    `gorm:"primaryKey;autoIncrement:false" json:"number"`
	Name   string `gorm:"size:255;not null" json:"name"`
}

// Category is derived from the number range, never stored.
func (a Account) Category() (AccountCategory, error) {
	return AccountCategoryFor(a.Number)
}

// GetAccountNames returns the number->name map of the seeded BAS accounts,
// redis-cached.
func GetAccountNames() (map[int]string, error) {
	var names map[int]string

	exists, err := config.GetRedisObject("BasAccountNames", &names)
	if err != nil {
		return nil, err
	}
	if !exists {
		db := config.GetDB()
		var accounts []*Account
		if err := db.Find(&accounts).Error; err != nil {
			return nil, err
		}
		names = make(map[int]string)
		for _, acc := range accounts {
			names[acc.Number] = acc.Name
		}
		if err := config.SetRedisObject("BasAccountNames", &names, 0); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// SeedAccounts upserts BAS reference accounts by number.
func SeedAccounts(accounts []Account) error {
	db := config.GetDB()
	for i := range accounts {
		if !IsValidAccountNumber(accounts[i].Number) {
			return validationError(CodeInvalidAccount, fmt.Sprintf("account %d is outside the BAS chart of accounts", accounts[i].Number))
		}
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&accounts).Error; err != nil {
		return err
	}
	return config.RemoveRedisKey("BasAccountNames")
}
