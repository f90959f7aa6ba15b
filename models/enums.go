package models

import "errors"

type AccountCategory string

const (
	AccountCategoryAsset     AccountCategory = "Asset"
	AccountCategoryLiability AccountCategory = "Liability"
	AccountCategoryEquity    AccountCategory = "Equity"
	AccountCategoryIncome    AccountCategory = "Income"
	AccountCategoryExpense   AccountCategory = "Expense"
)

// IsDebitPositive reports the sign convention for the category:
// asset/expense balances grow with debits, the rest with credits.
func (c AccountCategory) IsDebitPositive() bool {
	return c == AccountCategoryAsset || c == AccountCategoryExpense
}

type JournalEntryType string

const (
	JournalEntryTypeReceipt         JournalEntryType = "Receipt"
	JournalEntryTypeIncome          JournalEntryType = "Income"
	JournalEntryTypeSupplierInvoice JournalEntryType = "SupplierInvoice"
	JournalEntryTypePayroll         JournalEntryType = "Payroll"
	JournalEntryTypeExpense         JournalEntryType = "Expense"
	JournalEntryTypeOther           JournalEntryType = "Other"
)

func ParseJournalEntryType(s string) (JournalEntryType, error) {
	switch JournalEntryType(s) {
	case JournalEntryTypeReceipt, JournalEntryTypeIncome, JournalEntryTypeSupplierInvoice,
		JournalEntryTypePayroll, JournalEntryTypeExpense, JournalEntryTypeOther:
		return JournalEntryType(s), nil
	}
	return "", errors.New("invalid journal entry type")
}

type JournalEntrySource string

const (
	JournalEntrySourceManual     JournalEntrySource = "Manual"
	JournalEntrySourceAiAssisted JournalEntrySource = "AiAssisted"
	JournalEntrySourcePayroll    JournalEntrySource = "Payroll"
	JournalEntrySourceBankImport JournalEntrySource = "BankImport"
)

func ParseJournalEntrySource(s string) (JournalEntrySource, error) {
	switch JournalEntrySource(s) {
	case JournalEntrySourceManual, JournalEntrySourceAiAssisted,
		JournalEntrySourcePayroll, JournalEntrySourceBankImport:
		return JournalEntrySource(s), nil
	}
	return "", errors.New("invalid journal entry source")
}

type YearType string

const (
	YearTypeCalendar YearType = "Calendar"
	YearTypeBroken   YearType = "Broken"
)

type BusinessType string

const (
	BusinessTypeSoleProprietorship BusinessType = "SoleProprietorship"
	BusinessTypeLimitedCompany     BusinessType = "LimitedCompany"
)

type RuleConditionType string

const (
	RuleConditionDescriptionContains RuleConditionType = "DescriptionContains"
	RuleConditionAmountEquals        RuleConditionType = "AmountEquals"
	RuleConditionAmountGreaterThan   RuleConditionType = "AmountGreaterThan"
	RuleConditionCounterpartMatches  RuleConditionType = "CounterpartMatches"
)

func ParseRuleConditionType(s string) (RuleConditionType, error) {
	switch RuleConditionType(s) {
	case RuleConditionDescriptionContains, RuleConditionAmountEquals,
		RuleConditionAmountGreaterThan, RuleConditionCounterpartMatches:
		return RuleConditionType(s), nil
	}
	return "", errors.New("invalid rule condition type")
}

type RuleActionType string

const (
	RuleActionSuggestAccount RuleActionType = "SuggestAccount"
	RuleActionSetEntryType   RuleActionType = "SetEntryType"
	RuleActionSetVatCode     RuleActionType = "SetVatCode"
)

func ParseRuleActionType(s string) (RuleActionType, error) {
	switch RuleActionType(s) {
	case RuleActionSuggestAccount, RuleActionSetEntryType, RuleActionSetVatCode:
		return RuleActionType(s), nil
	}
	return "", errors.New("invalid rule action type")
}
