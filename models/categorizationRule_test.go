package models

import (
	"testing"

	"github.com/bokfora/ledger_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRuleFirstMatchWins(t *testing.T) {
	rules := []*CategorizationRule{
		{Id: 1, Name: "office rent", Priority: 10, ConditionType: RuleConditionDescriptionContains,
			ConditionValue: "hyra", ActionType: RuleActionSuggestAccount, ActionValue: "5010", Active: utils.NewTrue()},
		{Id: 2, Name: "anything large", Priority: 20, ConditionType: RuleConditionAmountGreaterThan,
			ConditionValue: "1000", ActionType: RuleActionSetEntryType, ActionValue: "SupplierInvoice", Active: utils.NewTrue()},
	}

	suggestion := MatchRule(rules, "Hyra kontor mars", "", kr(12000))
	require.NotNil(t, suggestion)
	assert.Equal(t, 1, suggestion.RuleId)
	assert.Equal(t, RuleActionSuggestAccount, suggestion.ActionType)
	assert.Equal(t, "5010", suggestion.ActionValue)
}

func TestMatchRuleConditions(t *testing.T) {
	amountEquals := &CategorizationRule{Id: 1, ConditionType: RuleConditionAmountEquals,
		ConditionValue: "199.50", ActionType: RuleActionSuggestAccount, ActionValue: "6230", Active: utils.NewTrue()}
	counterpart := &CategorizationRule{Id: 2, ConditionType: RuleConditionCounterpartMatches,
		ConditionValue: "Telia", ActionType: RuleActionSuggestAccount, ActionValue: "6212", Active: utils.NewTrue()}

	assert.NotNil(t, MatchRule([]*CategorizationRule{amountEquals}, "", "", kr(199.50)))
	assert.Nil(t, MatchRule([]*CategorizationRule{amountEquals}, "", "", kr(199.51)))

	assert.NotNil(t, MatchRule([]*CategorizationRule{counterpart}, "", "TELIA", kr(0)))
	assert.Nil(t, MatchRule([]*CategorizationRule{counterpart}, "", "Telenor", kr(0)))
}

func TestMatchRuleSkipsInactiveRules(t *testing.T) {
	rules := []*CategorizationRule{
		{Id: 1, ConditionType: RuleConditionDescriptionContains, ConditionValue: "hyra",
			ActionType: RuleActionSuggestAccount, ActionValue: "5010", Active: utils.NewFalse()},
	}
	assert.Nil(t, MatchRule(rules, "hyra kontor", "", kr(100)))
}

func TestMatchRuleNoMatch(t *testing.T) {
	rules := []*CategorizationRule{
		{Id: 1, ConditionType: RuleConditionDescriptionContains, ConditionValue: "hyra",
			ActionType: RuleActionSuggestAccount, ActionValue: "5010", Active: utils.NewTrue()},
	}
	assert.Nil(t, MatchRule(rules, "bensin", "", kr(100)))
}
