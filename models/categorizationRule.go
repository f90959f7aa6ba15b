package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// CategorizationRule suggests how an incoming bank transaction should be
// booked. Rules run in priority order; the first match wins.
type CategorizationRule struct {
	Id             int               `gorm:"primaryKey" json:"id"`
	WorkspaceId    string            `gorm:"size:36;not null;index" json:"workspaceId"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Priority       int               `gorm:"not null" json:"priority"`
	ConditionType  RuleConditionType `gorm:"size:50;not null" json:"conditionType"`
	ConditionValue string            `gorm:"size:500;not null" json:"conditionValue"`
	ActionType     RuleActionType    `gorm:"size:50;not null" json:"actionType"`
	ActionValue    string            `gorm:"size:500;not null" json:"actionValue"`
	Active         *bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type NewCategorizationRule struct {
	Name           string `json:"name" validate:"required,max=255"`
	Priority       int    `json:"priority" validate:"required"`
	ConditionType  string `json:"conditionType" validate:"required"`
	ConditionValue string `json:"conditionValue" validate:"required,max=500"`
	ActionType     string `json:"actionType" validate:"required"`
	ActionValue    string `json:"actionValue" validate:"required,max=500"`
	Active         *bool  `json:"active"`
}

func (input *NewCategorizationRule) validate(ctx context.Context, workspaceId string, exceptId int) error {
	if validationErrors := utils.ValidateInput(*input); validationErrors != nil {
		return errors.New("invalid categorization rule input")
	}
	if _, err := ParseRuleConditionType(input.ConditionType); err != nil {
		return err
	}
	if _, err := ParseRuleActionType(input.ActionType); err != nil {
		return err
	}
	if err := utils.ValidateUnique[CategorizationRule](ctx, workspaceId, "priority", input.Priority, exceptId); err != nil {
		return err
	}
	return nil
}

func CreateCategorizationRule(ctx context.Context, input NewCategorizationRule) (*CategorizationRule, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if err := input.validate(ctx, workspaceId, 0); err != nil {
		return nil, err
	}

	db := config.GetDB()
	rule := CategorizationRule{
		WorkspaceId:    workspaceId,
		Name:           input.Name,
		Priority:       input.Priority,
		ConditionType:  RuleConditionType(input.ConditionType),
		ConditionValue: input.ConditionValue,
		ActionType:     RuleActionType(input.ActionType),
		ActionValue:    input.ActionValue,
		Active:         utils.NewTrue(),
	}
	if input.Active != nil {
		rule.Active = input.Active
	}
	if err := db.WithContext(ctx).Create(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func UpdateCategorizationRule(ctx context.Context, id int, input NewCategorizationRule) (*CategorizationRule, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if err := utils.ValidateResourceId[CategorizationRule](ctx, workspaceId, id); err != nil {
		return nil, notFound("categorization rule not found")
	}
	if err := input.validate(ctx, workspaceId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	updates := map[string]interface{}{
		"name":            input.Name,
		"priority":        input.Priority,
		"condition_type":  input.ConditionType,
		"condition_value": input.ConditionValue,
		"action_type":     input.ActionType,
		"action_value":    input.ActionValue,
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	err := db.WithContext(ctx).Model(&CategorizationRule{}).
		Where("id = ? AND workspace_id = ?", id, workspaceId).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[CategorizationRule](ctx, workspaceId, id)
}

func DeleteCategorizationRule(ctx context.Context, id int) error {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return errors.New("workspaceId not found in context")
	}
	if err := utils.ValidateResourceId[CategorizationRule](ctx, workspaceId, id); err != nil {
		return notFound("categorization rule not found")
	}
	db := config.GetDB()
	return db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceId).
		Delete(&CategorizationRule{}).Error
}

// GetCategorizationRules lists the workspace's rules in evaluation order.
func GetCategorizationRules(ctx context.Context) ([]*CategorizationRule, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	db := config.GetDB()
	var rules []*CategorizationRule
	err := db.WithContext(ctx).
		Where("workspace_id = ?", workspaceId).
		Order("priority ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// RuleSuggestion is the action of the first matching rule.
type RuleSuggestion struct {
	RuleId      int            `json:"ruleId"`
	RuleName    string         `json:"ruleName"`
	ActionType  RuleActionType `json:"actionType"`
	ActionValue string         `json:"actionValue"`
}

// MatchRule evaluates the rules against a transaction's description,
// counterpart and amount. Returns nil when nothing matches.
func MatchRule(rules []*CategorizationRule, description string, counterpart string, amount decimal.Decimal) *RuleSuggestion {
	for _, rule := range rules {
		if !utils.DereferencePtr(rule.Active) {
			continue
		}
		if ruleMatches(rule, description, counterpart, amount) {
			return &RuleSuggestion{
				RuleId:      rule.Id,
				RuleName:    rule.Name,
				ActionType:  rule.ActionType,
				ActionValue: rule.ActionValue,
			}
		}
	}
	return nil
}

func ruleMatches(rule *CategorizationRule, description string, counterpart string, amount decimal.Decimal) bool {
	switch rule.ConditionType {
	case RuleConditionDescriptionContains:
		return strings.Contains(strings.ToLower(description), strings.ToLower(rule.ConditionValue))
	case RuleConditionCounterpartMatches:
		return strings.EqualFold(counterpart, rule.ConditionValue)
	case RuleConditionAmountEquals:
		value, err := utils.ParseDecimal(rule.ConditionValue)
		if err != nil {
			return false
		}
		return amount.Equal(value)
	case RuleConditionAmountGreaterThan:
		value, err := utils.ParseDecimal(rule.ConditionValue)
		if err != nil {
			return false
		}
		return amount.GreaterThan(value)
	}
	return false
}
