package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"gorm.io/gorm/clause"
)

// NebilagaAdjustment is a manually entered declaration field. The ledger
// cannot derive these (tax-only depreciation, private use, accruals), so the
// user supplies them per period. Amounts are whole-öre integers; the
// declaration works in whole kronor but the adjustments keep öre precision
// until the final rounding.
type NebilagaAdjustment struct {
	Id             int       `gorm:"primaryKey" json:"id"`
	WorkspaceId    string    `gorm:"size:36;not null;index:idx_nebilaga_adjustment,unique" json:"workspaceId"`
	FiscalPeriodId int       `gorm:"not null;index:idx_nebilaga_adjustment,unique" json:"fiscalPeriodId"`
	Field          string    `gorm:"size:10;not null;index:idx_nebilaga_adjustment,unique" json:"field"`
	AmountOre      int64     `gorm:"not null" json:"amountOre"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// manualNebilagaFields lists the declaration fields the user may set by hand.
// Everything else is computed from the ledger or from these.
var manualNebilagaFields = map[string]bool{
	"R13": true, "R14": true, "R15": true, "R16": true,
	"R18": true, "R19": true, "R20": true, "R21": true, "R22": true,
	"R23": true, "R24": true, "R25": true, "R26": true, "R27": true,
	"R28": true, "R29": true, "R30": true, "R31": true, "R32": true,
	"R34": true,
	"R36": true, "R37": true, "R38": true, "R39": true, "R40": true,
	"R41": true, "R42": true,
	"R44": true, "R45": true,
}

// IsManualNebilagaField reports whether the field accepts manual input.
func IsManualNebilagaField(field string) bool {
	return manualNebilagaFields[field]
}

// UpsertNebilagaAdjustment sets one manual field for the period, replacing
// any earlier value.
func UpsertNebilagaAdjustment(ctx context.Context, fiscalPeriodId int, field string, amountOre int64) (*NebilagaAdjustment, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if !IsManualNebilagaField(field) {
		return nil, validationError("", fmt.Sprintf("field %s is not a manual declaration field", field))
	}
	if _, err := GetFiscalPeriod(ctx, fiscalPeriodId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	adjustment := NebilagaAdjustment{
		WorkspaceId:    workspaceId,
		FiscalPeriodId: fiscalPeriodId,
		Field:          field,
		AmountOre:      amountOre,
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "fiscal_period_id"}, {Name: "field"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount_ore", "updated_at"}),
	}).Create(&adjustment).Error
	if err != nil {
		return nil, err
	}
	return &adjustment, nil
}

// DeleteNebilagaAdjustment clears one manual field for the period.
func DeleteNebilagaAdjustment(ctx context.Context, fiscalPeriodId int, field string) error {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return errors.New("workspaceId not found in context")
	}
	db := config.GetDB()
	return db.WithContext(ctx).
		Where("workspace_id = ? AND fiscal_period_id = ? AND field = ?", workspaceId, fiscalPeriodId, field).
		Delete(&NebilagaAdjustment{}).Error
}

// GetNebilagaAdjustments returns the period's manual fields as a field->öre
// map. Unset fields are simply absent.
func GetNebilagaAdjustments(ctx context.Context, fiscalPeriodId int) (map[string]int64, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	db := config.GetDB()
	var adjustments []*NebilagaAdjustment
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND fiscal_period_id = ?", workspaceId, fiscalPeriodId).
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}

	fields := make(map[string]int64, len(adjustments))
	for _, a := range adjustments {
		fields[a.Field] = a.AmountOre
	}
	return fields, nil
}
