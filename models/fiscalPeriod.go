package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FiscalPeriod is an accounting year. Periods never overlap within a
// workspace, and locking is one-way: a locked period accepts no further
// postings, ever.
type FiscalPeriod struct {
	Id          int        `gorm:"primaryKey" json:"id"`
	WorkspaceId string     `gorm:"size:36;not null;index:idx_fiscal_period_slug,unique" json:"workspaceId"`
	Label       string     `gorm:"size:100;not null" json:"label"`
	Slug        string     `gorm:"size:100;not null;index:idx_fiscal_period_slug,unique" json:"slug"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     time.Time  `gorm:"not null" json:"endDate"`
	YearType    YearType   `gorm:"size:20;not null;default:Calendar" json:"yearType"`
	Locked      bool       `gorm:"not null;default:false" json:"locked"`
	LockedAt    *time.Time `json:"lockedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type NewFiscalPeriod struct {
	Label     string    `json:"label" validate:"required,max=100"`
	Slug      string    `json:"slug" validate:"required,max=100"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// PeriodsOverlap reports whether two closed date intervals intersect.
func PeriodsOverlap(startA, endA, startB, endB time.Time) bool {
	return !startA.After(endB) && !startB.After(endA)
}

// ContainsDate reports whether d falls inside the period, inclusive on both
// ends, at day precision.
func (p *FiscalPeriod) ContainsDate(d time.Time) bool {
	day := utils.TruncateToDate(d)
	return !day.Before(utils.TruncateToDate(p.StartDate)) && !day.After(utils.TruncateToDate(p.EndDate))
}

func (input *NewFiscalPeriod) validate(ctx context.Context, workspaceId string) error {
	if validationErrors := utils.ValidateInput(*input); validationErrors != nil {
		return errors.New("invalid fiscal period input")
	}

	input.StartDate = utils.TruncateToDate(input.StartDate)
	input.EndDate = utils.TruncateToDate(input.EndDate)
	if input.EndDate.Before(input.StartDate) {
		return validationError("", "period end date is before start date")
	}

	if err := utils.ValidateUnique[FiscalPeriod](ctx, workspaceId, "slug", input.Slug, 0); err != nil {
		return stateConflict(CodeDuplicateSlug, fmt.Sprintf("a fiscal period with slug %q already exists", input.Slug))
	}

	count, err := utils.ResourceCountWhere[FiscalPeriod](ctx, workspaceId,
		"start_date <= ? AND end_date >= ?", input.EndDate, input.StartDate)
	if err != nil {
		return err
	}
	if count > 0 {
		return stateConflict(CodeOverlappingPeriod, "the period overlaps an existing fiscal period")
	}
	return nil
}

func CreateFiscalPeriod(ctx context.Context, input NewFiscalPeriod) (*FiscalPeriod, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	if err := input.validate(ctx, workspaceId); err != nil {
		return nil, err
	}

	yearType := YearTypeBroken
	if input.StartDate.Month() == time.January && input.StartDate.Day() == 1 &&
		input.EndDate.Month() == time.December && input.EndDate.Day() == 31 &&
		input.StartDate.Year() == input.EndDate.Year() {
		yearType = YearTypeCalendar
	}

	db := config.GetDB()
	period := FiscalPeriod{
		WorkspaceId: workspaceId,
		Label:       input.Label,
		Slug:        input.Slug,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		YearType:    yearType,
	}
	if err := db.WithContext(ctx).Create(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func GetFiscalPeriod(ctx context.Context, id int) (*FiscalPeriod, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}
	period, err := utils.FetchModel[FiscalPeriod](ctx, workspaceId, id)
	if err != nil {
		return nil, notFound("fiscal period not found")
	}
	return period, nil
}

func GetFiscalPeriodBySlug(ctx context.Context, slug string) (*FiscalPeriod, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	db := config.GetDB()
	var period FiscalPeriod
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND slug = ?", workspaceId, slug).
		First(&period).Error
	if err != nil {
		return nil, notFound("fiscal period not found")
	}
	return &period, nil
}

// GetFiscalPeriods lists the workspace's periods, newest first.
func GetFiscalPeriods(ctx context.Context) ([]*FiscalPeriod, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	db := config.GetDB()
	var periods []*FiscalPeriod
	err := db.WithContext(ctx).
		Where("workspace_id = ?", workspaceId).
		Order("start_date DESC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

// findPeriodForDate resolves the open question of which period an entry date
// belongs to: exactly the period whose [start, end] contains it.
func findPeriodForDate(ctx context.Context, workspaceId string, date time.Time) (*FiscalPeriod, error) {
	db := config.GetDB()
	day := utils.TruncateToDate(date)
	var period FiscalPeriod
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND start_date <= ? AND end_date >= ?", workspaceId, day, day).
		First(&period).Error
	if err != nil {
		return nil, validationError(CodePeriodMismatch, "no fiscal period covers the entry date")
	}
	return &period, nil
}

// lockPeriodRow reads the period row under FOR UPDATE inside the caller's
// transaction. The read conflicts with LockFiscalPeriod's UPDATE, so a lock
// committing mid-posting makes the posting see locked=true instead of a
// stale snapshot.
func lockPeriodRow(tx *gorm.DB, workspaceId string, periodId int) error {
	var period FiscalPeriod
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND workspace_id = ?", periodId, workspaceId).
		First(&period).Error
	if err != nil {
		return err
	}
	if period.Locked {
		return stateConflict(CodePeriodLocked, "fiscal period is locked")
	}
	return nil
}

// LockResult reports the outcome of locking a period. Locking never requires
// balance; an imbalance comes back as a warning, not an error.
type LockResult struct {
	Period           *FiscalPeriod    `json:"period"`
	ImbalanceWarning *decimal.Decimal `json:"imbalanceWarning,omitempty"`
}

// LockFiscalPeriod closes the period for further postings. The distributed
// lock keeps two app instances from racing an in-flight posting against the
// lock flag.
func LockFiscalPeriod(ctx context.Context, id int) (*LockResult, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	release, err := utils.WorkspaceLock(ctx, workspaceId, "FiscalPeriodLock", "FiscalPeriod", "LockFiscalPeriod")
	if err != nil {
		return nil, err
	}
	defer release()

	period, err := GetFiscalPeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	if period.Locked {
		return nil, stateConflict(CodePeriodLocked, "fiscal period is already locked")
	}

	db := config.GetDB()
	now := time.Now()
	err = db.WithContext(ctx).Model(&FiscalPeriod{}).
		Where("id = ? AND workspace_id = ?", id, workspaceId).
		Updates(map[string]interface{}{"locked": true, "locked_at": now}).Error
	if err != nil {
		return nil, err
	}
	period.Locked = true
	period.LockedAt = &now

	result := &LockResult{Period: period}
	imbalance, err := periodImbalance(ctx, workspaceId, id)
	if err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "FiscalPeriod", "LockFiscalPeriod", "failed to compute period imbalance", id, err)
		return result, nil
	}
	if !imbalance.IsZero() {
		result.ImbalanceWarning = &imbalance
	}
	return result, nil
}

// periodImbalance returns sum(debit) - sum(credit) over all entries posted to
// the period. Zero for a healthy ledger.
func periodImbalance(ctx context.Context, workspaceId string, periodId int) (decimal.Decimal, error) {
	db := config.GetDB()
	var row struct {
		TotalDebit  decimal.Decimal
		TotalCredit decimal.Decimal
	}
	err := db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(l.debit), 0) AS total_debit, COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE e.workspace_id = ? AND e.fiscal_period_id = ?`,
		workspaceId, periodId).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.TotalDebit.Sub(row.TotalCredit), nil
}
