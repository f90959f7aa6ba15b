package reports

import (
	"context"
	"errors"
	"sort"

	"github.com/bokfora/ledger_backend/models"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

// The NE-bilaga is the sole proprietor's income tax appendix. B1-B16 restate
// the balance sheet, R1-R11 restate the income statement, and R12-R48 walk
// from the book result to taxable surplus (R47) or deficit (R48) through the
// manually supplied tax adjustments. All arithmetic runs in whole öre.

// nebilagaManualSigns gives the direction each manual field moves the running
// result. Values are entered as positive amounts; the sign lives here.
var nebilagaManualSigns = map[string]int64{
	"R13": 1, "R14": -1, "R15": 1, "R16": -1,
	"R18": -1, "R19": 1, "R20": 1, "R21": 1, "R22": 1,
	"R23": -1, "R24": -1, "R25": 1, "R26": 1, "R27": 1,
	"R28": -1, "R29": 1, "R30": -1, "R31": 1, "R32": -1,
	"R34": -1,
	"R36": -1, "R37": 1, "R38": -1, "R39": -1, "R40": 1,
	"R41": -1, "R42": 1,
	"R44": -1, "R45": 1,
}

type NebilagaReport struct {
	FiscalPeriodId        int                 `json:"fiscalPeriodId"`
	BusinessType          models.BusinessType `json:"businessType"`
	BalanceFields         map[string]int64    `json:"balanceFields"`
	ResultFields          map[string]int64    `json:"resultFields"`
	CombinedResult        int64               `json:"combinedResult"`
	Surplus               int64               `json:"surplus"`
	Deficit               int64               `json:"deficit"`
	HasNegativeBalances   bool                `json:"hasNegativeBalances"`
	NegativeBalanceFields []string            `json:"negativeBalanceFields"`
}

func toOre(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// computeBalanceFields folds signed balance-sheet positions into B1-B16. A
// negative field means an account holds a balance against its nature (an
// overdrawn bank account, negative equity); that is reported, not rejected.
func computeBalanceFields(balances []*models.AccountBalance) (map[string]int64, []string) {
	fields := make(map[string]int64)
	for _, balance := range balances {
		field, ok := models.NebilagaBalanceFieldFor(balance.AccountNumber)
		if !ok {
			continue
		}
		fields[field] += toOre(balance.Net)
	}

	var negative []string
	for field, amount := range fields {
		if amount < 0 {
			negative = append(negative, field)
		}
	}
	sort.Strings(negative)
	return fields, negative
}

// computeResultFields folds signed income-statement positions into R1-R10
// and derives R11, the book result.
func computeResultFields(balances []*models.AccountBalance) map[string]int64 {
	fields := make(map[string]int64)
	for _, balance := range balances {
		field, ok := models.NebilagaResultFieldFor(balance.AccountNumber)
		if !ok {
			continue
		}
		fields[field] += toOre(balance.Net)
	}

	income := fields["R1"] + fields["R2"] + fields["R3"] + fields["R4"]
	expenses := fields["R5"] + fields["R6"] + fields["R7"] + fields["R8"] + fields["R9"] + fields["R10"]
	fields["R11"] = income - expenses
	return fields
}

func signed(adjustments map[string]int64, field string) int64 {
	return nebilagaManualSigns[field] * adjustments[field]
}

// applyAdjustmentPipeline runs R12-R48. The subtotals R17, R33, R35, R43 and
// R46 are always recomputed from their inputs; stored values for them are
// ignored.
func applyAdjustmentPipeline(fields map[string]int64, adjustments map[string]int64) {
	for field := range nebilagaManualSigns {
		fields[field] = adjustments[field]
	}

	fields["R12"] = fields["R11"]
	fields["R17"] = fields["R12"] + signed(adjustments, "R13") + signed(adjustments, "R14") +
		signed(adjustments, "R15") + signed(adjustments, "R16")

	fields["R33"] = fields["R17"]
	for _, field := range []string{"R18", "R19", "R20", "R21", "R22", "R23", "R24", "R25", "R26", "R27", "R28", "R29", "R30", "R31", "R32"} {
		fields["R33"] += signed(adjustments, field)
	}

	fields["R35"] = fields["R33"] + signed(adjustments, "R34")

	fields["R43"] = fields["R35"]
	for _, field := range []string{"R36", "R37", "R38", "R39", "R40", "R41", "R42"} {
		fields["R43"] += signed(adjustments, field)
	}

	fields["R46"] = fields["R43"] + signed(adjustments, "R44") + signed(adjustments, "R45")

	if fields["R46"] >= 0 {
		fields["R47"] = fields["R46"]
		fields["R48"] = 0
	} else {
		fields["R47"] = 0
		fields["R48"] = -fields["R46"]
	}
}

// computeNebilaga assembles the full declaration from signed balances and
// the manual adjustments. Pure; the DB never appears here.
func computeNebilaga(periodId int, businessType models.BusinessType,
	balanceSheet []*models.AccountBalance, incomeStatement []*models.AccountBalance,
	adjustments map[string]int64) *NebilagaReport {

	balanceFields, negative := computeBalanceFields(balanceSheet)
	resultFields := computeResultFields(incomeStatement)
	applyAdjustmentPipeline(resultFields, adjustments)

	return &NebilagaReport{
		FiscalPeriodId:        periodId,
		BusinessType:          businessType,
		BalanceFields:         balanceFields,
		ResultFields:          resultFields,
		CombinedResult:        resultFields["R46"],
		Surplus:               resultFields["R47"],
		Deficit:               resultFields["R48"],
		HasNegativeBalances:   len(negative) > 0,
		NegativeBalanceFields: negative,
	}
}

// GetNebilagaReport builds the declaration for the period. Only sole
// proprietorships file an NE-bilaga; other business types are refused before
// any aggregation runs.
func GetNebilagaReport(ctx context.Context, fiscalPeriodId int) (*NebilagaReport, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	workspace, err := models.GetWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	if workspace.BusinessType != models.BusinessTypeSoleProprietorship {
		return nil, models.ErrNebilagaRequiresSoleProprietorship
	}

	key := cacheKey("Nebilaga", workspaceId, fiscalPeriodId)
	if cached, ok := cacheGet[NebilagaReport](key); ok {
		return cached, nil
	}

	balanceSheet, err := models.GetAccountRangeBalances(ctx, fiscalPeriodId, 1000, 2999)
	if err != nil {
		return nil, err
	}
	incomeStatement, err := models.GetAccountRangeBalances(ctx, fiscalPeriodId, 3000, 8999)
	if err != nil {
		return nil, err
	}
	adjustments, err := models.GetNebilagaAdjustments(ctx, fiscalPeriodId)
	if err != nil {
		return nil, err
	}

	report := computeNebilaga(fiscalPeriodId, workspace.BusinessType, balanceSheet, incomeStatement, adjustments)
	cacheSet(key, report)
	return report, nil
}
