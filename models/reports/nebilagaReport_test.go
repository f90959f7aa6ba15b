package reports

import (
	"testing"

	"github.com/bokfora/ledger_backend/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeNebilagaBookResultFlowsThroughPipeline(t *testing.T) {
	// 100 000 kr income, 50 000 kr expenses, no adjustments: the book result
	// passes every subtotal untouched and lands as surplus.
	report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
		nil,
		[]*models.AccountBalance{
			bal(3010, 100000),
			bal(5010, 50000),
		},
		nil)

	assert.Equal(t, int64(10000000), report.ResultFields["R1"])
	assert.Equal(t, int64(5000000), report.ResultFields["R6"])
	assert.Equal(t, int64(5000000), report.ResultFields["R11"])
	assert.Equal(t, int64(5000000), report.ResultFields["R12"])
	assert.Equal(t, int64(5000000), report.ResultFields["R17"])
	assert.Equal(t, int64(5000000), report.ResultFields["R33"])
	assert.Equal(t, int64(5000000), report.ResultFields["R35"])
	assert.Equal(t, int64(5000000), report.ResultFields["R43"])
	assert.Equal(t, int64(5000000), report.ResultFields["R46"])
	assert.Equal(t, int64(5000000), report.Surplus)
	assert.Equal(t, int64(0), report.Deficit)
}

func TestComputeNebilagaAppliesAdjustmentSigns(t *testing.T) {
	// Book result 50 000 kr. Tax depreciation (R14) reduces, reversed book
	// depreciation (R13) increases, private pension (R38 area: R43 stage).
	adjustments := map[string]int64{
		"R13": 2000000, // +20 000
		"R14": 3000000, // -30 000
		"R18": 500000,  // -5 000
		"R19": 100000,  // +1 000
		"R34": 200000,  // -2 000
		"R38": 400000,  // -4 000
		"R44": 100000,  // -1 000
		"R45": 50000,   // +500
	}

	report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
		nil,
		[]*models.AccountBalance{
			bal(3010, 100000),
			bal(5010, 50000),
		},
		adjustments)

	assert.Equal(t, int64(4000000), report.ResultFields["R17"]) // 50 000 + 20 000 - 30 000
	assert.Equal(t, int64(3600000), report.ResultFields["R33"]) // - 5 000 + 1 000
	assert.Equal(t, int64(3400000), report.ResultFields["R35"]) // - 2 000
	assert.Equal(t, int64(3000000), report.ResultFields["R43"]) // - 4 000
	assert.Equal(t, int64(2950000), report.ResultFields["R46"]) // - 1 000 + 500
	assert.Equal(t, int64(2950000), report.Surplus)
	assert.Equal(t, int64(0), report.Deficit)
}

func TestComputeNebilagaDeficit(t *testing.T) {
	report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
		nil,
		[]*models.AccountBalance{
			bal(3010, 10000),
			bal(5010, 60000),
		},
		nil)

	assert.Equal(t, int64(-5000000), report.ResultFields["R11"])
	assert.Equal(t, int64(-5000000), report.CombinedResult)
	assert.Equal(t, int64(0), report.Surplus)
	assert.Equal(t, int64(5000000), report.Deficit)
}

func TestComputeNebilagaSurplusAndDeficitAreExclusive(t *testing.T) {
	for _, result := range []float64{-100, -0.01, 0, 0.01, 100} {
		report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
			nil,
			[]*models.AccountBalance{bal(3010, result)},
			nil)
		if report.Surplus > 0 {
			assert.Equal(t, int64(0), report.Deficit)
		}
		if report.Deficit > 0 {
			assert.Equal(t, int64(0), report.Surplus)
		}
		assert.Equal(t, report.CombinedResult, report.Surplus-report.Deficit)
	}
}

func TestComputeNebilagaBalanceFields(t *testing.T) {
	report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
		[]*models.AccountBalance{
			bal(1220, 20000), // B4
			bal(1930, 30000), // B9
			bal(2010, 48000), // B10
			bal(2440, 2000),  // B15
		},
		nil,
		nil)

	assert.Equal(t, int64(2000000), report.BalanceFields["B4"])
	assert.Equal(t, int64(3000000), report.BalanceFields["B9"])
	assert.Equal(t, int64(4800000), report.BalanceFields["B10"])
	assert.Equal(t, int64(200000), report.BalanceFields["B15"])
	assert.False(t, report.HasNegativeBalances)
}

func TestComputeNebilagaFlagsNegativeBalances(t *testing.T) {
	// An overdrawn bank account nets negative against its asset nature. The
	// declaration still renders; the field is flagged.
	report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
		[]*models.AccountBalance{
			bal(1930, -500),
			bal(2010, -500),
		},
		nil,
		nil)

	assert.True(t, report.HasNegativeBalances)
	assert.Equal(t, []string{"B10", "B9"}, report.NegativeBalanceFields)
	assert.Equal(t, int64(-50000), report.BalanceFields["B9"])
}

func TestComputeNebilagaIgnoresStoredSubtotals(t *testing.T) {
	// Subtotals are always derived; a stray stored value for one must not
	// leak into the pipeline.
	report := computeNebilaga(1, models.BusinessTypeSoleProprietorship,
		nil,
		[]*models.AccountBalance{bal(3010, 1000)},
		map[string]int64{"R33": 99999999, "R46": 99999999, "R47": 99999999})

	assert.Equal(t, int64(100000), report.ResultFields["R33"])
	assert.Equal(t, int64(100000), report.ResultFields["R46"])
	assert.Equal(t, int64(100000), report.Surplus)
}
