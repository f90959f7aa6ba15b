package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOpeningBalanceLinesBalanced(t *testing.T) {
	lines := []NewOpeningBalanceLine{
		{AccountNumber: 1930, Debit: kr(50000)},
		{AccountNumber: 1220, Debit: kr(20000)},
		{AccountNumber: 2010, Credit: kr(45000)},
		{AccountNumber: 2350, Credit: kr(25000)},
	}
	assert.NoError(t, ValidateOpeningBalanceLines(lines))
}

func TestValidateOpeningBalanceLinesUnbalanced(t *testing.T) {
	err := ValidateOpeningBalanceLines([]NewOpeningBalanceLine{
		{AccountNumber: 1930, Debit: kr(50000)},
		{AccountNumber: 2010, Credit: kr(40000)},
	})
	require.Error(t, err)
	assert.Equal(t, CodeUnbalancedEntry, ErrorCode(err))
}

func TestValidateOpeningBalanceLinesRejectsResultAccounts(t *testing.T) {
	// Income statement accounts start every period at zero; they have no
	// opening position.
	err := ValidateOpeningBalanceLines([]NewOpeningBalanceLine{
		{AccountNumber: 3010, Credit: kr(100)},
		{AccountNumber: 1930, Debit: kr(100)},
	})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidAccount, ErrorCode(err))
}

func TestValidateOpeningBalanceLinesRejectsDuplicateAccount(t *testing.T) {
	err := ValidateOpeningBalanceLines([]NewOpeningBalanceLine{
		{AccountNumber: 1930, Debit: kr(100)},
		{AccountNumber: 1930, Debit: kr(100)},
		{AccountNumber: 2010, Credit: kr(200)},
	})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidAccount, ErrorCode(err))
}

func TestValidateOpeningBalanceLinesEmptyIsBalanced(t *testing.T) {
	assert.NoError(t, ValidateOpeningBalanceLines(nil))
}
