package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCandidatesAgainstPostedEntries(t *testing.T) {
	// A 500 kr entry posted on 2025-01-10 makes an incoming 500 kr row for
	// the same day a duplicate; the day after is clean.
	posted := []postedEntryRef{
		{JournalEntryId: 9, EntryDate: day("2025-01-10"), Amount: kr(500)},
	}
	candidates := []CandidateBankTransaction{
		{RowId: "row-1", Date: day("2025-01-10"), Amount: kr(500)},
		{RowId: "row-2", Date: day("2025-01-11"), Amount: kr(500)},
	}

	results := matchCandidates(candidates, posted, nil)
	require.Len(t, results, 2)

	require.True(t, results["row-1"].IsDuplicate)
	require.Len(t, results["row-1"].Matches, 1)
	assert.Equal(t, MatchSourceDatabase, results["row-1"].Matches[0].Source)
	assert.Equal(t, 9, results["row-1"].Matches[0].JournalEntryId)

	assert.False(t, results["row-2"].IsDuplicate)
	assert.Empty(t, results["row-2"].Matches)
}

func TestMatchCandidatesAgainstStoredBankRows(t *testing.T) {
	imported := []*BankTransaction{
		{Id: 42, TransactionDate: day("2025-01-10"), Amount: kr(500)},
	}
	candidates := []CandidateBankTransaction{
		{RowId: "row-1", Date: day("2025-01-10"), Amount: kr(500)},
		{RowId: "row-2", Date: day("2025-01-10"), Amount: kr(500.01)},
	}

	results := matchCandidates(candidates, nil, imported)
	require.True(t, results["row-1"].IsDuplicate)
	require.Len(t, results["row-1"].Matches, 1)
	assert.Equal(t, MatchSourceDatabase, results["row-1"].Matches[0].Source)
	assert.Equal(t, 42, results["row-1"].Matches[0].BankTransactionId)

	assert.False(t, results["row-2"].IsDuplicate)
}

func TestMatchCandidatesWithinBatch(t *testing.T) {
	candidates := []CandidateBankTransaction{
		{RowId: "row-1", Date: day("2025-03-01"), Amount: kr(199.50)},
		{RowId: "row-2", Date: day("2025-03-01"), Amount: kr(199.50)},
		{RowId: "row-3", Date: day("2025-03-01"), Amount: kr(200)},
	}

	results := matchCandidates(candidates, nil, nil)
	require.Len(t, results, 3)

	require.True(t, results["row-1"].IsDuplicate)
	require.Len(t, results["row-1"].Matches, 1)
	assert.Equal(t, MatchSourceBatch, results["row-1"].Matches[0].Source)
	assert.Equal(t, "row-2", results["row-1"].Matches[0].RowId)

	require.True(t, results["row-2"].IsDuplicate)
	assert.Equal(t, "row-1", results["row-2"].Matches[0].RowId)

	assert.False(t, results["row-3"].IsDuplicate)
}

func TestMatchCandidatesCombinesSources(t *testing.T) {
	posted := []postedEntryRef{
		{JournalEntryId: 3, EntryDate: day("2025-02-14"), Amount: kr(1200)},
	}
	imported := []*BankTransaction{
		{Id: 7, TransactionDate: day("2025-02-14"), Amount: kr(1200)},
	}
	candidates := []CandidateBankTransaction{
		{RowId: "a", Date: day("2025-02-14"), Amount: kr(1200)},
		{RowId: "b", Date: day("2025-02-14"), Amount: kr(1200)},
	}

	results := matchCandidates(candidates, posted, imported)
	require.True(t, results["a"].IsDuplicate)
	require.Len(t, results["a"].Matches, 3)
	assert.Equal(t, 3, results["a"].Matches[0].JournalEntryId)
	assert.Equal(t, 7, results["a"].Matches[1].BankTransactionId)
	assert.Equal(t, MatchSourceBatch, results["a"].Matches[2].Source)
}

func TestMatchCandidatesSkipsInvalidRows(t *testing.T) {
	candidates := []CandidateBankTransaction{
		{RowId: "", Date: day("2025-01-10"), Amount: kr(500)},
		{RowId: "no-date", Amount: kr(500)},
		{RowId: "ok", Date: day("2025-01-10"), Amount: kr(500)},
	}

	results := matchCandidates(candidates, nil, nil)
	require.Len(t, results, 1)
	assert.False(t, results["ok"].IsDuplicate)
}

func TestMatchCandidatesIgnoresTimeOfDay(t *testing.T) {
	posted := []postedEntryRef{
		{JournalEntryId: 1, EntryDate: day("2025-01-10").Add(9 * time.Hour), Amount: kr(500)},
	}
	candidates := []CandidateBankTransaction{
		{RowId: "row-1", Date: day("2025-01-10").Add(17 * time.Hour), Amount: kr(500)},
	}

	results := matchCandidates(candidates, posted, nil)
	assert.True(t, results["row-1"].IsDuplicate)
}
