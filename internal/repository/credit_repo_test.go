package repository

import (
	"testing"

	"studiohq/internal/models"

	"github.com/stretchr/testify/require"
)

func seedCreditType(t *testing.T, repo *CreditRepository, name string) *models.CreditType {
	t.Helper()
	ct := &models.CreditType{Name: name, Active: true}
	require.NoError(t, repo.db.Create(ct).Error)
	return ct
}

func TestApplyDeltaGrantAndDeduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	ct := seedCreditType(t, repo, "Group Class")

	bal, err := repo.ApplyDelta(1, ct.ID, 5, "admin_adjustment", nil)
	require.NoError(t, err)
	require.Equal(t, 5, bal)

	bal, err = repo.ApplyDelta(1, ct.ID, -1, "booking", nil)
	require.NoError(t, err)
	require.Equal(t, 4, bal)
}

func TestApplyDeltaRejectsNegativeBalance(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	ct := seedCreditType(t, repo, "Group Class")

	_, err := repo.ApplyDelta(1, ct.ID, 2, "admin_adjustment", nil)
	require.NoError(t, err)

	_, err = repo.ApplyDelta(1, ct.ID, -3, "booking", nil)
	require.ErrorIs(t, err, ErrInsufficientCredits)

	// Nothing committed: balance unchanged and no ledger row for the failure.
	bal, err := repo.Balance(1, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 2, bal)

	entries, err := repo.Ledger(nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestApplyDeltaDeductWithNoBalanceRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	ct := seedCreditType(t, repo, "Open Gym")

	_, err := repo.ApplyDelta(7, ct.ID, -1, "booking", nil)
	require.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestLedgerSumMatchesBalance(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	ct := seedCreditType(t, repo, "Group Class")

	deltas := []int{3, -1, 2, -1, -1}
	for _, d := range deltas {
		reason := "admin_adjustment"
		if d < 0 {
			reason = "booking"
		}
		_, err := repo.ApplyDelta(1, ct.ID, d, reason, nil)
		require.NoError(t, err)
	}

	entries, err := repo.Ledger(nil, 50, 0)
	require.NoError(t, err)
	sum := 0
	for _, e := range entries {
		sum += e.Delta
	}
	bal, err := repo.Balance(1, ct.ID)
	require.NoError(t, err)
	require.Equal(t, sum, bal)
	require.Equal(t, 2, bal)
}

func TestFirstFundedTypeAlphabetical(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	a := seedCreditType(t, repo, "Group Class")
	b := seedCreditType(t, repo, "Open Gym")

	// Only the later type (alphabetically) is funded.
	_, err := repo.ApplyDelta(1, b.ID, 2, "admin_adjustment", nil)
	require.NoError(t, err)

	ct, err := repo.FirstFundedType(1)
	require.NoError(t, err)
	require.NotNil(t, ct)
	require.Equal(t, b.ID, ct.ID)

	// Fund the earlier type: it now wins.
	_, err = repo.ApplyDelta(1, a.ID, 1, "admin_adjustment", nil)
	require.NoError(t, err)

	ct, err = repo.FirstFundedType(1)
	require.NoError(t, err)
	require.Equal(t, a.ID, ct.ID)
}

func TestFirstFundedTypeNoneFunded(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	seedCreditType(t, repo, "Group Class")

	ct, err := repo.FirstFundedType(1)
	require.NoError(t, err)
	require.Nil(t, ct)
}
