package repository

import (
	"testing"
	"time"

	"studiohq/internal/models"

	"github.com/stretchr/testify/require"
)

func TestIntakeUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntakeRepository(db)

	// First submission stores an object, resubmission an array; the second
	// write replaces the first rather than stacking a second row.
	_, err := repo.Upsert(1, "par_q", `{"q1":true}`, time.Now())
	require.NoError(t, err)

	sub, err := repo.Upsert(1, "par_q", `[{"q":1,"answer":false}]`, time.Now())
	require.NoError(t, err)
	require.Equal(t, `[{"q":1,"answer":false}]`, sub.Payload)

	var count int64
	require.NoError(t, db.Model(&models.IntakeSubmission{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	got, err := repo.GetByUserAndForm(1, "par_q")
	require.NoError(t, err)
	require.Equal(t, `[{"q":1,"answer":false}]`, got.Payload)
}

func TestIntakeSeparateRowsPerFormType(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntakeRepository(db)

	_, err := repo.Upsert(1, "basic", `{"name":"Sam"}`, time.Now())
	require.NoError(t, err)
	_, err = repo.Upsert(1, "goals", `{"goal":"strength"}`, time.Now())
	require.NoError(t, err)
	_, err = repo.Upsert(2, "basic", `{"name":"Alex"}`, time.Now())
	require.NoError(t, err)

	mine, err := repo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	all, err := repo.ListAll(50, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
