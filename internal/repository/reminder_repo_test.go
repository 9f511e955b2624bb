package repository

import (
	"errors"
	"testing"

	"studiohq/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestReminderClaimOncePerBookingAndType(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)

	rs, err := repo.Claim(10, domain.ReminderTypeUpcomingSession)
	require.NoError(t, err)
	require.Equal(t, domain.ReminderStatusPending, rs.Status)

	_, err = repo.Claim(10, domain.ReminderTypeUpcomingSession)
	require.ErrorIs(t, err, ErrReminderAlreadySent)

	// A different booking claims independently.
	_, err = repo.Claim(11, domain.ReminderTypeUpcomingSession)
	require.NoError(t, err)
}

func TestReminderMarkResult(t *testing.T) {
	db := newTestDB(t)
	repo := NewReminderRepository(db)

	rs, err := repo.Claim(10, domain.ReminderTypeUpcomingSession)
	require.NoError(t, err)
	require.NoError(t, repo.MarkResult(rs.ID, nil))

	list, err := repo.ListByBooking(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.ReminderStatusSent, list[0].Status)
	require.NotNil(t, list[0].SentAt)

	rs2, err := repo.Claim(11, domain.ReminderTypeUpcomingSession)
	require.NoError(t, err)
	require.NoError(t, repo.MarkResult(rs2.ID, errors.New("provider unavailable")))

	list, err = repo.ListByBooking(11)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.ReminderStatusFailed, list[0].Status)
	require.Equal(t, "provider unavailable", list[0].Error)
}
