package service

import (
	"testing"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCheckinService(db *gorm.DB) *CheckinService {
	return NewCheckinService(
		db,
		repository.NewBookingRepository(db),
		repository.NewCheckinRepository(db),
		repository.NewRewardsRepository(db),
	)
}

func seedBooking(t *testing.T, db *gorm.DB, userID uint, status string) *models.Booking {
	t.Helper()
	sess := seedSession(t, db, time.Hour, 10)
	b := &models.Booking{SessionID: sess.ID, UserID: userID, Status: status, BookedAt: time.Now()}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestCheckInGrantsRewardOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckinService(db)
	rewardsRepo := repository.NewRewardsRepository(db)
	u := seedUser(t, db, "client@test.local")
	b := seedBooking(t, db, u.ID, domain.BookingStatusBooked)

	admin := uint(99)
	res, err := svc.CheckIn(b.ID, &admin)
	require.NoError(t, err)
	require.Equal(t, domain.CheckinRewardPoints, res.RewardsDelta)

	bal, err := rewardsRepo.Balance(u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CheckinRewardPoints, bal)

	// Second check-in: rejected, and the rewards ledger gains nothing.
	_, err = svc.CheckIn(b.ID, &admin)
	require.ErrorIs(t, err, repository.ErrAlreadyCheckedIn)

	bal, err = rewardsRepo.Balance(u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CheckinRewardPoints, bal)

	var count int64
	require.NoError(t, db.Model(&models.BookingCheckin{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCheckInRejectsCancelledBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckinService(db)
	u := seedUser(t, db, "client@test.local")
	b := seedBooking(t, db, u.ID, domain.BookingStatusCancelled)

	_, err := svc.CheckIn(b.ID, nil)
	require.ErrorIs(t, err, ErrInvalidBookingState)
}

func TestCheckInUnknownBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckinService(db)

	_, err := svc.CheckIn(12345, nil)
	require.ErrorIs(t, err, ErrBookingNotFound)
}
