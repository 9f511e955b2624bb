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

func newBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(
		db,
		repository.NewBookingRepository(db),
		repository.NewSessionRepository(db),
		repository.NewCreditRepository(db),
		repository.NewMembershipRepository(db),
		repository.NewWaiverRepository(db),
	)
}

func TestCreateBookingConsumesCredit(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	ct := seedFundedCreditType(t, db, u.ID, "Group Class", 1)

	res, err := svc.Create(u.ID, sess.ID, nil)
	require.NoError(t, err)
	require.True(t, res.UsedCredit)
	require.Equal(t, domain.BookingStatusBooked, res.Booking.Status)
	require.NotNil(t, res.Booking.CreditTypeID)
	require.Equal(t, ct.ID, *res.Booking.CreditTypeID)

	bal, err := repository.NewCreditRepository(db).Balance(u.ID, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 0, bal)
}

func TestCreateBookingRequiresWaiver(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "client@test.local")
	sess := seedSession(t, db, 48*time.Hour, 10)
	seedFundedCreditType(t, db, u.ID, "Group Class", 1)

	_, err := svc.Create(u.ID, sess.ID, nil)
	require.ErrorIs(t, err, ErrWaiverRequired)
}

func TestCreateBookingWindowBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	seedFundedCreditType(t, db, u.ID, "Group Class", 5)

	// Starts just over the cutoff: allowed.
	open := seedSession(t, db, domain.BookingWindowHours*time.Hour+time.Minute, 10)
	_, err := svc.Create(u.ID, open.ID, nil)
	require.NoError(t, err)

	// Starts just under the cutoff: closed.
	closed := seedSession(t, db, domain.BookingWindowHours*time.Hour-time.Minute, 10)
	_, err = svc.Create(u.ID, closed.ID, nil)
	require.ErrorIs(t, err, ErrBookingWindowClosed)

	// Already started: closed.
	past := seedSession(t, db, -time.Hour, 10)
	_, err = svc.Create(u.ID, past.ID, nil)
	require.ErrorIs(t, err, ErrBookingWindowClosed)
}

func TestCreateBookingDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	ct := seedFundedCreditType(t, db, u.ID, "Group Class", 3)

	_, err := svc.Create(u.ID, sess.ID, nil)
	require.NoError(t, err)
	_, err = svc.Create(u.ID, sess.ID, nil)
	require.ErrorIs(t, err, ErrDuplicateBooking)

	// Only one credit consumed.
	bal, err := repository.NewCreditRepository(db).Balance(u.ID, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 2, bal)
}

func TestCreateBookingCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u1 := seedUser(t, db, "one@test.local")
	u2 := seedUser(t, db, "two@test.local")
	seedSignedWaiver(t, db, u1.ID, u2.ID)
	sess := seedSession(t, db, 48*time.Hour, 1)
	seedFundedCreditType(t, db, u1.ID, "Group Class", 1)

	_, err := svc.Create(u1.ID, sess.ID, nil)
	require.NoError(t, err)

	_, err = svc.Create(u2.ID, sess.ID, nil)
	require.ErrorIs(t, err, ErrSessionFull)
}

func TestCreateBookingNoCredits(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	seedFundedCreditType(t, db, u.ID, "Group Class", 0)

	_, err := svc.Create(u.ID, sess.ID, nil)
	require.ErrorIs(t, err, ErrNoCreditsAvailable)
}

func TestCreateBookingUnlimitedMembershipSkipsCredits(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "member@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	require.NoError(t, db.Create(&models.Membership{UserID: u.ID, PlanName: "Unlimited", Unlimited: true}).Error)

	res, err := svc.Create(u.ID, sess.ID, nil)
	require.NoError(t, err)
	require.False(t, res.UsedCredit)
	require.Nil(t, res.Booking.CreditTypeID)
}

func TestCreateBookingExpiredMembershipFallsBackToCredits(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	u := seedUser(t, db, "lapsed@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	expired := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Create(&models.Membership{
		UserID: u.ID, PlanName: "Unlimited", Unlimited: true, ExpiresAt: &expired,
	}).Error)
	ct := seedFundedCreditType(t, db, u.ID, "Group Class", 1)

	res, err := svc.Create(u.ID, sess.ID, nil)
	require.NoError(t, err)
	require.True(t, res.UsedCredit)
	require.Equal(t, ct.ID, *res.Booking.CreditTypeID)
}

func TestCancelRefundsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	creditRepo := repository.NewCreditRepository(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	ct := seedFundedCreditType(t, db, u.ID, "Group Class", 1)

	res, err := svc.Create(u.ID, sess.ID, nil)
	require.NoError(t, err)

	bal, err := creditRepo.Balance(u.ID, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 0, bal)

	cancel, err := svc.Cancel(u.ID, domain.RoleClient, res.Booking.ID)
	require.NoError(t, err)
	require.True(t, cancel.Refunded)

	bal, err = creditRepo.Balance(u.ID, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 1, bal)

	// A second cancel must not refund again.
	_, err = svc.Cancel(u.ID, domain.RoleClient, res.Booking.ID)
	require.ErrorIs(t, err, ErrAlreadyCancelled)

	bal, err = creditRepo.Balance(u.ID, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 1, bal)
}

func TestCancelOwnershipAndTiming(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	owner := seedUser(t, db, "owner@test.local")
	other := seedUser(t, db, "other@test.local")
	seedSignedWaiver(t, db, owner.ID, other.ID)
	sess := seedSession(t, db, 48*time.Hour, 10)
	seedFundedCreditType(t, db, owner.ID, "Group Class", 1)

	res, err := svc.Create(owner.ID, sess.ID, nil)
	require.NoError(t, err)

	_, err = svc.Cancel(other.ID, domain.RoleClient, res.Booking.ID)
	require.ErrorIs(t, err, ErrNotYourBooking)

	// Admins may cancel anyone's booking.
	admin := seedUser(t, db, "admin@test.local")
	cancel, err := svc.Cancel(admin.ID, domain.RoleAdmin, res.Booking.ID)
	require.NoError(t, err)
	require.True(t, cancel.Refunded)
}

func TestCancelAfterSessionStart(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db)
	repo := repository.NewBookingRepository(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	sess := seedSession(t, db, -time.Hour, 10)

	// Insert directly; the session already started so Create would refuse.
	b := &models.Booking{SessionID: sess.ID, UserID: u.ID, Status: domain.BookingStatusBooked, BookedAt: time.Now().Add(-24 * time.Hour)}
	require.NoError(t, repo.Create(b))

	_, err := svc.Cancel(u.ID, domain.RoleClient, b.ID)
	require.ErrorIs(t, err, ErrSessionStarted)

	// But the admin override still works.
	_, err = svc.Cancel(99, domain.RoleAdmin, b.ID)
	require.NoError(t, err)
}

func TestCreateBookingExampleScenario(t *testing.T) {
	// One credit, book, cancel, book again: the refunded credit covers the
	// second booking and the ledger never goes negative.
	db := newTestDB(t)
	svc := newBookingService(db)
	creditRepo := repository.NewCreditRepository(db)
	u := seedUser(t, db, "client@test.local")
	seedSignedWaiver(t, db, u.ID)
	first := seedSession(t, db, 48*time.Hour, 10)
	second := seedSession(t, db, 72*time.Hour, 10)
	ct := seedFundedCreditType(t, db, u.ID, "Group Class", 1)

	res, err := svc.Create(u.ID, first.ID, nil)
	require.NoError(t, err)

	_, err = svc.Create(u.ID, second.ID, nil)
	require.ErrorIs(t, err, ErrNoCreditsAvailable)

	_, err = svc.Cancel(u.ID, domain.RoleClient, res.Booking.ID)
	require.NoError(t, err)

	_, err = svc.Create(u.ID, second.ID, nil)
	require.NoError(t, err)

	bal, err := creditRepo.Balance(u.ID, ct.ID)
	require.NoError(t, err)
	require.Equal(t, 0, bal)
}
