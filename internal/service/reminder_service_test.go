package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"
	"studiohq/internal/repository"
	"studiohq/pkg/email"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingSender struct {
	sent []email.SendRequest
	err  error
}

func (s *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	s.sent = append(s.sent, req)
	if s.err != nil {
		return email.SendResult{}, s.err
	}
	return email.SendResult{MessageID: "msg_test", SentAt: time.Now()}, nil
}

func newReminderService(db *gorm.DB, sender email.Sender) *ReminderService {
	return NewReminderService(
		repository.NewBookingRepository(db),
		repository.NewReminderRepository(db),
		sender,
		"StudioHQ <noreply@studiohq.local>",
	)
}

func seedReminderBooking(t *testing.T, db *gorm.DB, startsIn time.Duration) *models.Booking {
	t.Helper()
	u := seedUser(t, db, "remindme@test.local")
	sess := seedSession(t, db, startsIn, 10)
	b := &models.Booking{SessionID: sess.ID, UserID: u.ID, Status: domain.BookingStatusBooked, BookedAt: time.Now()}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestSweepSendsOncePerBooking(t *testing.T) {
	db := newTestDB(t)
	sender := &recordingSender{}
	svc := newReminderService(db, sender)
	b := seedReminderBooking(t, db, 24*time.Hour)

	results, err := svc.Sweep(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "sent", results[0].Result)
	require.Len(t, sender.sent, 1)
	require.Equal(t, []string{"remindme@test.local"}, sender.sent[0].To)

	// Second sweep over the same window: same target, no second email, one row.
	results, err = svc.Sweep(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "skipped", results[0].Result)
	require.Len(t, sender.sent, 1)

	var count int64
	require.NoError(t, db.Model(&models.ReminderSend{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSweepIgnoresBookingsOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	sender := &recordingSender{}
	svc := newReminderService(db, sender)
	seedReminderBooking(t, db, 48*time.Hour)

	results, err := svc.Sweep(context.Background(), 24)
	require.NoError(t, err)
	require.Empty(t, results)
	require.Empty(t, sender.sent)
}

func TestSweepIgnoresCancelledBookings(t *testing.T) {
	db := newTestDB(t)
	sender := &recordingSender{}
	svc := newReminderService(db, sender)
	b := seedReminderBooking(t, db, 24*time.Hour)
	require.NoError(t, db.Model(b).Update("status", domain.BookingStatusCancelled).Error)

	results, err := svc.Sweep(context.Background(), 24)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSweepRecordsFailure(t *testing.T) {
	db := newTestDB(t)
	sender := &recordingSender{err: errors.New("provider down")}
	svc := newReminderService(db, sender)
	b := seedReminderBooking(t, db, 24*time.Hour)

	results, err := svc.Sweep(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "failed", results[0].Result)

	sends, err := repository.NewReminderRepository(db).ListByBooking(b.ID)
	require.NoError(t, err)
	require.Len(t, sends, 1)
	require.Equal(t, domain.ReminderStatusFailed, sends[0].Status)
	require.Equal(t, "provider down", sends[0].Error)

	// The failed send stays claimed: a retry sweep skips rather than re-sending.
	results, err = svc.Sweep(context.Background(), 24)
	require.NoError(t, err)
	require.Equal(t, "skipped", results[0].Result)
}

func TestPreviewDoesNotClaim(t *testing.T) {
	db := newTestDB(t)
	sender := &recordingSender{}
	svc := newReminderService(db, sender)
	b := seedReminderBooking(t, db, 24*time.Hour)

	targets, err := svc.Preview(24)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, b.ID, targets[0].BookingID)
	require.Empty(t, sender.sent)

	var count int64
	require.NoError(t, db.Model(&models.ReminderSend{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
