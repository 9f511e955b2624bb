package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"
	"studiohq/internal/repository"
	"studiohq/pkg/email"
)

type ReminderService struct {
	bookingRepo  *repository.BookingRepository
	reminderRepo *repository.ReminderRepository
	sender       email.Sender
	from         string
}

func NewReminderService(
	bookingRepo *repository.BookingRepository,
	reminderRepo *repository.ReminderRepository,
	sender email.Sender,
	from string,
) *ReminderService {
	return &ReminderService{bookingRepo: bookingRepo, reminderRepo: reminderRepo, sender: sender, from: from}
}

type ReminderTarget struct {
	BookingID    uint      `json:"booking_id"`
	UserEmail    string    `json:"user_email"`
	SessionStart time.Time `json:"session_start"`
	ClassName    string    `json:"class_name"`
	Result       string    `json:"result,omitempty"` // sent | skipped | failed
}

// window returns the ±1h band around now + hoursAhead.
func window(now time.Time, hoursAhead int) (time.Time, time.Time) {
	center := now.Add(time.Duration(hoursAhead) * time.Hour)
	return center.Add(-time.Hour), center.Add(time.Hour)
}

// Preview lists the bookings the sweep would target, without claiming or
// sending anything.
func (s *ReminderService) Preview(hoursAhead int) ([]ReminderTarget, error) {
	if hoursAhead <= 0 {
		hoursAhead = 24
	}
	start, end := window(time.Now(), hoursAhead)
	bookings, err := s.bookingRepo.ListForReminder(start, end)
	if err != nil {
		return nil, err
	}
	targets := make([]ReminderTarget, 0, len(bookings))
	for _, b := range bookings {
		targets = append(targets, targetFor(b))
	}
	return targets, nil
}

// Sweep sends one reminder per target booking. The claim insert makes the
// sweep idempotent: invoked twice for the same window it writes exactly one
// reminder_sends row per booking, and the second pass reports skipped.
func (s *ReminderService) Sweep(ctx context.Context, hoursAhead int) ([]ReminderTarget, error) {
	if hoursAhead <= 0 {
		hoursAhead = 24
	}
	start, end := window(time.Now(), hoursAhead)
	bookings, err := s.bookingRepo.ListForReminder(start, end)
	if err != nil {
		return nil, err
	}
	results := make([]ReminderTarget, 0, len(bookings))
	for _, b := range bookings {
		t := targetFor(b)
		claim, err := s.reminderRepo.Claim(b.ID, domain.ReminderTypeUpcomingSession)
		if errors.Is(err, repository.ErrReminderAlreadySent) {
			t.Result = "skipped"
			results = append(results, t)
			continue
		}
		if err != nil {
			return results, err
		}
		_, sendErr := s.sender.Send(ctx, email.SendRequest{
			To:      []string{b.User.Email},
			From:    s.from,
			Subject: fmt.Sprintf("Reminder: %s at %s", t.ClassName, b.Session.StartsAt.Format("Mon Jan 2 15:04")),
			HTML:    reminderHTML(b),
		})
		if markErr := s.reminderRepo.MarkResult(claim.ID, sendErr); markErr != nil {
			log.Printf("reminder: mark result booking=%d: %v", b.ID, markErr)
		}
		if sendErr != nil {
			t.Result = "failed"
		} else {
			t.Result = "sent"
		}
		results = append(results, t)
	}
	return results, nil
}

func targetFor(b models.Booking) ReminderTarget {
	return ReminderTarget{
		BookingID:    b.ID,
		UserEmail:    b.User.Email,
		SessionStart: b.Session.StartsAt,
		ClassName:    b.Session.ClassType.Name,
	}
}

func reminderHTML(b models.Booking) string {
	name := b.User.FullName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>A reminder that you're booked into <strong>%s</strong> on %s.</p><p>See you there!</p>",
		name, b.Session.ClassType.Name, b.Session.StartsAt.Format("Monday, Jan 2 at 15:04"),
	)
}
