package service

import (
	"errors"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrWaiverRequired      = errors.New("signed waiver required before booking")
	ErrSessionNotFound     = errors.New("session not found")
	ErrBookingWindowClosed = errors.New("booking window closed")
	ErrDuplicateBooking    = errors.New("already booked for this session")
	ErrSessionFull         = errors.New("session is full")
	ErrNoCreditsAvailable  = errors.New("no credits available")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotYourBooking      = errors.New("booking belongs to another user")
	ErrSessionStarted      = errors.New("session has already started")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
)

type BookingService struct {
	db             *gorm.DB
	bookingRepo    *repository.BookingRepository
	sessionRepo    *repository.SessionRepository
	creditRepo     *repository.CreditRepository
	membershipRepo *repository.MembershipRepository
	waiverRepo     *repository.WaiverRepository
}

func NewBookingService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	sessionRepo *repository.SessionRepository,
	creditRepo *repository.CreditRepository,
	membershipRepo *repository.MembershipRepository,
	waiverRepo *repository.WaiverRepository,
) *BookingService {
	return &BookingService{
		db:             db,
		bookingRepo:    bookingRepo,
		sessionRepo:    sessionRepo,
		creditRepo:     creditRepo,
		membershipRepo: membershipRepo,
		waiverRepo:     waiverRepo,
	}
}

type CreateBookingResult struct {
	Booking    *models.Booking
	UsedCredit bool
}

// Create runs the booking preconditions in order (first failure wins), then
// deducts a credit and inserts the booking inside one transaction, so a failed
// insert rolls the deduction back instead of stranding the charge.
func (s *BookingService) Create(userID, sessionID uint, creditTypeID *uint) (*CreateBookingResult, error) {
	signed, err := s.waiverRepo.HasSigned(userID)
	if err != nil {
		return nil, err
	}
	if !signed {
		return nil, ErrWaiverRequired
	}

	sess, err := s.sessionRepo.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	now := time.Now()
	// Hard cutoff: booking must happen strictly more than the window before start.
	if !now.Add(domain.BookingWindowHours * time.Hour).Before(sess.StartsAt) {
		return nil, ErrBookingWindowClosed
	}

	if _, err := s.bookingRepo.GetActiveByUserAndSession(userID, sessionID); err == nil {
		return nil, ErrDuplicateBooking
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	booked, err := s.bookingRepo.CountBookedBySession(sessionID)
	if err != nil {
		return nil, err
	}
	if booked >= int64(sess.Capacity) {
		return nil, ErrSessionFull
	}

	useCreditTypeID, err := s.resolveCredit(userID, creditTypeID, now)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		SessionID:    sessionID,
		UserID:       userID,
		Status:       domain.BookingStatusBooked,
		CreditTypeID: useCreditTypeID,
		BookedAt:     now,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if useCreditTypeID != nil {
			if _, err := s.creditRepo.ApplyDeltaTx(tx, userID, *useCreditTypeID, -1, domain.ReasonBooking, nil); err != nil {
				return err
			}
		}
		return s.bookingRepo.CreateTx(tx, b)
	})
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: b, UsedCredit: useCreditTypeID != nil}, nil
}

// resolveCredit decides which credit type the booking consumes. An active
// unlimited membership means none. Otherwise the caller's choice, or the first
// active type (alphabetical) with a positive balance.
func (s *BookingService) resolveCredit(userID uint, creditTypeID *uint, now time.Time) (*uint, error) {
	m, err := s.membershipRepo.GetByUserID(userID)
	if err == nil && m.UnlimitedActive(now) {
		return nil, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if creditTypeID != nil {
		if _, err := s.creditRepo.GetType(*creditTypeID); err != nil {
			return nil, ErrNoCreditsAvailable
		}
		return creditTypeID, nil
	}
	ct, err := s.creditRepo.FirstFundedType(userID)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, ErrNoCreditsAvailable
	}
	id := ct.ID
	return &id, nil
}

type CancelResult struct {
	Refunded bool
}

// Cancel flips the booking to CANCELLED and refunds its credit. Clients may
// only cancel their own bookings and only before the session starts; admins
// may cancel any booking at any time. The cancel write is conditioned on the
// row still being BOOKED, and the refund only happens after that write
// visibly succeeds, so concurrent duplicate cancels refund at most once.
func (s *BookingService) Cancel(actorID uint, actorRole string, bookingID uint) (*CancelResult, error) {
	b, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if actorRole != domain.RoleAdmin {
		if b.UserID != actorID {
			return nil, ErrNotYourBooking
		}
		if !time.Now().Before(b.Session.StartsAt) {
			return nil, ErrSessionStarted
		}
	}

	res := &CancelResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.CancelIfBooked(tx, bookingID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyCancelled
		}
		if b.CreditTypeID != nil {
			if _, err := s.creditRepo.ApplyDeltaTx(tx, b.UserID, *b.CreditTypeID, 1, domain.ReasonRefund, nil); err != nil {
				return err
			}
			res.Refunded = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
