package service

import (
	"errors"
	"fmt"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"gorm.io/gorm"
)

var ErrInvalidBookingState = errors.New("booking is not in a bookable state for check-in")

type CheckinService struct {
	db          *gorm.DB
	bookingRepo *repository.BookingRepository
	checkinRepo *repository.CheckinRepository
	rewardsRepo *repository.RewardsRepository
}

func NewCheckinService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	checkinRepo *repository.CheckinRepository,
	rewardsRepo *repository.RewardsRepository,
) *CheckinService {
	return &CheckinService{db: db, bookingRepo: bookingRepo, checkinRepo: checkinRepo, rewardsRepo: rewardsRepo}
}

type CheckinResult struct {
	CheckedInAt  time.Time `json:"checked_in_at"`
	RewardsDelta int       `json:"rewards_delta"`
}

// CheckIn marks a booking attended exactly once and grants the fixed reward.
// The check-in insert and the rewards insert run in one transaction; when a
// concurrent request wins the race on the unique booking_id index, the whole
// operation reports already-checked-in and nothing is applied.
func (s *CheckinService) CheckIn(bookingID uint, actorID *uint) (*CheckinResult, error) {
	b, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status != domain.BookingStatusBooked {
		return nil, ErrInvalidBookingState
	}
	if exists, err := s.checkinRepo.Exists(bookingID); err != nil {
		return nil, err
	} else if exists {
		return nil, repository.ErrAlreadyCheckedIn
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ci := &models.BookingCheckin{BookingID: bookingID, CheckedInAt: now, ActorID: actorID}
		if err := s.checkinRepo.ClaimTx(tx, ci); err != nil {
			return err
		}
		entry := &models.RewardsLedgerEntry{
			UserID:    b.UserID,
			Delta:     domain.CheckinRewardPoints,
			Reason:    fmt.Sprintf("attended session %d", b.SessionID),
			BookingID: &bookingID,
		}
		return s.rewardsRepo.AppendTx(tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &CheckinResult{CheckedInAt: now, RewardsDelta: domain.CheckinRewardPoints}, nil
}
