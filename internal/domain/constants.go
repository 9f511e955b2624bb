package domain

const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

const (
	BookingStatusBooked    = "BOOKED"
	BookingStatusCancelled = "CANCELLED"
)

// Credit ledger reasons for system-generated entries (the field itself is free text).
const (
	ReasonBooking     = "booking"
	ReasonRefund      = "booking_cancelled_refund"
	ReasonAdminAdjust = "admin_adjustment"
)

const (
	ReminderTypeUpcomingSession = "UPCOMING_SESSION"
)

const (
	ReminderStatusPending = "PENDING"
	ReminderStatusSent    = "SENT"
	ReminderStatusFailed  = "FAILED"
)

const (
	// Minimum lead time between booking creation and session start, in hours.
	BookingWindowHours = 8
	// Points granted per attended booking.
	CheckinRewardPoints = 1
)

// Intake form types accepted by the submit endpoint.
var IntakeFormTypes = []string{"basic", "par_q", "goals"}

func ValidIntakeFormType(ft string) bool {
	for _, t := range IntakeFormTypes {
		if t == ft {
			return true
		}
	}
	return false
}
