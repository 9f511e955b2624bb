package handler

import (
	"errors"
	"net/http"

	"studiohq/internal/middleware"
	"studiohq/internal/repository"
	"studiohq/internal/service"
	"studiohq/internal/ws"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingSvc  *service.BookingService
	bookingRepo *repository.BookingRepository
	feed        *ws.FeedHub
}

func NewBookingHandler(bookingSvc *service.BookingService, bookingRepo *repository.BookingRepository, feed *ws.FeedHub) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, bookingRepo: bookingRepo, feed: feed}
}

type createBookingRequest struct {
	SessionID    uint  `json:"session_id" binding:"required"`
	CreditTypeID *uint `json:"credit_type_id"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	res, err := h.bookingSvc.Create(userID, req.SessionID, req.CreditTypeID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	h.feed.Broadcast(ws.Event{
		Type:      "booking.created",
		BookingID: res.Booking.ID,
		SessionID: res.Booking.SessionID,
		UserID:    userID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"booking_id":  res.Booking.ID,
		"used_credit": res.UsedCredit,
		"booking":     res.Booking,
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return
	}
	res, err := h.bookingSvc.Cancel(middleware.GetUserID(c), middleware.GetRole(c), bookingID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	h.feed.Broadcast(ws.Event{
		Type:      "booking.cancelled",
		BookingID: bookingID,
		UserID:    middleware.GetUserID(c),
	})
	c.JSON(http.StatusOK, gin.H{"refunded": res.Refunded})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.bookingRepo.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// respondBookingError maps booking-flow sentinels to their status codes:
// 403 waiver, 404 missing, 409 idempotency conflicts, 400 everything else
// that is a business-rule rejection.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWaiverRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotYourBooking):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBookingWindowClosed),
		errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrSessionFull),
		errors.Is(err, service.ErrNoCreditsAvailable),
		errors.Is(err, service.ErrSessionStarted),
		errors.Is(err, repository.ErrInsufficientCredits):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking operation failed"})
	}
}
