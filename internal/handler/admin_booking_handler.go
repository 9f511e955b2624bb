package handler

import (
	"errors"
	"net/http"
	"strconv"

	"studiohq/internal/middleware"
	"studiohq/internal/repository"
	"studiohq/internal/service"
	"studiohq/internal/ws"

	"github.com/gin-gonic/gin"
)

type AdminBookingHandler struct {
	bookingSvc  *service.BookingService
	checkinSvc  *service.CheckinService
	bookingRepo *repository.BookingRepository
	feed        *ws.FeedHub
}

func NewAdminBookingHandler(
	bookingSvc *service.BookingService,
	checkinSvc *service.CheckinService,
	bookingRepo *repository.BookingRepository,
	feed *ws.FeedHub,
) *AdminBookingHandler {
	return &AdminBookingHandler{bookingSvc: bookingSvc, checkinSvc: checkinSvc, bookingRepo: bookingRepo, feed: feed}
}

func (h *AdminBookingHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	if v := c.Query("session_id"); v != "" {
		id, err := parseQueryID(c, v)
		if err != nil {
			return
		}
		list, err := h.bookingRepo.ListBySession(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": list})
		return
	}
	list, err := h.bookingRepo.ListAll(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

func (h *AdminBookingHandler) Checkin(c *gin.Context) {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return
	}
	actorID := middleware.GetUserID(c)
	res, err := h.checkinSvc.CheckIn(bookingID, &actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidBookingState):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrAlreadyCheckedIn):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "check-in failed"})
		}
		return
	}
	h.feed.Broadcast(ws.Event{
		Type:      "booking.checked_in",
		BookingID: bookingID,
	})
	c.JSON(http.StatusOK, res)
}

func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return
	}
	res, err := h.bookingSvc.Cancel(middleware.GetUserID(c), middleware.GetRole(c), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		}
		return
	}
	h.feed.Broadcast(ws.Event{
		Type:      "booking.cancelled",
		BookingID: bookingID,
	})
	c.JSON(http.StatusOK, gin.H{"refunded": res.Refunded})
}

func parseQueryID(c *gin.Context, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session_id"})
		return 0, err
	}
	return uint(id), nil
}
