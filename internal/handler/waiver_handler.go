package handler

import (
	"errors"
	"net/http"
	"time"

	"studiohq/internal/middleware"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
)

type WaiverHandler struct {
	waiverRepo *repository.WaiverRepository
}

func NewWaiverHandler(waiverRepo *repository.WaiverRepository) *WaiverHandler {
	return &WaiverHandler{waiverRepo: waiverRepo}
}

// GetActive returns the current waiver text plus whether the caller has
// already signed it.
func (h *WaiverHandler) GetActive(c *gin.Context) {
	w, err := h.waiverRepo.GetActive()
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveWaiver) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active waiver"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	signed, err := h.waiverRepo.HasSigned(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"waiver": w, "signed": signed})
}

// Sign records a signature against the active waiver. Signing again is
// allowed and just records another signature row.
func (h *WaiverHandler) Sign(c *gin.Context) {
	w, err := h.waiverRepo.GetActive()
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveWaiver) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active waiver"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	sig := models.WaiverSignature{
		WaiverID: w.ID,
		UserID:   middleware.GetUserID(c),
		SignedAt: time.Now(),
	}
	if err := h.waiverRepo.Sign(&sig); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signed": true, "signed_at": sig.SignedAt})
}

type createWaiverRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// AdminCreate publishes a new waiver version. The newest active row wins, so
// creating a waiver supersedes earlier ones and clients must sign again.
func (h *WaiverHandler) AdminCreate(c *gin.Context) {
	var req createWaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w := models.Waiver{Title: req.Title, Body: req.Body, Active: true}
	if err := h.waiverRepo.Create(&w); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"waiver": w})
}
