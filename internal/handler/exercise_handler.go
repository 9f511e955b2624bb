package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studiohq/internal/models"
	"studiohq/internal/repository"
	"studiohq/pkg/cloudinary"
	"studiohq/pkg/video"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseHandler struct {
	workoutRepo *repository.WorkoutRepository
	cloud       cloudinary.Client
}

func NewExerciseHandler(workoutRepo *repository.WorkoutRepository, cloud cloudinary.Client) *ExerciseHandler {
	return &ExerciseHandler{workoutRepo: workoutRepo, cloud: cloud}
}

type exerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	YoutubeURL  string `json:"youtube_url"`
}

// Create stores an exercise. The YouTube URL is parsed into a canonical
// video id and embed URL; an unrecognized URL is kept verbatim with both
// derived fields empty.
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e := models.Exercise{
		Name:        req.Name,
		Description: req.Description,
		YoutubeURL:  req.YoutubeURL,
	}
	e.VideoID, e.EmbedURL = video.ParseYouTube(req.YoutubeURL)
	if err := h.workoutRepo.CreateExercise(&e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exercise": e})
}

func (h *ExerciseHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.workoutRepo.ListExercises(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": list})
}

func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	e, err := h.workoutRepo.GetExercise(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": e})
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	e, err := h.workoutRepo.GetExercise(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e.Name = req.Name
	e.Description = req.Description
	e.YoutubeURL = req.YoutubeURL
	e.VideoID, e.EmbedURL = video.ParseYouTube(req.YoutubeURL)
	if err := h.workoutRepo.UpdateExercise(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": e})
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.workoutRepo.DeleteExercise(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadImage attaches a demo image to an exercise via Cloudinary.
func (h *ExerciseHandler) UploadImage(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads not configured"})
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	e, err := h.workoutRepo.GetExercise(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	folder := "StudioHQ/exercises/" + strconv.FormatUint(uint64(e.ID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	e.ImageURL = url
	if err := h.workoutRepo.UpdateExercise(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": e})
}
