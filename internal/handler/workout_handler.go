package handler

import (
	"errors"
	"net/http"

	"studiohq/internal/middleware"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WorkoutHandler struct {
	workoutRepo *repository.WorkoutRepository
	userRepo    *repository.UserRepository
}

func NewWorkoutHandler(workoutRepo *repository.WorkoutRepository, userRepo *repository.UserRepository) *WorkoutHandler {
	return &WorkoutHandler{workoutRepo: workoutRepo, userRepo: userRepo}
}

type workoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *WorkoutHandler) Create(c *gin.Context) {
	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w := models.Workout{Name: req.Name, Description: req.Description}
	if err := h.workoutRepo.CreateWorkout(&w); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workout": w})
}

func (h *WorkoutHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.workoutRepo.ListWorkouts(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": list})
}

// Get returns the workout with its exercises in sort order.
func (h *WorkoutHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	w, err := h.workoutRepo.GetWorkout(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": w})
}

func (h *WorkoutHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	w, err := h.workoutRepo.GetWorkout(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w.Name = req.Name
	w.Description = req.Description
	if err := h.workoutRepo.UpdateWorkout(w); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": w})
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.workoutRepo.DeleteWorkout(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type addExerciseRequest struct {
	ExerciseID uint `json:"exercise_id" binding:"required"`
	SortOrder  *int `json:"sort_order"`
}

// AddExercise places an exercise in the workout, appending at the end unless
// a sort order is given.
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req addExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.workoutRepo.GetWorkout(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
		return
	}
	if _, err := h.workoutRepo.GetExercise(req.ExerciseID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
		return
	}
	we, err := h.workoutRepo.AddExercise(id, req.ExerciseID, req.SortOrder)
	if err != nil {
		if errors.Is(err, repository.ErrExerciseInWorkout) {
			c.JSON(http.StatusConflict, gin.H{"error": "exercise already in workout"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": we})
}

func (h *WorkoutHandler) RemoveExercise(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	exerciseID, err := parseID(c, "exercise_id")
	if err != nil {
		return
	}
	if err := h.workoutRepo.RemoveExercise(id, exerciseID); err != nil {
		if errors.Is(err, repository.ErrExerciseNotInWorkout) {
			c.JSON(http.StatusNotFound, gin.H{"error": "exercise not in workout"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "remove failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

type reorderRequest struct {
	Orders []struct {
		ExerciseID uint `json:"exercise_id" binding:"required"`
		SortOrder  int  `json:"sort_order"`
	} `json:"orders" binding:"required"`
}

// Reorder replaces the sort orders of the workout's exercises in one batch.
func (h *WorkoutHandler) Reorder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders := make(map[uint]int, len(req.Orders))
	for _, o := range req.Orders {
		orders[o.ExerciseID] = o.SortOrder
	}
	if err := h.workoutRepo.Reorder(id, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reorder failed"})
		return
	}
	entries, err := h.workoutRepo.ListWorkoutExercises(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": entries})
}

type assignRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Assign gives a client a workout. Assigning the same workout twice is a
// conflict.
func (h *WorkoutHandler) Assign(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.workoutRepo.GetWorkout(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
		return
	}
	user, err := h.userRepo.GetByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	actorID := middleware.GetUserID(c)
	cw, err := h.workoutRepo.Assign(id, user.ID, &actorID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkoutAssigned) {
			c.JSON(http.StatusConflict, gin.H{"error": "workout already assigned"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assign failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignment": cw})
}

func (h *WorkoutHandler) Unassign(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	userID, err := parseID(c, "user_id")
	if err != nil {
		return
	}
	if err := h.workoutRepo.Unassign(id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unassign failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unassigned": true})
}

func (h *WorkoutHandler) ListAssignments(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	list, err := h.workoutRepo.ListAssignments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cw := range list {
		out = append(out, gin.H{
			"user_id":     cw.UserID,
			"user_email":  cw.User.Email,
			"assigned_at": cw.AssignedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"assignments": out})
}

// ListMine returns the workouts assigned to the caller.
func (h *WorkoutHandler) ListMine(c *gin.Context) {
	list, err := h.workoutRepo.ListAssignedByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": list})
}

// GetMine returns one assigned workout in full, exercises included. Clients
// only see workouts assigned to them.
func (h *WorkoutHandler) GetMine(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	userID := middleware.GetUserID(c)
	assigned, err := h.workoutRepo.ListAssignedByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	found := false
	for _, cw := range assigned {
		if cw.WorkoutID == id {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
		return
	}
	w, err := h.workoutRepo.GetWorkout(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": w})
}
