package repository

import (
	"errors"
	"time"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

var (
	ErrExerciseInWorkout    = errors.New("exercise already in workout")
	ErrWorkoutAssigned      = errors.New("workout already assigned to client")
	ErrExerciseNotInWorkout = errors.New("exercise not in workout")
)

type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Exercises

func (r *WorkoutRepository) CreateExercise(e *models.Exercise) error {
	return r.db.Create(e).Error
}

func (r *WorkoutRepository) GetExercise(id uint) (*models.Exercise, error) {
	var e models.Exercise
	err := r.db.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *WorkoutRepository) ListExercises(limit, offset int) ([]models.Exercise, error) {
	var list []models.Exercise
	err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *WorkoutRepository) UpdateExercise(e *models.Exercise) error {
	return r.db.Save(e).Error
}

func (r *WorkoutRepository) DeleteExercise(id uint) error {
	return r.db.Delete(&models.Exercise{}, id).Error
}

// Workouts

func (r *WorkoutRepository) CreateWorkout(w *models.Workout) error {
	return r.db.Create(w).Error
}

func (r *WorkoutRepository) GetWorkout(id uint) (*models.Workout, error) {
	var w models.Workout
	err := r.db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("workout_exercises.sort_order ASC")
	}).Preload("Exercises.Exercise").First(&w, id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkoutRepository) ListWorkouts(limit, offset int) ([]models.Workout, error) {
	var list []models.Workout
	err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *WorkoutRepository) UpdateWorkout(w *models.Workout) error {
	return r.db.Save(w).Error
}

func (r *WorkoutRepository) DeleteWorkout(id uint) error {
	return r.db.Delete(&models.Workout{}, id).Error
}

// Workout membership

// AddExercise places an exercise in a workout. sortOrder nil means append:
// max existing order + 1, or 0 for an empty workout. A duplicate pair insert
// is rejected by the unique index and reported as ErrExerciseInWorkout.
func (r *WorkoutRepository) AddExercise(workoutID, exerciseID uint, sortOrder *int) (*models.WorkoutExercise, error) {
	order := 0
	if sortOrder != nil {
		order = *sortOrder
	} else {
		var max *int
		err := r.db.Model(&models.WorkoutExercise{}).
			Where("workout_id = ?", workoutID).
			Select("MAX(sort_order)").Scan(&max).Error
		if err != nil {
			return nil, err
		}
		if max != nil {
			order = *max + 1
		}
	}
	we := &models.WorkoutExercise{WorkoutID: workoutID, ExerciseID: exerciseID, SortOrder: order}
	if err := r.db.Create(we).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrExerciseInWorkout
		}
		return nil, err
	}
	return we, nil
}

func (r *WorkoutRepository) RemoveExercise(workoutID, exerciseID uint) error {
	res := r.db.Where("workout_id = ? AND exercise_id = ?", workoutID, exerciseID).
		Delete(&models.WorkoutExercise{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExerciseNotInWorkout
	}
	return nil
}

// Reorder rewrites sort orders for a workout as one batch. Pairs for
// exercises not in the workout are ignored.
func (r *WorkoutRepository) Reorder(workoutID uint, orders map[uint]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for exerciseID, order := range orders {
			err := tx.Model(&models.WorkoutExercise{}).
				Where("workout_id = ? AND exercise_id = ?", workoutID, exerciseID).
				Update("sort_order", order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *WorkoutRepository) ListWorkoutExercises(workoutID uint) ([]models.WorkoutExercise, error) {
	var list []models.WorkoutExercise
	err := r.db.Where("workout_id = ?", workoutID).
		Preload("Exercise").Order("sort_order ASC").Find(&list).Error
	return list, err
}

// Assignments

func (r *WorkoutRepository) Assign(workoutID, userID uint, actorID *uint) (*models.ClientWorkout, error) {
	cw := &models.ClientWorkout{
		WorkoutID:  workoutID,
		UserID:     userID,
		AssignedAt: time.Now(),
		ActorID:    actorID,
	}
	if err := r.db.Create(cw).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWorkoutAssigned
		}
		return nil, err
	}
	return cw, nil
}

func (r *WorkoutRepository) Unassign(workoutID, userID uint) error {
	return r.db.Where("workout_id = ? AND user_id = ?", workoutID, userID).
		Delete(&models.ClientWorkout{}).Error
}

func (r *WorkoutRepository) ListAssignedByUser(userID uint) ([]models.ClientWorkout, error) {
	var list []models.ClientWorkout
	err := r.db.Where("user_id = ?", userID).
		Preload("Workout").Order("assigned_at DESC").Find(&list).Error
	return list, err
}

func (r *WorkoutRepository) ListAssignments(workoutID uint) ([]models.ClientWorkout, error) {
	var list []models.ClientWorkout
	err := r.db.Where("workout_id = ?", workoutID).
		Preload("User").Order("assigned_at DESC").Find(&list).Error
	return list, err
}
