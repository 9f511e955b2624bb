package models

import (
	"time"

	"gorm.io/gorm"
)

type Exercise struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:128;not null" json:"name"`
	Description string         `gorm:"size:2048" json:"description"`
	YoutubeURL  string         `gorm:"size:512" json:"youtube_url"`
	VideoID     *string        `gorm:"size:16" json:"video_id"`  // canonical 11-char id, nil when the URL didn't parse
	EmbedURL    *string        `gorm:"size:512" json:"embed_url"`
	ImageURL    string         `gorm:"size:512" json:"image_url"` // Cloudinary demo image
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Exercise) TableName() string {
	return "exercises"
}

type Workout struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:128;not null" json:"name"`
	Description string         `gorm:"size:2048" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Exercises []WorkoutExercise `gorm:"foreignKey:WorkoutID" json:"exercises,omitempty"`
}

func (Workout) TableName() string {
	return "workouts"
}

// WorkoutExercise places an exercise in a workout at most once, ordered by
// SortOrder (caller-specified or auto-appended).
type WorkoutExercise struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WorkoutID  uint      `gorm:"not null;uniqueIndex:idx_workout_exercises_pair" json:"workout_id"`
	ExerciseID uint      `gorm:"not null;uniqueIndex:idx_workout_exercises_pair" json:"exercise_id"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`

	Exercise Exercise `gorm:"foreignKey:ExerciseID" json:"exercise"`
}

func (WorkoutExercise) TableName() string {
	return "workout_exercises"
}

// ClientWorkout assigns a workout to a client at most once concurrently.
type ClientWorkout struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WorkoutID  uint      `gorm:"not null;uniqueIndex:idx_client_workouts_pair" json:"workout_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_client_workouts_pair;index" json:"user_id"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
	ActorID    *uint     `json:"actor_id,omitempty"`

	Workout Workout `gorm:"foreignKey:WorkoutID" json:"workout"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

func (ClientWorkout) TableName() string {
	return "client_workouts"
}
