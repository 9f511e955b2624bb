package repository

import (
	"testing"

	"studiohq/internal/models"

	"github.com/stretchr/testify/require"
)

func seedExercise(t *testing.T, repo *WorkoutRepository, name string) *models.Exercise {
	t.Helper()
	e := &models.Exercise{Name: name}
	require.NoError(t, repo.CreateExercise(e))
	return e
}

func TestAddExerciseAutoSortOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkoutRepository(db)

	w := &models.Workout{Name: "Push Day"}
	require.NoError(t, repo.CreateWorkout(w))
	e1 := seedExercise(t, repo, "Bench Press")
	e2 := seedExercise(t, repo, "Overhead Press")
	e3 := seedExercise(t, repo, "Dips")

	we1, err := repo.AddExercise(w.ID, e1.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 0, we1.SortOrder)

	we2, err := repo.AddExercise(w.ID, e2.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 1, we2.SortOrder)

	explicit := 10
	we3, err := repo.AddExercise(w.ID, e3.ID, &explicit)
	require.NoError(t, err)
	require.Equal(t, 10, we3.SortOrder)
}

func TestAddExerciseDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkoutRepository(db)

	w := &models.Workout{Name: "Pull Day"}
	require.NoError(t, repo.CreateWorkout(w))
	e := seedExercise(t, repo, "Deadlift")

	_, err := repo.AddExercise(w.ID, e.ID, nil)
	require.NoError(t, err)
	_, err = repo.AddExercise(w.ID, e.ID, nil)
	require.ErrorIs(t, err, ErrExerciseInWorkout)

	entries, err := repo.ListWorkoutExercises(w.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRemoveExerciseNotInWorkout(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkoutRepository(db)

	w := &models.Workout{Name: "Leg Day"}
	require.NoError(t, repo.CreateWorkout(w))

	err := repo.RemoveExercise(w.ID, 999)
	require.ErrorIs(t, err, ErrExerciseNotInWorkout)
}

func TestReorderRewritesSortOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkoutRepository(db)

	w := &models.Workout{Name: "Full Body"}
	require.NoError(t, repo.CreateWorkout(w))
	e1 := seedExercise(t, repo, "Squat")
	e2 := seedExercise(t, repo, "Row")

	_, err := repo.AddExercise(w.ID, e1.ID, nil)
	require.NoError(t, err)
	_, err = repo.AddExercise(w.ID, e2.ID, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Reorder(w.ID, map[uint]int{e1.ID: 1, e2.ID: 0}))

	entries, err := repo.ListWorkoutExercises(w.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, e2.ID, entries[0].ExerciseID)
	require.Equal(t, e1.ID, entries[1].ExerciseID)
}

func TestAssignDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkoutRepository(db)

	w := &models.Workout{Name: "Starter"}
	require.NoError(t, repo.CreateWorkout(w))

	_, err := repo.Assign(w.ID, 4, nil)
	require.NoError(t, err)
	_, err = repo.Assign(w.ID, 4, nil)
	require.ErrorIs(t, err, ErrWorkoutAssigned)

	// Unassign then assign again is allowed.
	require.NoError(t, repo.Unassign(w.ID, 4))
	_, err = repo.Assign(w.ID, 4, nil)
	require.NoError(t, err)
}
