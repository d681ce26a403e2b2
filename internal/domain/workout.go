package domain

import (
	"context"
	"time"
)

type Workout struct {
	WorkoutID     ID         `json:"workout_id,omitzero"`
	TrainerID     ID         `json:"trainer_id"`
	TraineeID     ID         `json:"trainee_id"`
	WorkoutName   string     `json:"workout_name"`
	Reps          int        `json:"reps"`
	Sets          int        `json:"sets"`
	Weight        float64    `json:"weight"`
	DateAssigned  time.Time  `json:"date_assigned"`
	DateCompleted *time.Time `json:"date_completed,omitempty"`
}

type WorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout *Workout) error
	// CompleteWorkout stamps date_completed and reports whether a row matched.
	CompleteWorkout(ctx context.Context, workoutID ID, completedAt time.Time) (bool, error)
	GetWorkoutsByTrainee(ctx context.Context, traineeID ID) ([]*Workout, error)
}
