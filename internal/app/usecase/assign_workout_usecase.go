package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

// AssignWorkoutInput is the request body of a workout assignment. Pointer
// fields distinguish a missing key from a zero value.
type AssignWorkoutInput struct {
	TrainerID   domain.ID `json:"trainer_id"`
	TraineeID   domain.ID `json:"trainee_id"`
	WorkoutName *string   `json:"workout_name"`
	Reps        *int      `json:"reps"`
	Sets        *int      `json:"sets"`
	Weight      *float64  `json:"weight"`
}

func (in AssignWorkoutInput) Validate() error {
	switch {
	case in.TrainerID.IsZero():
		return domain.Required("trainer_id")
	case in.TraineeID.IsZero():
		return domain.Required("trainee_id")
	case in.WorkoutName == nil:
		return domain.Required("workout_name")
	case in.Reps == nil:
		return domain.Required("reps")
	case in.Sets == nil:
		return domain.Required("sets")
	case in.Weight == nil:
		return domain.Required("weight")
	}
	return nil
}

type AssignWorkoutUsecase struct {
	repo domain.WorkoutRepository
}

func NewAssignWorkoutUsecase(repo domain.WorkoutRepository) *AssignWorkoutUsecase {
	return &AssignWorkoutUsecase{repo: repo}
}

// Execute inserts a new workout row. Identical requests create distinct rows.
func (uc *AssignWorkoutUsecase) Execute(ctx context.Context, in AssignWorkoutInput) (*domain.Workout, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		TrainerID:    in.TrainerID,
		TraineeID:    in.TraineeID,
		WorkoutName:  *in.WorkoutName,
		Reps:         *in.Reps,
		Sets:         *in.Sets,
		Weight:       *in.Weight,
		DateAssigned: time.Now(),
	}

	if err := uc.repo.CreateWorkout(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}
