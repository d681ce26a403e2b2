package usecase

import (
	"context"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type ListWorkoutsUsecase struct {
	repo domain.WorkoutRepository
}

func NewListWorkoutsUsecase(repo domain.WorkoutRepository) *ListWorkoutsUsecase {
	return &ListWorkoutsUsecase{repo: repo}
}

func (uc *ListWorkoutsUsecase) Execute(ctx context.Context, traineeID domain.ID) ([]*domain.Workout, error) {
	if traineeID.IsZero() {
		return nil, domain.Required("trainee_id")
	}

	workouts, err := uc.repo.GetWorkoutsByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []*domain.Workout{}
	}
	return workouts, nil
}
