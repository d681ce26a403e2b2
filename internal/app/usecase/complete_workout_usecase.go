package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type CompleteWorkoutInput struct {
	WorkoutID domain.ID `json:"workout_id"`
	TraineeID domain.ID `json:"trainee_id"`
}

func (in CompleteWorkoutInput) Validate() error {
	switch {
	case in.WorkoutID.IsZero():
		return domain.Required("workout_id")
	case in.TraineeID.IsZero():
		return domain.Required("trainee_id")
	}
	return nil
}

type CompleteWorkoutResult struct {
	// WorkoutFound is false when workout_id matched no row. That is not an error.
	WorkoutFound bool
	// Progress is nil when the trainee has no progress row.
	Progress *domain.Progress
	// Badge is set when this completion crossed a level threshold.
	Badge *domain.Badge
}

type CompleteWorkoutUsecase struct {
	workouts domain.WorkoutRepository
	progress domain.ProgressRepository
	badges   domain.BadgeRepository
}

func NewCompleteWorkoutUsecase(workouts domain.WorkoutRepository, progress domain.ProgressRepository, badges domain.BadgeRepository) *CompleteWorkoutUsecase {
	return &CompleteWorkoutUsecase{
		workouts: workouts,
		progress: progress,
		badges:   badges,
	}
}

func (uc *CompleteWorkoutUsecase) Execute(ctx context.Context, in CompleteWorkoutInput) (*CompleteWorkoutResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	found, err := uc.workouts.CompleteWorkout(ctx, in.WorkoutID, time.Now())
	if err != nil {
		return nil, err
	}
	result := &CompleteWorkoutResult{WorkoutFound: found}

	// progress_value only grows, so the value read doubles as a version for
	// the conditional write. A lost write means another completion landed,
	// so retry until ours lands or the caller gives up.
	for attempt := 0; ; attempt++ {
		if attempt > 0 && ctx.Err() != nil {
			return nil, retryError(ctx, attempt, ctx.Err())
		}

		current, err := uc.progress.GetProgress(ctx, in.TraineeID)
		if err != nil {
			return nil, retryError(ctx, attempt, err)
		}
		if current == nil {
			return result, nil
		}

		next, leveled := current.Advance()
		ok, err := uc.progress.UpdateProgressIfUnchanged(ctx, &next, current.ProgressValue)
		if err != nil {
			return nil, retryError(ctx, attempt, err)
		}
		if !ok {
			continue
		}

		result.Progress = &next
		if leveled {
			badge := domain.LevelBadge(in.TraineeID, next.Level)
			if err := uc.badges.CreateBadge(ctx, badge); err != nil {
				return nil, err
			}
			result.Badge = badge
		}
		return result, nil
	}
}

// retryError reports err as a progress conflict when the caller gave up after
// at least one lost write.
func retryError(ctx context.Context, attempt int, err error) error {
	if attempt > 0 && ctx.Err() != nil {
		return fmt.Errorf("%w: %w", domain.ErrProgressConflict, ctx.Err())
	}
	return err
}
