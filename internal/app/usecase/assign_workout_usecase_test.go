package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fardannozami/coaching-gateway/internal/app/usecase"
	"github.com/fardannozami/coaching-gateway/internal/domain"
)

func validAssignInput(trainerID, traineeID string) usecase.AssignWorkoutInput {
	name := "Squat"
	reps, sets := 10, 3
	weight := 60.5
	return usecase.AssignWorkoutInput{
		TrainerID:   domain.StringID(trainerID),
		TraineeID:   domain.StringID(traineeID),
		WorkoutName: &name,
		Reps:        &reps,
		Sets:        &sets,
		Weight:      &weight,
	}
}

func TestAssign_CreatesOneRow(t *testing.T) {
	store := newMockStore()
	uc := usecase.NewAssignWorkoutUsecase(store)

	before := time.Now()
	w, err := uc.Execute(context.Background(), validAssignInput("coach", "t1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(store.workouts) != 1 {
		t.Fatalf("expected 1 workout, got %d", len(store.workouts))
	}
	got := store.workouts[0]
	if got.WorkoutName != "Squat" || got.Reps != 10 || got.Sets != 3 || got.Weight != 60.5 {
		t.Errorf("unexpected workout %+v", got)
	}
	if got.DateAssigned.Before(before) {
		t.Errorf("date_assigned should be stamped at call time, got %v", got.DateAssigned)
	}
	if got.DateCompleted != nil {
		t.Error("date_completed must be empty on assignment")
	}
	if w.WorkoutID.IsZero() {
		t.Error("returned workout should carry the store-assigned id")
	}
}

func TestAssign_DuplicatePayloadsCreateTwoRows(t *testing.T) {
	store := newMockStore()
	uc := usecase.NewAssignWorkoutUsecase(store)
	ctx := context.Background()

	first, err := uc.Execute(ctx, validAssignInput("coach", "t1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := uc.Execute(ctx, validAssignInput("coach", "t1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(store.workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(store.workouts))
	}
	if first.WorkoutID.String() == second.WorkoutID.String() {
		t.Error("duplicate assignments should get distinct ids")
	}
}

func TestAssign_MissingFields(t *testing.T) {
	store := newMockStore()
	uc := usecase.NewAssignWorkoutUsecase(store)

	cases := []struct {
		field string
		strip func(*usecase.AssignWorkoutInput)
	}{
		{"trainer_id", func(in *usecase.AssignWorkoutInput) { in.TrainerID = domain.ID{} }},
		{"trainee_id", func(in *usecase.AssignWorkoutInput) { in.TraineeID = domain.ID{} }},
		{"workout_name", func(in *usecase.AssignWorkoutInput) { in.WorkoutName = nil }},
		{"reps", func(in *usecase.AssignWorkoutInput) { in.Reps = nil }},
		{"sets", func(in *usecase.AssignWorkoutInput) { in.Sets = nil }},
		{"weight", func(in *usecase.AssignWorkoutInput) { in.Weight = nil }},
	}

	for _, tc := range cases {
		in := validAssignInput("coach", "t1")
		tc.strip(&in)

		_, err := uc.Execute(context.Background(), in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.field, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("expected field %s, got %s", tc.field, verr.Field)
		}
	}

	if len(store.workouts) != 0 {
		t.Errorf("invalid input must not create rows, got %d", len(store.workouts))
	}
}

func TestAssign_ZeroValuesArePresent(t *testing.T) {
	store := newMockStore()
	uc := usecase.NewAssignWorkoutUsecase(store)

	in := validAssignInput("coach", "t1")
	zero := 0
	zeroWeight := 0.0
	in.Reps, in.Sets, in.Weight = &zero, &zero, &zeroWeight

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("zero values should be accepted: %v", err)
	}
}

func TestAssign_StoreError(t *testing.T) {
	store := newMockStore()
	boom := errors.New("insert failed")
	store.errs["CreateWorkout"] = boom

	_, err := usecase.NewAssignWorkoutUsecase(store).Execute(context.Background(), validAssignInput("coach", "t1"))
	if !errors.Is(err, boom) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestListWorkouts_FiltersByTrainee(t *testing.T) {
	store := newMockStore()
	assignOne(t, store, "t1")
	assignOne(t, store, "t2")
	assignOne(t, store, "t1")

	uc := usecase.NewListWorkoutsUsecase(store)
	got, err := uc.Execute(context.Background(), domain.StringID("t1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 workouts for t1, got %d", len(got))
	}

	none, err := uc.Execute(context.Background(), domain.StringID("nobody"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}
}
