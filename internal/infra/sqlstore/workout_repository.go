package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type workoutRow struct {
	WorkoutID     domain.ID      `db:"workout_id"`
	TrainerID     domain.ID      `db:"trainer_id"`
	TraineeID     domain.ID      `db:"trainee_id"`
	WorkoutName   string         `db:"workout_name"`
	Reps          int            `db:"reps"`
	Sets          int            `db:"sets"`
	Weight        float64        `db:"weight"`
	DateAssigned  string         `db:"date_assigned"`
	DateCompleted sql.NullString `db:"date_completed"`

	// Ids are stored as text; these remember which ones arrived as JSON
	// numbers so they are written back the same way.
	TrainerNumeric int `db:"trainer_id_numeric"`
	TraineeNumeric int `db:"trainee_id_numeric"`
}

func numericFlag(id domain.ID) int {
	if id.IsNumber() {
		return 1
	}
	return 0
}

func (r workoutRow) toDomain() (*domain.Workout, error) {
	assigned, err := parseTime(r.DateAssigned)
	if err != nil {
		return nil, err
	}

	if r.TrainerNumeric != 0 {
		r.TrainerID = r.TrainerID.AsNumber()
	}
	if r.TraineeNumeric != 0 {
		r.TraineeID = r.TraineeID.AsNumber()
	}

	w := &domain.Workout{
		WorkoutID:    r.WorkoutID,
		TrainerID:    r.TrainerID,
		TraineeID:    r.TraineeID,
		WorkoutName:  r.WorkoutName,
		Reps:         r.Reps,
		Sets:         r.Sets,
		Weight:       r.Weight,
		DateAssigned: assigned,
	}
	if r.DateCompleted.Valid {
		completed, err := parseTime(r.DateCompleted.String)
		if err != nil {
			return nil, err
		}
		w.DateCompleted = &completed
	}
	return w, nil
}

func (s *Store) CreateWorkout(ctx context.Context, workout *domain.Workout) error {
	query := s.db.Rebind(`
		INSERT INTO workouts (trainer_id, trainee_id, workout_name, reps, sets, weight, date_assigned,
			trainer_id_numeric, trainee_id_numeric)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING workout_id
	`)

	var id int64
	err := s.db.QueryRowxContext(ctx, query,
		workout.TrainerID, workout.TraineeID, workout.WorkoutName,
		workout.Reps, workout.Sets, workout.Weight, formatTime(workout.DateAssigned),
		numericFlag(workout.TrainerID), numericFlag(workout.TraineeID),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	workout.WorkoutID = domain.IntID(id)
	return nil
}

func (s *Store) CompleteWorkout(ctx context.Context, workoutID domain.ID, completedAt time.Time) (bool, error) {
	// workout_id is an integer identity; anything else cannot match a row.
	key, ok := workoutID.Int64()
	if !ok {
		return false, nil
	}

	query := s.db.Rebind(`UPDATE workouts SET date_completed = ? WHERE workout_id = ?`)
	res, err := s.db.ExecContext(ctx, query, formatTime(completedAt), key)
	if err != nil {
		return false, fmt.Errorf("complete workout: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetWorkoutsByTrainee(ctx context.Context, traineeID domain.ID) ([]*domain.Workout, error) {
	query := s.db.Rebind(`
		SELECT workout_id, trainer_id, trainee_id, workout_name, reps, sets, weight, date_assigned, date_completed,
			trainer_id_numeric, trainee_id_numeric
		FROM workouts WHERE trainee_id = ? ORDER BY workout_id
	`)

	var rows []workoutRow
	if err := s.db.SelectContext(ctx, &rows, query, traineeID); err != nil {
		return nil, fmt.Errorf("select workouts: %w", err)
	}

	workouts := make([]*domain.Workout, 0, len(rows))
	for _, row := range rows {
		w, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}
