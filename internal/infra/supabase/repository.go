package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

const (
	tableWorkouts = "workouts"
	tableProgress = "progress"
	tableBadges   = "badges"
	tableMessages = "messages"
)

// Repository stores the coaching data in Supabase tables.
type Repository struct {
	client *Client
}

var _ domain.Store = (*Repository)(nil)

func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// rows decodes a successful response into out.
func rows(resp *Response, err error, out any) error {
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// =============================================================================
// Workouts
// =============================================================================

// workoutRow mirrors the table. Timestamp columns may come back without a
// zone, so they are parsed by hand.
type workoutRow struct {
	WorkoutID     domain.ID `json:"workout_id"`
	TrainerID     domain.ID `json:"trainer_id"`
	TraineeID     domain.ID `json:"trainee_id"`
	WorkoutName   string    `json:"workout_name"`
	Reps          int       `json:"reps"`
	Sets          int       `json:"sets"`
	Weight        float64   `json:"weight"`
	DateAssigned  string    `json:"date_assigned"`
	DateCompleted *string   `json:"date_completed"`
}

func (r workoutRow) toDomain() (*domain.Workout, error) {
	assigned, err := parseTimestamp(r.DateAssigned)
	if err != nil {
		return nil, err
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
	if r.DateCompleted != nil && *r.DateCompleted != "" {
		completed, err := parseTimestamp(*r.DateCompleted)
		if err != nil {
			return nil, err
		}
		w.DateCompleted = &completed
	}
	return w, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (r *Repository) CreateWorkout(ctx context.Context, workout *domain.Workout) error {
	// workout_id is left out of the payload while zero; the table assigns it.
	resp, err := r.client.Table(tableWorkouts).Insert(ctx, workout)

	var created []workoutRow
	if err := rows(resp, err, &created); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	if len(created) > 0 {
		workout.WorkoutID = created[0].WorkoutID
	}
	return nil
}

func (r *Repository) CompleteWorkout(ctx context.Context, workoutID domain.ID, completedAt time.Time) (bool, error) {
	// The project owns the workouts schema, so the id goes out as given
	// (bigint or uuid keys both work).
	resp, err := r.client.Table(tableWorkouts).
		Eq("workout_id", workoutID).
		Update(ctx, map[string]any{"date_completed": completedAt.Format(time.RFC3339Nano)})

	var updated []workoutRow
	if err := rows(resp, err, &updated); err != nil {
		return false, fmt.Errorf("complete workout: %w", err)
	}
	return len(updated) > 0, nil
}

func (r *Repository) GetWorkoutsByTrainee(ctx context.Context, traineeID domain.ID) ([]*domain.Workout, error) {
	resp, err := r.client.Table(tableWorkouts).
		Select("*").
		Eq("trainee_id", traineeID).
		Order("workout_id", true).
		Get(ctx)

	var found []workoutRow
	if err := rows(resp, err, &found); err != nil {
		return nil, fmt.Errorf("select workouts: %w", err)
	}

	workouts := make([]*domain.Workout, 0, len(found))
	for _, row := range found {
		w, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// =============================================================================
// Progress & badges
// =============================================================================

func (r *Repository) GetProgress(ctx context.Context, traineeID domain.ID) (*domain.Progress, error) {
	resp, err := r.client.Table(tableProgress).
		Select("trainee_id,progress_value,level").
		Eq("trainee_id", traineeID).
		Limit(1).
		Get(ctx)

	var found []*domain.Progress
	if err := rows(resp, err, &found); err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *Repository) UpdateProgressIfUnchanged(ctx context.Context, progress *domain.Progress, previousValue int) (bool, error) {
	resp, err := r.client.Table(tableProgress).
		Eq("trainee_id", progress.TraineeID).
		Eq("progress_value", previousValue).
		Update(ctx, map[string]int{
			"progress_value": progress.ProgressValue,
			"level":          progress.Level,
		})

	var updated []*domain.Progress
	if err := rows(resp, err, &updated); err != nil {
		return false, fmt.Errorf("update progress: %w", err)
	}
	return len(updated) == 1, nil
}

func (r *Repository) GetAllProgress(ctx context.Context) ([]*domain.Progress, error) {
	resp, err := r.client.Table(tableProgress).
		Select("trainee_id,progress_value,level").
		Get(ctx)

	var all []*domain.Progress
	if err := rows(resp, err, &all); err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	return all, nil
}

func (r *Repository) CreateBadge(ctx context.Context, badge *domain.Badge) error {
	resp, err := r.client.Table(tableBadges).Insert(ctx, badge)
	if err := rows(resp, err, nil); err != nil {
		return fmt.Errorf("insert badge: %w", err)
	}
	return nil
}

func (r *Repository) GetBadges(ctx context.Context, traineeID domain.ID) ([]*domain.Badge, error) {
	resp, err := r.client.Table(tableBadges).
		Select("trainee_id,badge_name").
		Eq("trainee_id", traineeID).
		Get(ctx)

	var badges []*domain.Badge
	if err := rows(resp, err, &badges); err != nil {
		return nil, fmt.Errorf("select badges: %w", err)
	}
	return badges, nil
}

// =============================================================================
// Messages
// =============================================================================

// CreateMessage inserts the message body as-is; every key becomes a column.
func (r *Repository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	resp, err := r.client.Table(tableMessages).Insert(ctx, msg)
	if err := rows(resp, err, nil); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *Repository) GetMessages(ctx context.Context, senderID, receiverID domain.ID) ([]*domain.Message, error) {
	resp, err := r.client.Table(tableMessages).
		Select("*").
		Eq("sender_id", senderID).
		Eq("receiver_id", receiverID).
		Get(ctx)

	messages := []*domain.Message{}
	if err := rows(resp, err, &messages); err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	return messages, nil
}
