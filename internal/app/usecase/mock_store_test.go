package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

// mockStore implements domain.Store in memory for testing
type mockStore struct {
	mu sync.Mutex

	workouts      []*domain.Workout
	nextWorkoutID int64
	progress      map[string]*domain.Progress
	badges        []*domain.Badge
	messages      []*domain.Message

	// errs makes the named operation fail with the given error
	errs map[string]error
	// rejectCAS makes every conditional progress update lose
	rejectCAS bool
	// afterGetProgress runs outside the lock after each progress read
	afterGetProgress func()
}

func newMockStore() *mockStore {
	return &mockStore{
		progress: make(map[string]*domain.Progress),
		errs:     make(map[string]error),
	}
}

func (m *mockStore) seedProgress(traineeID string, value, level int) {
	m.progress[traineeID] = &domain.Progress{
		TraineeID:     domain.StringID(traineeID),
		ProgressValue: value,
		Level:         level,
	}
}

func (m *mockStore) CreateWorkout(ctx context.Context, workout *domain.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CreateWorkout"]; err != nil {
		return err
	}
	m.nextWorkoutID++
	workout.WorkoutID = domain.IntID(m.nextWorkoutID)
	stored := *workout
	m.workouts = append(m.workouts, &stored)
	return nil
}

func (m *mockStore) CompleteWorkout(ctx context.Context, workoutID domain.ID, completedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CompleteWorkout"]; err != nil {
		return false, err
	}
	for _, w := range m.workouts {
		if w.WorkoutID.String() == workoutID.String() {
			at := completedAt
			w.DateCompleted = &at
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) GetWorkoutsByTrainee(ctx context.Context, traineeID domain.ID) ([]*domain.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Workout
	for _, w := range m.workouts {
		if w.TraineeID.String() == traineeID.String() {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockStore) GetProgress(ctx context.Context, traineeID domain.ID) (*domain.Progress, error) {
	m.mu.Lock()
	if err := m.errs["GetProgress"]; err != nil {
		m.mu.Unlock()
		return nil, err
	}
	var out *domain.Progress
	if p, ok := m.progress[traineeID.String()]; ok {
		cp := *p
		out = &cp
	}
	hook := m.afterGetProgress
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (m *mockStore) UpdateProgressIfUnchanged(ctx context.Context, progress *domain.Progress, previousValue int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejectCAS {
		return false, nil
	}
	current, ok := m.progress[progress.TraineeID.String()]
	if !ok || current.ProgressValue != previousValue {
		return false, nil
	}
	current.ProgressValue = progress.ProgressValue
	current.Level = progress.Level
	return true, nil
}

func (m *mockStore) GetAllProgress(ctx context.Context) ([]*domain.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Progress
	for _, p := range m.progress {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockStore) CreateBadge(ctx context.Context, badge *domain.Badge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CreateBadge"]; err != nil {
		return err
	}
	m.badges = append(m.badges, badge)
	return nil
}

func (m *mockStore) GetBadges(ctx context.Context, traineeID domain.ID) ([]*domain.Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Badge
	for _, b := range m.badges {
		if b.TraineeID.String() == traineeID.String() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockStore) CreateMessage(ctx context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs["CreateMessage"]; err != nil {
		return err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockStore) GetMessages(ctx context.Context, senderID, receiverID domain.ID) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for _, msg := range m.messages {
		if msg.SenderID.String() == senderID.String() && msg.ReceiverID.String() == receiverID.String() {
			out = append(out, msg)
		}
	}
	return out, nil
}

var _ domain.Store = (*mockStore)(nil)
