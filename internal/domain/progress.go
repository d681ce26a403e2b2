package domain

import (
	"context"
	"fmt"
)

const (
	// ProgressIncrement is added to a trainee's progress for each completed workout.
	ProgressIncrement = 10
	// LevelThreshold is the progress interval at which a trainee levels up.
	LevelThreshold = 100
)

type Progress struct {
	TraineeID     ID  `json:"trainee_id" db:"trainee_id"`
	ProgressValue int `json:"progress_value" db:"progress_value"`
	Level         int `json:"level" db:"level"`
}

// Advance returns the progress after one more completed workout and
// whether that completion landed on a level boundary.
func (p Progress) Advance() (Progress, bool) {
	next := p
	next.ProgressValue += ProgressIncrement
	if next.ProgressValue%LevelThreshold == 0 {
		next.Level++
		return next, true
	}
	return next, false
}

type Badge struct {
	TraineeID ID     `json:"trainee_id" db:"trainee_id"`
	BadgeName string `json:"badge_name" db:"badge_name"`
}

func LevelBadge(traineeID ID, level int) *Badge {
	return &Badge{
		TraineeID: traineeID,
		BadgeName: fmt.Sprintf("Level %d Achieved", level),
	}
}

type ProgressRepository interface {
	// GetProgress returns nil, nil when the trainee has no progress row.
	GetProgress(ctx context.Context, traineeID ID) (*Progress, error)
	// UpdateProgressIfUnchanged writes progress_value and level only while
	// the stored progress_value still equals previousValue.
	UpdateProgressIfUnchanged(ctx context.Context, progress *Progress, previousValue int) (bool, error)
	GetAllProgress(ctx context.Context) ([]*Progress, error)
}

type BadgeRepository interface {
	CreateBadge(ctx context.Context, badge *Badge) error
	GetBadges(ctx context.Context, traineeID ID) ([]*Badge, error)
}
