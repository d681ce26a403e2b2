package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

func (s *Store) GetProgress(ctx context.Context, traineeID domain.ID) (*domain.Progress, error) {
	query := s.db.Rebind(`SELECT trainee_id, progress_value, level FROM progress WHERE trainee_id = ?`)

	var progress domain.Progress
	err := s.db.GetContext(ctx, &progress, query, traineeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	return &progress, nil
}

func (s *Store) UpdateProgressIfUnchanged(ctx context.Context, progress *domain.Progress, previousValue int) (bool, error) {
	query := s.db.Rebind(`
		UPDATE progress SET progress_value = ?, level = ?
		WHERE trainee_id = ? AND progress_value = ?
	`)
	res, err := s.db.ExecContext(ctx, query, progress.ProgressValue, progress.Level, progress.TraineeID, previousValue)
	if err != nil {
		return false, fmt.Errorf("update progress: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) GetAllProgress(ctx context.Context) ([]*domain.Progress, error) {
	var progress []*domain.Progress
	err := s.db.SelectContext(ctx, &progress, `SELECT trainee_id, progress_value, level FROM progress`)
	if err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}
	return progress, nil
}

func (s *Store) CreateBadge(ctx context.Context, badge *domain.Badge) error {
	query := s.db.Rebind(`INSERT INTO badges (trainee_id, badge_name) VALUES (?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, badge.TraineeID, badge.BadgeName); err != nil {
		return fmt.Errorf("insert badge: %w", err)
	}
	return nil
}

func (s *Store) GetBadges(ctx context.Context, traineeID domain.ID) ([]*domain.Badge, error) {
	query := s.db.Rebind(`SELECT trainee_id, badge_name FROM badges WHERE trainee_id = ? ORDER BY badge_id`)

	var badges []*domain.Badge
	if err := s.db.SelectContext(ctx, &badges, query, traineeID); err != nil {
		return nil, fmt.Errorf("select badges: %w", err)
	}
	return badges, nil
}
