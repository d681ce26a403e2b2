package usecase

import (
	"context"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type ProgressView struct {
	domain.Progress
	Badges []*domain.Badge `json:"badges"`
}

type GetProgressUsecase struct {
	progress domain.ProgressRepository
	badges   domain.BadgeRepository
}

func NewGetProgressUsecase(progress domain.ProgressRepository, badges domain.BadgeRepository) *GetProgressUsecase {
	return &GetProgressUsecase{progress: progress, badges: badges}
}

func (uc *GetProgressUsecase) Execute(ctx context.Context, traineeID domain.ID) (*ProgressView, error) {
	if traineeID.IsZero() {
		return nil, domain.Required("trainee_id")
	}

	progress, err := uc.progress.GetProgress(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, domain.ErrNotFound
	}

	badges, err := uc.badges.GetBadges(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []*domain.Badge{}
	}

	return &ProgressView{Progress: *progress, Badges: badges}, nil
}
