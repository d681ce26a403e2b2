package usecase

import (
	"context"
	"sort"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	TraineeID     domain.ID `json:"trainee_id"`
	Level         int       `json:"level"`
	ProgressValue int       `json:"progress_value"`
}

type GetLeaderboardUsecase struct {
	repo domain.ProgressRepository
}

func NewGetLeaderboardUsecase(repo domain.ProgressRepository) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{repo: repo}
}

// Execute ranks every trainee by level, then by progress value. Trainees
// with equal standing share a rank.
func (uc *GetLeaderboardUsecase) Execute(ctx context.Context) ([]LeaderboardEntry, error) {
	progress, err := uc.repo.GetAllProgress(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(progress, func(i, j int) bool {
		if progress[i].Level != progress[j].Level {
			return progress[i].Level > progress[j].Level
		}
		if progress[i].ProgressValue != progress[j].ProgressValue {
			return progress[i].ProgressValue > progress[j].ProgressValue
		}
		return progress[i].TraineeID.String() < progress[j].TraineeID.String()
	})

	entries := make([]LeaderboardEntry, 0, len(progress))
	for i, p := range progress {
		rank := i + 1
		if i > 0 {
			prev := entries[i-1]
			if prev.Level == p.Level && prev.ProgressValue == p.ProgressValue {
				rank = prev.Rank
			}
		}
		entries = append(entries, LeaderboardEntry{
			Rank:          rank,
			TraineeID:     p.TraineeID,
			Level:         p.Level,
			ProgressValue: p.ProgressValue,
		})
	}
	return entries, nil
}
