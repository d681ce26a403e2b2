package usecase

import (
	"context"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type GetMessagesUsecase struct {
	repo domain.MessageRepository
}

func NewGetMessagesUsecase(repo domain.MessageRepository) *GetMessagesUsecase {
	return &GetMessagesUsecase{repo: repo}
}

// Execute returns the messages sent from senderID to receiverID. Messages in
// the opposite direction are not included.
func (uc *GetMessagesUsecase) Execute(ctx context.Context, senderID, receiverID domain.ID) ([]*domain.Message, error) {
	if senderID.IsZero() {
		return nil, domain.Required("sender_id")
	}
	if receiverID.IsZero() {
		return nil, domain.Required("receiver_id")
	}

	messages, err := uc.repo.GetMessages(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return messages, nil
}
