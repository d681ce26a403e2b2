package usecase

import (
	"context"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

type SendMessageUsecase struct {
	repo domain.MessageRepository
}

func NewSendMessageUsecase(repo domain.MessageRepository) *SendMessageUsecase {
	return &SendMessageUsecase{repo: repo}
}

// Execute stores the message body as received.
func (uc *SendMessageUsecase) Execute(ctx context.Context, msg *domain.Message) error {
	if msg.SenderID.IsZero() {
		return domain.Required("sender_id")
	}
	if msg.ReceiverID.IsZero() {
		return domain.Required("receiver_id")
	}
	return uc.repo.CreateMessage(ctx, msg)
}
