package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fardannozami/coaching-gateway/internal/domain"
)

// Messages keep the full request body as JSON next to the two columns
// needed for filtering.
func (s *Store) CreateMessage(ctx context.Context, msg *domain.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	query := s.db.Rebind(`INSERT INTO messages (sender_id, receiver_id, body) VALUES (?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, msg.SenderID, msg.ReceiverID, string(body)); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *Store) GetMessages(ctx context.Context, senderID, receiverID domain.ID) ([]*domain.Message, error) {
	query := s.db.Rebind(`
		SELECT message_id, body FROM messages
		WHERE sender_id = ? AND receiver_id = ?
		ORDER BY message_id
	`)
	rows, err := s.db.QueryContext(ctx, query, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		var id int64
		var body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}

		var msg domain.Message
		if err := json.Unmarshal([]byte(body), &msg); err != nil {
			return nil, fmt.Errorf("decode message %d: %w", id, err)
		}
		if _, ok := msg.Fields["message_id"]; !ok {
			msg.Fields["message_id"] = json.RawMessage(strconv.FormatInt(id, 10))
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
