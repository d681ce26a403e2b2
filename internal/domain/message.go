package domain

import (
	"context"
	"encoding/json"
)

// Message is a direct message between two users. Besides the sender and
// receiver, any other keys the caller sends are kept verbatim in Fields.
type Message struct {
	SenderID   ID
	ReceiverID ID
	Fields     map[string]json.RawMessage
}

func (m Message) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Fields)+2)
	for k, v := range m.Fields {
		out[k] = v
	}
	out["sender_id"] = m.SenderID
	out["receiver_id"] = m.ReceiverID
	return json.Marshal(out)
}

func (m *Message) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	msg := Message{Fields: make(map[string]json.RawMessage, len(raw))}
	for k, v := range raw {
		switch k {
		case "sender_id":
			if err := json.Unmarshal(v, &msg.SenderID); err != nil {
				return err
			}
		case "receiver_id":
			if err := json.Unmarshal(v, &msg.ReceiverID); err != nil {
				return err
			}
		default:
			msg.Fields[k] = v
		}
	}
	*m = msg
	return nil
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *Message) error
	// GetMessages matches sender and receiver exactly, in that direction only.
	GetMessages(ctx context.Context, senderID, receiverID ID) ([]*Message, error)
}

// Store is everything the service needs from the backing data store.
type Store interface {
	WorkoutRepository
	ProgressRepository
	BadgeRepository
	MessageRepository
}
