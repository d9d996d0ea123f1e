package models

import "time"

// Message is one entry in a conversation's append-only message log.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Text           string
	CreatedAt      time.Time
	ReadBy         []string
}

func MessageFromMap(m map[string]any) Message {
	return Message{
		ID:             asString(m, "_id"),
		ConversationID: asString(m, "conversationId"),
		SenderID:       asString(m, "senderId"),
		Text:           asString(m, "text"),
		CreatedAt:      asTime(m, "createdAt"),
		ReadBy:         asStringSlice(m, "readBy"),
	}
}

func (msg Message) ToMap() map[string]any {
	m := map[string]any{
		"conversationId": msg.ConversationID,
		"senderId":       msg.SenderID,
		"text":           msg.Text,
		"readBy":         msg.ReadBy,
	}
	if !msg.CreatedAt.IsZero() {
		m["createdAt"] = msg.CreatedAt
	}
	return m
}
