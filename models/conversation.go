package models

import (
	"strings"
	"time"
)

// Conversation is a two-party message thread. Its id is deterministic: the
// creator's user id, a separator, then the other participant's id.
type Conversation struct {
	ID            string
	Participants  []string
	LastMessage   string
	LastMessageAt time.Time
	LastSenderID  string
	UnreadCounts  map[string]int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const ConversationIDSeparator = "_"

// ConversationID builds the deterministic document id, creator first.
func ConversationID(currentUserID, otherUserID string) string {
	return currentUserID + ConversationIDSeparator + otherUserID
}

// SplitConversationID recovers the two participant ids from a deterministic
// conversation id. ok is false when the id does not follow the scheme.
func SplitConversationID(id string) (a, b string, ok bool) {
	parts := strings.Split(id, ConversationIDSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func ConversationFromMap(m map[string]any) Conversation {
	return Conversation{
		ID:            asString(m, "_id"),
		Participants:  asStringSlice(m, "participants"),
		LastMessage:   asString(m, "lastMessage"),
		LastMessageAt: asTime(m, "lastMessageAt"),
		LastSenderID:  asString(m, "lastSenderId"),
		UnreadCounts:  asInt64Map(m, "unreadCounts"),
		CreatedAt:     asTime(m, "createdAt"),
		UpdatedAt:     asTime(m, "updatedAt"),
	}
}

func (c Conversation) ToMap() map[string]any {
	m := map[string]any{
		"participants": c.Participants,
		"lastMessage":  c.LastMessage,
		"lastSenderId": c.LastSenderID,
		"unreadCounts": c.UnreadCounts,
	}
	if !c.LastMessageAt.IsZero() {
		m["lastMessageAt"] = c.LastMessageAt
	}
	if !c.CreatedAt.IsZero() {
		m["createdAt"] = c.CreatedAt
	}
	if !c.UpdatedAt.IsZero() {
		m["updatedAt"] = c.UpdatedAt
	}
	return m
}

// OtherParticipant returns the participant that is not userID, or "" when the
// participant list does not contain a second party.
func (c Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

func (c Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
