package models

import (
	"testing"
	"time"
)

func TestConversationIDIsDeterministic(t *testing.T) {
	id := ConversationID("alice", "bob")
	if id != "alice_bob" {
		t.Errorf("got %q", id)
	}

	a, b, ok := SplitConversationID(id)
	if !ok || a != "alice" || b != "bob" {
		t.Errorf("split failed: %q %q %v", a, b, ok)
	}
}

func TestSplitConversationIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "justone", "a_b_c", "_b", "a_"} {
		if _, _, ok := SplitConversationID(id); ok {
			t.Errorf("id %q should not split", id)
		}
	}
}

func TestConversationParticipants(t *testing.T) {
	c := Conversation{Participants: []string{"alice", "bob"}}
	if !c.HasParticipant("alice") || c.HasParticipant("carol") {
		t.Error("participant membership wrong")
	}
	if c.OtherParticipant("alice") != "bob" {
		t.Error("other participant wrong")
	}
	if c.OtherParticipant("carol") != "alice" {
		t.Error("other participant for a non-member should return the first member")
	}
}

func TestConversationFromMapUnreadCounts(t *testing.T) {
	c := ConversationFromMap(map[string]any{
		"participants": []any{"alice", "bob"},
		"unreadCounts": map[string]any{"alice": int32(0), "bob": int64(3)},
		"lastMessage":  "see you then",
	})
	if c.UnreadCounts["bob"] != 3 || c.UnreadCounts["alice"] != 0 {
		t.Errorf("unread counts wrong: %v", c.UnreadCounts)
	}
	if len(c.Participants) != 2 {
		t.Errorf("participants wrong: %v", c.Participants)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	in := Message{
		ConversationID: "alice_bob",
		SenderID:       "alice",
		Text:           "hello",
		CreatedAt:      time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		ReadBy:         []string{"alice"},
	}
	out := MessageFromMap(in.ToMap())
	if out.SenderID != in.SenderID || out.Text != in.Text || !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestUserRating(t *testing.T) {
	u := User{}
	if u.Rating() != 0 {
		t.Error("unreviewed user should rate 0")
	}
	u.RatingSum = 14
	u.ReviewCount = 4
	if u.Rating() != 3.5 {
		t.Errorf("expected 3.5, got %v", u.Rating())
	}
}

func TestUserDisplayName(t *testing.T) {
	u := User{FirstName: "Ana", LastName: "Pop"}
	if u.DisplayName() != "Ana Pop" {
		t.Errorf("got %q", u.DisplayName())
	}
	if (User{}).DisplayName() != "User" {
		t.Error("empty name should display as User")
	}
}

func TestParseUserTypeFallback(t *testing.T) {
	if ParseUserType("PROVIDER") != UserTypeProvider {
		t.Error("provider parse failed")
	}
	if ParseUserType("nonsense") != UserTypeClient {
		t.Error("unknown type should fall back to CLIENT")
	}
}
