package chats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:           make(chan []byte, 10),
		ConversationID: "alice_bob",
	}

	hub.register <- client

	msg := outboundPayload{Action: "chat", Text: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{ConversationID: "alice_bob", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubUnregisterPreservesQueuedHistory(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 256), ConversationID: "alice_bob"}

	// History is queued into the buffered channel before registration, so a
	// client that drops immediately after connecting must still drain it
	// without a send hitting a closed channel.
	client.Send <- []byte("older")
	client.Send <- []byte("newer")

	hub.register <- client
	hub.unregister <- client

	var drained [][]byte
	for msg := range client.Send {
		drained = append(drained, msg)
	}
	if len(drained) != 2 || string(drained[0]) != "older" || string(drained[1]) != "newer" {
		t.Fatalf("queued history lost on unregister: %q", drained)
	}
}

func TestEncodeHistoryOldestFirst(t *testing.T) {
	now := time.Now()
	docs := []map[string]any{
		{"_id": "m2", "conversationId": "alice_bob", "senderId": "bob", "text": "second", "createdAt": now},
		{"_id": "m1", "conversationId": "alice_bob", "senderId": "alice", "text": "first", "createdAt": now.Add(-time.Minute)},
	}

	payloads := encodeHistory(docs)
	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}

	var first, second outboundPayload
	if err := json.Unmarshal(payloads[0], &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(payloads[1], &second); err != nil {
		t.Fatal(err)
	}
	if first.ID != "m1" || second.ID != "m2" {
		t.Errorf("history not oldest first: got %s then %s", first.ID, second.ID)
	}
}

func TestHubBroadcastIsScopedToConversation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 10), ConversationID: "alice_bob"}
	otherRoom := &Client{Send: make(chan []byte, 10), ConversationID: "carol_dave"}

	hub.register <- inRoom
	hub.register <- otherRoom

	hub.broadcast <- broadcastMsg{ConversationID: "alice_bob", Data: []byte("ping")}

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for in-room delivery")
	}

	select {
	case leaked := <-otherRoom.Send:
		t.Fatalf("message leaked to another conversation: %s", leaked)
	case <-time.After(100 * time.Millisecond):
	}
}
