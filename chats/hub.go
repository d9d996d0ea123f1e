package chats

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"mestero/db"
	"mestero/middleware"
	"mestero/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

const historyReplayLimit = 30

type Client struct {
	Conn           *websocket.Conn
	Send           chan []byte
	ConversationID string
	UserID         string
}

type broadcastMsg struct {
	ConversationID string
	Data           []byte
}

// Hub fans messages out to every open socket on a conversation.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.ConversationID] == nil {
				h.rooms[c.ConversationID] = make(map[*Client]bool)
			}
			h.rooms[c.ConversationID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.ConversationID]; conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.ConversationID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.ConversationID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type inboundPayload struct {
	Action string `json:"action"` // "chat"
	Text   string `json:"text,omitempty"`
}

type outboundPayload struct {
	Action         string `json:"action"`
	ID             string `json:"id"`
	ConversationID string `json:"conversationId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	Text           string `json:"text,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// activeHub is the singleton used by the REST send path to notify open
// sockets. Set once at startup.
var activeHub *Hub

func SetHub(h *Hub) {
	activeHub = h
}

func broadcastMessage(conversationID string, msg models.Message) {
	if activeHub == nil {
		return
	}
	out := outboundPayload{
		Action:         "chat",
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Text:           msg.Text,
		Timestamp:      msg.CreatedAt.Unix(),
	}
	if data, err := json.Marshal(out); err == nil {
		activeHub.broadcast <- broadcastMsg{ConversationID: conversationID, Data: data}
	}
}

// WebSocketHandler upgrades a socket onto one conversation. The token rides in
// the query string because browsers cannot set headers on websocket dials.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		conversationID := ps.ByName("id")

		claims, err := middleware.ValidateToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID := claims.UserID

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		if _, err := loadParticipantConversation(ctx, conversationID, userID); err != nil {
			cancel()
			if errors.Is(err, mongo.ErrNoDocuments) {
				http.Error(w, "Conversation not found", http.StatusNotFound)
			} else {
				http.Error(w, "Not your conversation", http.StatusForbidden)
			}
			return
		}
		cancel()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:           conn,
			Send:           make(chan []byte, 256),
			ConversationID: conversationID,
			UserID:         userID,
		}

		// Replay queues into the buffered Send channel before the client is
		// registered, so the hub cannot close the channel mid-replay and the
		// history always precedes live traffic.
		replayHistory(client)

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

// replayHistory queues the last messages oldest first so a reconnecting client
// can render the thread without a separate fetch. Must run before the client is
// registered; Send is buffered well past the replay limit so this never blocks.
func replayHistory(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	docs, err := db.QueryDocuments(ctx, db.MessagesCollection, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: "conversationId", Value: client.ConversationID, Type: db.EqualTo}},
		OrderBy:        "createdAt",
		OrderDirection: db.Descending,
		Limit:          historyReplayLimit,
	})
	if err != nil {
		log.Println("history find:", err)
		return
	}

	history := make([]map[string]any, len(docs))
	for i, doc := range docs {
		history[i] = doc
	}
	for _, data := range encodeHistory(history) {
		client.Send <- data
	}
}

// encodeHistory turns a newest-first query page into oldest-first wire payloads.
func encodeHistory(docs []map[string]any) [][]byte {
	out := make([][]byte, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		msg := models.MessageFromMap(docs[i])
		payload := outboundPayload{
			Action:         "chat",
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			SenderID:       msg.SenderID,
			Text:           msg.Text,
			Timestamp:      msg.CreatedAt.Unix(),
		}
		if data, err := json.Marshal(payload); err == nil {
			out = append(out, data)
		}
	}
	return out
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}

		if in.Action != "chat" || in.Text == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		msg, err := persistMessage(ctx, c.ConversationID, c.UserID, in.Text)
		cancel()
		if err != nil {
			log.Println("persist message:", err)
			continue
		}

		broadcastMessage(c.ConversationID, msg)
	}
}
