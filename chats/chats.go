package chats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"mestero/db"
	"mestero/models"
	"mestero/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetOrCreateConversation resolves the thread between the caller and another
// user. The id is deterministic, so the lookup is a direct document read in
// either orientation before a new thread is created.
func GetOrCreateConversation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	otherID := ps.ByName("userId")

	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if otherID == "" || otherID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid conversation partner")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conv, err := findConversation(ctx, userID, otherID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load conversation")
		return
	}

	if conv == nil {
		id := models.ConversationID(userID, otherID)
		now := time.Now()
		created := models.Conversation{
			ID:           id,
			Participants: []string{userID, otherID},
			UnreadCounts: map[string]int64{userID: 0, otherID: 0},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.AddDocument(ctx, db.ConversationsCollection, id, created.ToMap()); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create conversation")
			return
		}
		conv = &created
	}

	utils.RespondWithJSON(w, http.StatusOK, conversationResponse(ctx, *conv, userID))
}

// findConversation checks both id orientations. nil without error means the
// thread does not exist yet.
func findConversation(ctx context.Context, userID, otherID string) (*models.Conversation, error) {
	for _, id := range []string{
		models.ConversationID(userID, otherID),
		models.ConversationID(otherID, userID),
	} {
		doc, err := db.GetDocument(ctx, db.ConversationsCollection, id)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, err
		}
		conv := models.ConversationFromMap(doc)
		return &conv, nil
	}
	return nil, nil
}

// ListConversations returns the caller's threads, most recent activity first.
func ListConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := db.QueryDocuments(ctx, db.ConversationsCollection, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: "participants", Value: userID, Type: db.ArrayContains}},
		OrderBy:        "lastMessageAt",
		OrderDirection: db.Descending,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}

	conversations := make([]models.Conversation, 0, len(docs))
	for _, doc := range docs {
		conversations = append(conversations, models.ConversationFromMap(doc))
	}
	names := resolveDisplayNames(ctx, conversations, userID)

	out := make([]map[string]any, 0, len(conversations))
	for _, conv := range conversations {
		resp := conversationResponseWithName(conv, userID, names[conv.OtherParticipant(userID)])
		out = append(out, resp)
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// resolveDisplayNames fetches every counterpart's name in one query.
func resolveDisplayNames(ctx context.Context, conversations []models.Conversation, userID string) map[string]string {
	seen := map[string]bool{}
	var ids []string
	for _, conv := range conversations {
		other := conv.OtherParticipant(userID)
		if other != "" && !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}

	names := map[string]string{}
	if len(ids) == 0 {
		return names
	}

	docs, err := db.QueryDocuments(ctx, db.UserCollection, db.QueryParams{
		Filters: []db.QueryFilter{{Field: "_id", Value: ids, Type: db.In}},
	})
	if err != nil {
		return names
	}
	for _, doc := range docs {
		user := models.UserFromMap(doc)
		names[user.ID] = user.DisplayName()
	}
	return names
}

// GetMessages returns a conversation's messages oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	conversationID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := loadParticipantConversation(ctx, conversationID, userID); err != nil {
		respondConversationError(w, err)
		return
	}

	docs, err := db.QueryDocuments(ctx, db.MessagesCollection, db.QueryParams{
		Filters:        []db.QueryFilter{{Field: "conversationId", Value: conversationID, Type: db.EqualTo}},
		OrderBy:        "createdAt",
		OrderDirection: db.Ascending,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		msg := models.MessageFromMap(doc)
		resp := msg.ToMap()
		resp["messageId"] = msg.ID
		out = append(out, resp)
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// SendMessage persists one message. The insert, the conversation preview and
// both unread counters commit in a single transaction.
func SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	conversationID := ps.ByName("id")

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	msg, err := persistMessage(ctx, conversationID, userID, input.Text)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, errNotParticipant) {
			respondConversationError(w, err)
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	broadcastMessage(conversationID, msg)

	resp := msg.ToMap()
	resp["messageId"] = msg.ID
	utils.SendResponse(w, http.StatusCreated, resp, "Message sent", nil)
}

var errNotParticipant = errors.New("not a participant")

// respondConversationError maps participant-lookup failures: an unknown
// conversation is 404, a conversation the caller is not in is 403.
func respondConversationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
	case errors.Is(err, errNotParticipant):
		utils.RespondWithError(w, http.StatusForbidden, "Not your conversation")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Conversation lookup failed")
	}
}

// persistMessage runs the transactional send: message insert, conversation
// preview update, recipient's unread counter incremented, sender's reset.
func persistMessage(ctx context.Context, conversationID, senderID, text string) (models.Message, error) {
	conv, err := loadParticipantConversation(ctx, conversationID, senderID)
	if err != nil {
		return models.Message{}, err
	}

	recipientID := recipientOf(*conv, senderID)

	now := time.Now()
	msg := models.Message{
		ID:             utils.GetUUID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      now,
		ReadBy:         []string{senderID},
	}
	msgDoc := msg.ToMap()
	msgDoc["_id"] = msg.ID

	err = db.RunTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := db.MessagesCollection.InsertOne(sc, msgDoc); err != nil {
			return err
		}
		update := bson.M{
			"$set": bson.M{
				"lastMessage":              text,
				"lastMessageAt":            now,
				"lastSenderId":             senderID,
				"updatedAt":                now,
				"unreadCounts." + senderID: int64(0),
			},
			"$inc": bson.M{
				"unreadCounts." + recipientID: 1,
			},
		}
		_, err := db.ConversationsCollection.UpdateOne(sc, bson.M{"_id": conversationID}, update)
		return err
	})
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// recipientOf derives the other party from the deterministic id, falling back
// to the participants array for ids that predate the scheme.
func recipientOf(conv models.Conversation, senderID string) string {
	if a, b, ok := models.SplitConversationID(conv.ID); ok {
		if a == senderID {
			return b
		}
		if b == senderID {
			return a
		}
	}
	return conv.OtherParticipant(senderID)
}

func loadParticipantConversation(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	doc, err := db.GetDocument(ctx, db.ConversationsCollection, conversationID)
	if err != nil {
		return nil, err
	}
	conv := models.ConversationFromMap(doc)
	if !conv.HasParticipant(userID) {
		return nil, errNotParticipant
	}
	return &conv, nil
}

// MarkConversationRead zeroes the caller's unread counter and records the
// caller on each unread message.
func MarkConversationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	conversationID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := loadParticipantConversation(ctx, conversationID, userID); err != nil {
		respondConversationError(w, err)
		return
	}

	_, err := db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"_id": conversationID},
		bson.M{"$set": bson.M{"unreadCounts." + userID: int64(0)}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark as read")
		return
	}

	_, err = db.MessagesCollection.UpdateMany(ctx,
		bson.M{"conversationId": conversationID, "readBy": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"readBy": userID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark messages read")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Conversation marked read", nil)
}

func conversationResponse(ctx context.Context, conv models.Conversation, userID string) map[string]any {
	names := resolveDisplayNames(ctx, []models.Conversation{conv}, userID)
	return conversationResponseWithName(conv, userID, names[conv.OtherParticipant(userID)])
}

func conversationResponseWithName(conv models.Conversation, userID, otherName string) map[string]any {
	if otherName == "" {
		otherName = "Unknown User"
	}
	resp := conv.ToMap()
	resp["conversationId"] = conv.ID
	resp["otherUserId"] = conv.OtherParticipant(userID)
	resp["otherUserName"] = otherName
	resp["unreadCount"] = conv.UnreadCounts[userID]
	return resp
}
