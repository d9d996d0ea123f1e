package chats

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestRespondConversationErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown conversation", mongo.ErrNoDocuments, http.StatusNotFound},
		{"non-participant", errNotParticipant, http.StatusForbidden},
		{"backend failure", errors.New("socket timeout"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondConversationError(rec, tc.err)
			if rec.Code != tc.want {
				t.Errorf("got status %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
