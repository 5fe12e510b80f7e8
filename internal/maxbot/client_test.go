package maxbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient("test-token", srv.URL)
}

func TestSendMessageToUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "привет", body["text"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]interface{}{
				"body": map[string]interface{}{"mid": "mid.123", "seq": 1, "text": "привет"},
			},
		})
	})

	msg, err := c.SendMessageToUser(context.Background(), 42, "привет")
	require.NoError(t, err)
	assert.Equal(t, "mid.123", msg.Body.Mid)
}

func TestSendMessageErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"code": "invalid", "message": "bad request"})
	})

	_, err := c.SendMessageToUser(context.Background(), 42, "x")
	require.Error(t, err)
}

func TestEditMessageNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.EditMessage(context.Background(), "mid.gone", "x")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestGetMessageNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"messages": []interface{}{}})
	})

	_, err := c.GetMessage(context.Background(), "mid.gone")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestGetMessageFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mid.1", r.URL.Query().Get("message_ids"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []interface{}{
				map[string]interface{}{"body": map[string]interface{}{"mid": "mid.1", "text": "старый текст"}},
			},
		})
	})

	msg, err := c.GetMessage(context.Background(), "mid.1")
	require.NoError(t, err)
	assert.Equal(t, "старый текст", msg.Body.Text)
}

func TestGetUpdatesPassesMarker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/updates", r.URL.Path)
		assert.Equal(t, "777", r.URL.Query().Get("marker"))

		marker := int64(778)
		json.NewEncoder(w).Encode(UpdateList{
			Updates: []Update{{UpdateType: UpdateBotStarted, User: &User{UserId: 42, Name: "Анна"}}},
			Marker:  &marker,
		})
	})

	list, err := c.GetUpdates(context.Background(), 777, 100, 30)
	require.NoError(t, err)
	require.Len(t, list.Updates, 1)
	assert.Equal(t, UpdateBotStarted, list.Updates[0].UpdateType)
	require.NotNil(t, list.Marker)
	assert.Equal(t, int64(778), *list.Marker)
}
