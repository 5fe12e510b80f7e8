package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/apisvc/service"
	"github.com/dobromax/initiative-services/internal/comm"
)

type fakeCardAPI struct {
	created   []models.CardInput
	cards     []models.Card
	moderated map[string]string
}

func (f *fakeCardAPI) CreateCard(ctx context.Context, input models.CardInput) (*models.Card, error) {
	// mirror the service-layer required-field validation
	required := map[string]string{
		"category": input.Category,
		"title":    input.Title,
		"subtitle": input.Subtitle,
		"text":     input.Text,
		"status":   input.Status,
	}
	for _, field := range []string{"category", "title", "subtitle", "text", "status"} {
		if required[field] == "" {
			return nil, &service.ValidationError{Field: field, Message: "Field \"" + field + "\" is required"}
		}
	}
	f.created = append(f.created, input)
	return &models.Card{ID: "card-1", Title: input.Title, Status: input.Status}, nil
}

func (f *fakeCardAPI) ListCards(ctx context.Context) ([]models.Card, error) {
	return f.cards, nil
}

func (f *fakeCardAPI) ModerateCard(ctx context.Context, cardId string, status string) (bool, error) {
	if status != models.CardStatusAccepted && status != models.CardStatusRejected {
		return false, &service.ValidationError{Field: "status", Message: "status must be \"accepted\" or \"rejected\""}
	}
	if f.moderated == nil {
		f.moderated = map[string]string{}
	}
	f.moderated[cardId] = status
	return cardId != "missing", nil
}

type fakeViewAPI struct {
	viewCount int64
	viewedIds []string
	err       error
}

func (f *fakeViewAPI) TrackView(ctx context.Context, cardId string, userId int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.viewCount, nil
}

func (f *fakeViewAPI) GetUserViewedCardIds(ctx context.Context, userId int64) ([]string, error) {
	return f.viewedIds, f.err
}

type fakePublisher struct {
	events []string
	users  []int64
}

func (f *fakePublisher) PublishNotifyEvent(eventType string, userId int64) {
	f.events = append(f.events, eventType)
	f.users = append(f.users, userId)
}

func newTestRouter(t *testing.T, cards *fakeCardAPI, views *fakeViewAPI, pub *fakePublisher) *chi.Mux {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	h := NewHandler(cards, views, pub)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var rsp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rsp))
	return w, rsp
}

func TestCreateCardMissingTitle(t *testing.T) {
	cards := &fakeCardAPI{}
	r := newTestRouter(t, cards, &fakeViewAPI{}, &fakePublisher{})

	w, rsp := doJSON(t, r, http.MethodPost, "/create-card", map[string]string{
		"category": "эко",
		"subtitle": "sub",
		"text":     "text",
		"status":   "moderate",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, rsp.Ok)
	assert.Equal(t, `Field "title" is required`, rsp.Error)
	assert.Empty(t, cards.created)
}

func TestCreateCardOk(t *testing.T) {
	cards := &fakeCardAPI{}
	r := newTestRouter(t, cards, &fakeViewAPI{}, &fakePublisher{})

	w, rsp := doJSON(t, r, http.MethodPost, "/create-card", map[string]interface{}{
		"category": "эко",
		"title":    "Чистый двор",
		"subtitle": "Субботник",
		"text":     "Приходите на уборку!",
		"status":   "moderate",
		"user_id":  42,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, rsp.Ok)
	require.Len(t, cards.created, 1)
	assert.Equal(t, int64(42), cards.created[0].UserId)
}

func TestGetCards(t *testing.T) {
	cards := &fakeCardAPI{cards: []models.Card{{ID: "a"}, {ID: "b"}}}
	r := newTestRouter(t, cards, &fakeViewAPI{}, &fakePublisher{})

	w, rsp := doJSON(t, r, http.MethodGet, "/max-cards", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, rsp.Ok)
	data, ok := rsp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestViewedCardsValidation(t *testing.T) {
	r := newTestRouter(t, &fakeCardAPI{}, &fakeViewAPI{}, &fakePublisher{})

	tests := []struct {
		name string
		path string
	}{
		{"missing user_id", "/viewed-cards"},
		{"non-numeric user_id", "/viewed-cards?user_id=abc"},
		{"non-positive user_id", "/viewed-cards?user_id=0"},
		{"negative user_id", "/viewed-cards?user_id=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, rsp := doJSON(t, r, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, rsp.Ok)
		})
	}
}

func TestViewedCardsOk(t *testing.T) {
	views := &fakeViewAPI{viewedIds: []string{"A", "B"}}
	r := newTestRouter(t, &fakeCardAPI{}, views, &fakePublisher{})

	w, rsp := doJSON(t, r, http.MethodGet, "/viewed-cards?user_id=42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, rsp.Ok)
	data, ok := rsp.Data.([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"A", "B"}, data)
}

func TestTrackCardViewValidation(t *testing.T) {
	r := newTestRouter(t, &fakeCardAPI{}, &fakeViewAPI{}, &fakePublisher{})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing card_id", map[string]interface{}{"user_id": 42}},
		{"missing user_id", map[string]interface{}{"card_id": "A"}},
		{"empty body", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, rsp := doJSON(t, r, http.MethodPost, "/track-card-view", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, rsp.Ok)
		})
	}
}

func TestTrackCardViewOkPublishesEvent(t *testing.T) {
	views := &fakeViewAPI{viewCount: 3}
	pub := &fakePublisher{}
	r := newTestRouter(t, &fakeCardAPI{}, views, pub)

	w, rsp := doJSON(t, r, http.MethodPost, "/track-card-view", map[string]interface{}{
		"card_id": "A",
		"user_id": 42,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, rsp.Ok)

	data, ok := rsp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), data["view_count"])

	require.Len(t, pub.events, 1)
	assert.Equal(t, comm.EventTrackView, pub.events[0])
	assert.Equal(t, int64(42), pub.users[0])
}

func TestOnAppClose(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestRouter(t, &fakeCardAPI{}, &fakeViewAPI{}, pub)

	w, rsp := doJSON(t, r, http.MethodPost, "/on-app-close", map[string]interface{}{"user_id": 42})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, rsp.Ok)
	require.Len(t, pub.events, 1)
	assert.Equal(t, comm.EventAppClose, pub.events[0])

	w, rsp = doJSON(t, r, http.MethodPost, "/on-app-close", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, rsp.Ok)
}

func TestModerateCardRequiresAuth(t *testing.T) {
	r := newTestRouter(t, &fakeCardAPI{}, &fakeViewAPI{}, &fakePublisher{})

	req := httptest.NewRequest(http.MethodPost, "/moderate-card",
		bytes.NewBufferString(`{"card_id":"a","status":"accepted"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
