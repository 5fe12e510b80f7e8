package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/dobromax/initiative-services/internal/comm"
)

// GetViewedCardsHandler handles GET /viewed-cards?user_id=N.
func (h *Handler) GetViewedCardsHandler(w http.ResponseWriter, r *http.Request) {
	userIdStr := r.URL.Query().Get("user_id")
	if userIdStr == "" {
		h.fail(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	userId, err := strconv.ParseInt(userIdStr, 10, 64)
	if err != nil || userId <= 0 {
		h.fail(w, http.StatusBadRequest, "user_id must be a positive number")
		return
	}

	cardIds, err := h.viewService.GetUserViewedCardIds(r.Context(), userId)
	if err != nil {
		log.Errorf("Error [ViewService.GetUserViewedCardIds]: %s", err)
		h.failFrom(w, err)
		return
	}

	h.ok(w, http.StatusOK, cardIds)
}

// TrackCardViewHandler handles POST /track-card-view. The notifier event is
// published after the response data is ready, never blocking or failing the
// request.
func (h *Handler) TrackCardViewHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CardId string `json:"card_id"`
		UserId int64  `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if body.CardId == "" || body.UserId == 0 {
		h.fail(w, http.StatusBadRequest, "card_id and user_id are required")
		return
	}

	viewCount, err := h.viewService.TrackView(r.Context(), body.CardId, body.UserId)
	if err != nil {
		log.Errorf("Error [ViewService.TrackView]: %s", err)
		h.failFrom(w, err)
		return
	}

	h.broker.PublishNotifyEvent(comm.EventTrackView, body.UserId)

	h.ok(w, http.StatusOK, map[string]int64{"view_count": viewCount})
}

// OnAppCloseHandler handles POST /on-app-close.
func (h *Handler) OnAppCloseHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserId int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if body.UserId == 0 {
		h.fail(w, http.StatusBadRequest, "user_id is required")
		return
	}

	log.Infof("app closed event received for user %d", body.UserId)
	h.broker.PublishNotifyEvent(comm.EventAppClose, body.UserId)

	h.ok(w, http.StatusOK, nil)
}
