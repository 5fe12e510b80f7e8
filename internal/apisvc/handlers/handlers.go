package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/apisvc/service"
)

// CardAPI is the card surface the handlers need.
type CardAPI interface {
	CreateCard(ctx context.Context, input models.CardInput) (*models.Card, error)
	ListCards(ctx context.Context) ([]models.Card, error)
	ModerateCard(ctx context.Context, cardId string, status string) (bool, error)
}

// ViewAPI is the view-tracking surface the handlers need.
type ViewAPI interface {
	TrackView(ctx context.Context, cardId string, userId int64) (int64, error)
	GetUserViewedCardIds(ctx context.Context, userId int64) ([]string, error)
}

// NotifyPublisher hands notifier events to the bot service.
type NotifyPublisher interface {
	PublishNotifyEvent(eventType string, userId int64)
}

type Handler struct {
	cardService CardAPI
	viewService ViewAPI
	broker      NotifyPublisher
	tokenAuth   *jwtauth.JWTAuth
}

func NewHandler(cardService CardAPI, viewService ViewAPI, b NotifyPublisher) *Handler {
	return &Handler{
		cardService: cardService,
		viewService: viewService,
		broker:      b,
	}
}

// Response is the JSON envelope of every endpoint: {ok:true, data} on
// success, {ok:false, error} otherwise.
type Response struct {
	Ok    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) ok(w http.ResponseWriter, code int, data interface{}) {
	h.writeJSON(w, code, Response{Ok: true, Data: data})
}

func (h *Handler) fail(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, Response{Ok: false, Error: message})
}

// failFrom maps a service error onto the envelope: validation failures are
// the caller's fault, everything else is a storage error.
func (h *Handler) failFrom(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		h.fail(w, http.StatusBadRequest, verr.Message)
		return
	}
	h.fail(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, "api service is running at port "+os.Getenv("API_SERVICE_PORT"))
}
