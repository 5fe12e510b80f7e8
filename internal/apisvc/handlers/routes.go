package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	// mini-app facing routes
	r.Get("/health", h.HealthHandler)
	r.Post("/create-card", h.CreateCardHandler)
	r.Get("/max-cards", h.GetCardsHandler)
	r.Get("/fetch-cards", h.GetCardsHandler)
	r.Get("/viewed-cards", h.GetViewedCardsHandler)
	r.Post("/track-card-view", h.TrackCardViewHandler)
	r.Post("/on-app-close", h.OnAppCloseHandler)

	// moderation routes
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Post("/moderate-card", h.ModerateCardHandler)
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"moderator_id": 1,
		"exp":          expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: moderation JWT for testing expires soon : %s", tokenString)
}
