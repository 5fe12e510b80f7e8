package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
)

const maxImageSize = 5 << 20 // 5MB upload cap, matches the mini-app form

// CreateCardHandler handles POST /create-card. The mini-app submits
// multipart/form-data with an optional image file; a plain JSON body is
// accepted as well.
func (h *Handler) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var input models.CardInput
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		input, err = parseMultipartCard(r)
	} else {
		input, err = parseJSONCard(r)
	}
	if err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), input)
	if err != nil {
		log.Errorf("Error [CardService.CreateCard]: %s", err)
		h.failFrom(w, err)
		return
	}

	h.ok(w, http.StatusCreated, card)
}

func parseMultipartCard(r *http.Request) (models.CardInput, error) {
	var input models.CardInput

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return input, fmt.Errorf("invalid multipart form: %w", err)
	}

	input.Category = r.FormValue("category")
	input.Title = r.FormValue("title")
	input.Subtitle = r.FormValue("subtitle")
	input.Text = r.FormValue("text")
	input.Status = r.FormValue("status")
	input.Link = r.FormValue("link")

	if v := r.FormValue("user_id"); v != "" {
		if userId, err := strconv.ParseInt(v, 10, 64); err == nil && userId > 0 {
			input.UserId = userId
		}
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
		if err != nil {
			return input, fmt.Errorf("failed to read image: %w", err)
		}

		mimetype := header.Header.Get("Content-Type")
		if mimetype == "" {
			mimetype = "application/octet-stream"
		}
		input.Image = "data:" + mimetype + ";base64," + base64.StdEncoding.EncodeToString(data)

		log.Infof("card image received: %s (%d bytes)", header.Filename, len(data))
	}

	return input, nil
}

func parseJSONCard(r *http.Request) (models.CardInput, error) {
	var body struct {
		Category string `json:"category"`
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Text     string `json:"text"`
		Status   string `json:"status"`
		Link     string `json:"link"`
		Image    string `json:"image"`
		UserId   int64  `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return models.CardInput{}, fmt.Errorf("invalid JSON body: %w", err)
	}

	return models.CardInput{
		Category: body.Category,
		Title:    body.Title,
		Subtitle: body.Subtitle,
		Text:     body.Text,
		Status:   body.Status,
		Link:     body.Link,
		Image:    body.Image,
		UserId:   body.UserId,
	}, nil
}

// GetCardsHandler handles GET /max-cards.
func (h *Handler) GetCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		log.Errorf("Error [CardService.ListCards]: %s", err)
		h.failFrom(w, err)
		return
	}
	h.ok(w, http.StatusOK, cards)
}

// ModerateCardHandler handles POST /moderate-card on the jwt-guarded group.
func (h *Handler) ModerateCardHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CardId string `json:"card_id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	found, err := h.cardService.ModerateCard(r.Context(), body.CardId, body.Status)
	if err != nil {
		log.Errorf("Error [CardService.ModerateCard]: %s", err)
		h.failFrom(w, err)
		return
	}
	if !found {
		h.fail(w, http.StatusNotFound, "card not found")
		return
	}

	h.ok(w, http.StatusOK, nil)
}
