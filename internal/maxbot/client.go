package maxbot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultApiUrl = "https://platform-api.max.ru"

// ErrMessageNotFound is returned when a message id no longer resolves, e.g.
// the user deleted the chat message.
var ErrMessageNotFound = errors.New("maxbot: message not found")

// Client is a thin HTTP client over the MAX bot platform API. It only
// covers the calls this project needs: sending, editing and fetching
// messages, answering callback queries, registering commands and long
// polling for updates.
type Client struct {
	http *resty.Client
	poll *resty.Client // long-poll calls outlive the regular request timeout
}

func NewClient(token string, apiUrl string) *Client {
	if apiUrl == "" {
		apiUrl = defaultApiUrl
	}

	http := resty.New().
		SetBaseURL(apiUrl).
		SetQueryParam("access_token", token).
		SetTimeout(15 * time.Second)

	poll := resty.New().
		SetBaseURL(apiUrl).
		SetQueryParam("access_token", token).
		SetTimeout(50 * time.Second)

	return &Client{http: http, poll: poll}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func wrapStatus(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("maxbot: %s: %w", op, err)
	}
	if resp.IsError() {
		return fmt.Errorf("maxbot: %s: %s %s", op, resp.Status(), resp.String())
	}
	return nil
}

// SendMessageToUser sends a text message to the user's dialog with the bot
// and returns the created message.
func (c *Client) SendMessageToUser(ctx context.Context, userId int64, text string) (*Message, error) {
	var result struct {
		Message Message `json:"message"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", strconv.FormatInt(userId, 10)).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/messages")
	if err := wrapStatus("send message", resp, err); err != nil {
		return nil, err
	}

	return &result.Message, nil
}

// EditMessage replaces the text of an already sent message in place.
func (c *Client) EditMessage(ctx context.Context, messageId string, text string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("message_id", messageId).
		SetBody(map[string]string{"text": text}).
		SetError(&apiError{}).
		Put("/messages")
	if err != nil {
		return fmt.Errorf("maxbot: edit message: %w", err)
	}
	if resp.StatusCode() == 404 {
		return ErrMessageNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("maxbot: edit message: %s %s", resp.Status(), resp.String())
	}
	return nil
}

// GetMessage fetches a single message by id, ErrMessageNotFound when it no
// longer exists.
func (c *Client) GetMessage(ctx context.Context, messageId string) (*Message, error) {
	var result struct {
		Messages []Message `json:"messages"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("message_ids", messageId).
		SetResult(&result).
		SetError(&apiError{}).
		Get("/messages")
	if err := wrapStatus("get message", resp, err); err != nil {
		return nil, err
	}

	if len(result.Messages) == 0 {
		return nil, ErrMessageNotFound
	}
	return &result.Messages[0], nil
}

// AnswerCallback acknowledges a callback button press with an optional
// toast notification.
func (c *Client) AnswerCallback(ctx context.Context, callbackId string, notification string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("callback_id", callbackId).
		SetBody(map[string]string{"notification": notification}).
		SetError(&apiError{}).
		Post("/answers")
	return wrapStatus("answer callback", resp, err)
}

// SetMyCommands registers the command list shown in the chat UI.
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"commands": commands}).
		SetError(&apiError{}).
		Patch("/me")
	return wrapStatus("set commands", resp, err)
}

// GetUpdates long-polls for new updates starting at marker.
func (c *Client) GetUpdates(ctx context.Context, marker int64, limit int, timeoutSec int) (*UpdateList, error) {
	var result UpdateList

	req := c.poll.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("timeout", strconv.Itoa(timeoutSec)).
		SetResult(&result).
		SetError(&apiError{})
	if marker > 0 {
		req.SetQueryParam("marker", strconv.FormatInt(marker, 10))
	}

	resp, err := req.Get("/updates")
	if err := wrapStatus("get updates", resp, err); err != nil {
		return nil, err
	}

	return &result, nil
}
