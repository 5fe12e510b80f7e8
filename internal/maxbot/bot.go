package maxbot

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// HandlerFunc processes one update.
type HandlerFunc func(ctx context.Context, upd Update)

// Bot dispatches long-polled updates to registered handlers. Handlers are
// looked up by command name (first word of a message, "@bot" suffix
// stripped) or callback payload.
type Bot struct {
	Client *Client

	commands     map[string]HandlerFunc
	callbacks    map[string]HandlerFunc
	onBotStarted HandlerFunc
	onMessage    HandlerFunc

	marker int64
}

func NewBot(client *Client) *Bot {
	return &Bot{
		Client:    client,
		commands:  make(map[string]HandlerFunc),
		callbacks: make(map[string]HandlerFunc),
	}
}

// Command registers a handler for "/name".
func (b *Bot) Command(name string, h HandlerFunc) {
	b.commands["/"+name] = h
}

// Callback registers a handler for a callback button payload.
func (b *Bot) Callback(payload string, h HandlerFunc) {
	b.callbacks[payload] = h
}

// OnBotStarted registers the bot_started handler.
func (b *Bot) OnBotStarted(h HandlerFunc) {
	b.onBotStarted = h
}

// OnMessage registers a fallback for messages that match no command.
func (b *Bot) OnMessage(h HandlerFunc) {
	b.onMessage = h
}

// Start runs the long-poll loop until the context is cancelled. Poll errors
// are logged and retried after a fixed pause; a panicking handler never
// takes the loop down.
func (b *Bot) Start(ctx context.Context) {
	log.Infof("bot long-poll loop started")

	for {
		select {
		case <-ctx.Done():
			log.Infof("bot long-poll loop stopped")
			return
		default:
		}

		list, err := b.Client.GetUpdates(ctx, b.marker, 100, 30)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Errorf("Error polling updates: %s", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, upd := range list.Updates {
			b.dispatch(ctx, upd)
		}
		if list.Marker != nil {
			b.marker = *list.Marker
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, upd Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic in update handler (%s): %v", upd.UpdateType, r)
		}
	}()

	switch upd.UpdateType {
	case UpdateBotStarted:
		if b.onBotStarted != nil {
			b.onBotStarted(ctx, upd)
		}
	case UpdateMessageCreated:
		if upd.Message == nil {
			return
		}
		if h, ok := b.commands[commandOf(upd.Message.Body.Text)]; ok {
			h(ctx, upd)
			return
		}
		if b.onMessage != nil {
			b.onMessage(ctx, upd)
		}
	case UpdateMessageCallback:
		if upd.Callback == nil {
			return
		}
		if h, ok := b.callbacks[upd.Callback.Payload]; ok {
			h(ctx, upd)
		}
	}
}

func commandOf(text string) string {
	first := strings.Fields(strings.TrimSpace(text))
	if len(first) == 0 {
		return ""
	}
	cmd := first[0]
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}
