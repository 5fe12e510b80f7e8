package comm

import (
	"time"
)

// NATS subjects shared by the api and bot services.
const (
	NotifySubject = "bot.notify"
	NotifyQueue   = "bot-notify-workers"
)

// Notifier event types.
const (
	EventTrackView = "track-view"
	EventAppClose  = "app-close"
)

// NotifyEvent is published by the api service after a tracked view or an
// app-close and consumed by the bot service, which runs the motivation
// notifier for the user.
type NotifyEvent struct {
	Type      string    `json:"type"` // "track-view" or "app-close"
	UserId    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
