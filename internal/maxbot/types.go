package maxbot

// Wire types of the MAX bot platform API.

type User struct {
	UserId int64  `json:"user_id"`
	Name   string `json:"name"`
}

type Recipient struct {
	ChatId int64 `json:"chat_id,omitempty"`
	UserId int64 `json:"user_id,omitempty"`
}

type MessageBody struct {
	Mid  string `json:"mid"`
	Seq  int64  `json:"seq"`
	Text string `json:"text"`
}

type Message struct {
	Sender    User        `json:"sender"`
	Recipient Recipient   `json:"recipient"`
	Timestamp int64       `json:"timestamp"`
	Body      MessageBody `json:"body"`
}

type Callback struct {
	CallbackId string `json:"callback_id"`
	Payload    string `json:"payload"`
	User       User   `json:"user"`
}

// Update is one long-poll event. Which pointer fields are set depends on
// update_type: message_created carries Message, message_callback carries
// Callback (plus the original Message), bot_started carries User.
type Update struct {
	UpdateType string    `json:"update_type"`
	Timestamp  int64     `json:"timestamp"`
	Message    *Message  `json:"message,omitempty"`
	Callback   *Callback `json:"callback,omitempty"`
	User       *User     `json:"user,omitempty"`
}

type UpdateList struct {
	Updates []Update `json:"updates"`
	Marker  *int64   `json:"marker"`
}

type BotCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Update types dispatched by the bot loop.
const (
	UpdateBotStarted      = "bot_started"
	UpdateMessageCreated  = "message_created"
	UpdateMessageCallback = "message_callback"
)
