package broker

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/dobromax/initiative-services/internal/comm"
)

// Broker publishes notifier events to the bot service. Publishing is
// fire-and-forget: the HTTP response never waits on it and a failed publish
// only costs the user one motivational message.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishNotifyEvent hands the event to the bot service workers.
func (b *Broker) PublishNotifyEvent(eventType string, userId int64) {
	event := comm.NotifyEvent{
		Type:      eventType,
		UserId:    userId,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Error marshaling notify event: %s", err)
		return
	}

	if err := b.Conn.Publish(comm.NotifySubject, data); err != nil {
		log.Errorf("Error publishing notify event for user %d: %s", userId, err)
	}
}
