package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/dobromax/initiative-services/internal/botsvc/notifier"
	"github.com/dobromax/initiative-services/internal/comm"
)

// Broker consumes notifier events published by the api service and runs
// the motivation notifier. Every failure is logged and dropped: the
// request that produced the event has already been answered.
type Broker struct {
	Conn     *nats.Conn
	Notifier *notifier.Notifier
}

func NewBroker(nc *nats.Conn, n *notifier.Notifier) *Broker {
	return &Broker{Conn: nc, Notifier: n}
}

// Subscribe starts consuming notify events on a queue group, so multiple
// bot instances split the work instead of double-messaging users.
func (b *Broker) Subscribe() (*nats.Subscription, error) {
	return b.Conn.QueueSubscribe(comm.NotifySubject, comm.NotifyQueue, b.handleMessage)
}

func (b *Broker) handleMessage(msg *nats.Msg) {
	var event comm.NotifyEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Errorf("Error unmarshaling notify event: %s", err)
		return
	}

	if event.UserId <= 0 {
		log.Warnf("notify event without user id, type=%s", event.Type)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.Notifier.Evaluate(ctx, event.UserId); err != nil {
		log.Errorf("Error [Notifier.Evaluate] user %d event %s: %s", event.UserId, event.Type, err)
	}
}
