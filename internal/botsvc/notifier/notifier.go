package notifier

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/maxbot"
)

// ViewGateway reads aggregate view counts.
type ViewGateway interface {
	GetUserTotalViewCount(ctx context.Context, userId int64) (int64, error)
}

// UserGateway reads and persists per-user notifier state.
type UserGateway interface {
	GetByID(ctx context.Context, userId int64) (*models.User, error)
	UpdateMotivationState(ctx context.Context, userId int64, lastViewCount int64, messageId string, messageDate time.Time) error
}

// Messenger is the slice of the bot client the notifier needs.
type Messenger interface {
	SendMessageToUser(ctx context.Context, userId int64, text string) (*maxbot.Message, error)
	EditMessage(ctx context.Context, messageId string, text string) error
	GetMessage(ctx context.Context, messageId string) (*maxbot.Message, error)
}

// Notifier builds the per-user statistics message after every tracked view
// or app close and either edits the message it sent earlier today or sends
// a fresh one. All dependencies are injected, there is no global bot or db.
type Notifier struct {
	views     ViewGateway
	users     UserGateway
	messenger Messenger

	now func() time.Time
}

func NewNotifier(views ViewGateway, users UserGateway, messenger Messenger) *Notifier {
	return &Notifier{
		views:     views,
		users:     users,
		messenger: messenger,
		now:       time.Now,
	}
}

// Evaluate runs one notifier pass for the user. The caller logs and drops
// the returned error; a notifier failure must never surface to the request
// that triggered it.
func (n *Notifier) Evaluate(ctx context.Context, userId int64) error {
	totalViews, err := n.views.GetUserTotalViewCount(ctx, userId)
	if err != nil {
		return fmt.Errorf("read total view count: %w", err)
	}
	if totalViews == 0 {
		// nothing viewed yet, nothing to motivate
		return nil
	}

	user, err := n.users.GetByID(ctx, userId)
	if err != nil {
		return fmt.Errorf("read user: %w", err)
	}

	var lastViewCount int64
	var lastMessageId string
	if user != nil {
		lastViewCount = user.LastViewCount
		lastMessageId = user.LastMotivationalMessageId
	}

	sessionViews := totalViews - lastViewCount
	if sessionViews < 0 {
		sessionViews = 0
	}

	now := n.now()
	text := BuildStatisticsMessage(sessionViews, totalViews, now, RandomPhrase())

	messageId, err := n.deliver(ctx, userId, lastMessageId, text, now)
	if err != nil {
		return err
	}

	if err := n.users.UpdateMotivationState(ctx, userId, totalViews, messageId, now); err != nil {
		return fmt.Errorf("persist motivation state: %w", err)
	}
	return nil
}

// deliver edits today's statistics message in place when it still exists,
// otherwise sends a new one. Returns the id of the message that now holds
// the statistics.
func (n *Notifier) deliver(ctx context.Context, userId int64, lastMessageId, text string, now time.Time) (string, error) {
	if lastMessageId != "" {
		prev, err := n.messenger.GetMessage(ctx, lastMessageId)
		switch {
		case err != nil:
			log.Infof("previous motivational message %s unavailable, sending new: %s", lastMessageId, err)
		case IsSameDayStatistics(prev.Body.Text, now):
			if err := n.messenger.EditMessage(ctx, lastMessageId, text); err == nil {
				return lastMessageId, nil
			} else {
				log.Warnf("edit of message %s failed, falling back to send: %s", lastMessageId, err)
			}
		}
	}

	sent, err := n.messenger.SendMessageToUser(ctx, userId, text)
	if err != nil {
		return "", fmt.Errorf("send statistics message: %w", err)
	}
	return sent.Body.Mid, nil
}
