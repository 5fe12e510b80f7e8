package handlers

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/dobromax/initiative-services/internal/apisvc/service"
	"github.com/dobromax/initiative-services/internal/apisvc/store"
	"github.com/dobromax/initiative-services/internal/maxbot"
)

// BotClient is the slice of the platform client the handlers need.
// *maxbot.Client satisfies it.
type BotClient interface {
	SendMessageToUser(ctx context.Context, userId int64, text string) (*maxbot.Message, error)
	AnswerCallback(ctx context.Context, callbackId string, notification string) error
	SetMyCommands(ctx context.Context, commands []maxbot.BotCommand) error
}

// Handler implements the bot commands and callback buttons.
type Handler struct {
	client      BotClient
	users       *service.UserService
	leaderboard *service.LeaderboardService
	analytics   *store.AnalyticsStore
}

func NewHandler(client BotClient, users *service.UserService,
	leaderboard *service.LeaderboardService, analytics *store.AnalyticsStore) *Handler {
	return &Handler{
		client:      client,
		users:       users,
		leaderboard: leaderboard,
		analytics:   analytics,
	}
}

// Register wires the handlers into the bot dispatcher.
func (h *Handler) Register(bot *maxbot.Bot) {
	bot.OnBotStarted(h.BotStartedHandler)
	bot.Command("top", h.TopCommandHandler)
	bot.Command("topviews", h.TopViewsCommandHandler)
	bot.Callback("top_command", h.TopCallbackHandler)
	bot.Callback("top_views_command", h.TopViewsCallbackHandler)
	bot.OnMessage(h.UnknownMessageHandler)
}

// RegisterCommands publishes the command list to the platform. A failure is
// only a warning, the bot works without the menu.
func (h *Handler) RegisterCommands(ctx context.Context) {
	err := h.client.SetMyCommands(ctx, []maxbot.BotCommand{
		{Name: "top", Description: "Показать топ инициатив по просмотрам"},
		{Name: "topviews", Description: "Показать топ пользователей по просмотрам"},
	})
	if err != nil {
		log.Warnf("unable to register bot command list: %s", err)
		return
	}
	log.Infof("bot command list registered")
}

func (h *Handler) reply(ctx context.Context, userId int64, text string) {
	if _, err := h.client.SendMessageToUser(ctx, userId, text); err != nil {
		log.Errorf("Error sending reply to user %d: %s", userId, err)
	}
}

func (h *Handler) countCommand(ctx context.Context, command string) {
	if err := h.analytics.IncrementCommandUsage(ctx, command); err != nil {
		log.Errorf("Error [AnalyticsStore.IncrementCommandUsage]: %s", err)
	}
}

// BotStartedHandler adds the user on first contact and greets them.
func (h *Handler) BotStartedHandler(ctx context.Context, upd maxbot.Update) {
	if upd.User == nil {
		return
	}
	user := *upd.User

	if err := h.users.RegisterUser(ctx, user.UserId, user.Name); err != nil {
		log.Errorf("Error [UserService.RegisterUser]: %s", err)
	}

	h.reply(ctx, user.UserId, fmt.Sprintf("Бот запущен и готов к работе. Привет, %s! 🚀", user.Name))
	log.Infof("bot_started event handled for user %d", user.UserId)
}

// TopCommandHandler handles /top: top 10 accepted cards by views.
func (h *Handler) TopCommandHandler(ctx context.Context, upd maxbot.Update) {
	if upd.Message == nil {
		return
	}
	userId := upd.Message.Sender.UserId

	h.countCommand(ctx, "/top")
	h.reply(ctx, userId, h.topCardsText(ctx))
}

func (h *Handler) topCardsText(ctx context.Context) string {
	topCards, err := h.leaderboard.TopCardsByViews(ctx, 10)
	if err != nil {
		log.Errorf("Error [LeaderboardService.TopCardsByViews]: %s", err)
		return "❌ Произошла ошибка при получении топа инициатив. Попробуйте позже."
	}

	if len(topCards) == 0 {
		return "📊 Пока нет карточек с просмотрами.\n\nОткройте мини-приложение и начните изучать инициативы!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Топ %d инициатив по просмотрам:\n\n", len(topCards))

	for i, card := range topCards {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, categoryEmoji(card.Category), card.Title)
		fmt.Fprintf(&b, "   👁️ %s\n", formatViewCount(card.ViewCount))
		if card.Subtitle != "" {
			fmt.Fprintf(&b, "   📝 %s\n", truncate(card.Subtitle, 50))
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 Откройте мини-приложение, чтобы увидеть все детали инициатив!")
	return b.String()
}

// TopViewsCommandHandler handles /topviews: top 5 users by views performed.
func (h *Handler) TopViewsCommandHandler(ctx context.Context, upd maxbot.Update) {
	if upd.Message == nil {
		return
	}
	userId := upd.Message.Sender.UserId

	h.countCommand(ctx, "/topviews")
	h.reply(ctx, userId, h.topUsersText(ctx))
}

func (h *Handler) topUsersText(ctx context.Context) string {
	topUsers, err := h.leaderboard.TopUsersByViews(ctx, 5)
	if err != nil {
		log.Errorf("Error [LeaderboardService.TopUsersByViews]: %s", err)
		return "❌ Произошла ошибка при получении топа пользователей. Попробуйте позже."
	}

	if len(topUsers) == 0 {
		return "📊 Пока нет пользователей с просмотрами.\n\nОткройте мини-приложение и начните просматривать инициативы!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👁️ Топ %d пользователей по просмотрам:\n\n", len(topUsers))

	for i, user := range topUsers {
		fmt.Fprintf(&b, "%d. 👤 %s\n", i+1, user.Name)
		fmt.Fprintf(&b, "   👁️ %s\n\n", formatViewCount(user.TotalViews))
	}

	b.WriteString("💡 Откройте мини-приложение, чтобы просматривать инициативы!")
	return b.String()
}

// UnknownMessageHandler replies to any text that is not a known command with
// a short hint about what the bot can do.
func (h *Handler) UnknownMessageHandler(ctx context.Context, upd maxbot.Update) {
	if upd.Message == nil {
		return
	}
	h.reply(ctx, upd.Message.Sender.UserId,
		"🤖 Я понимаю команды /top и /topviews.\n\n💡 Откройте мини-приложение, чтобы изучать инициативы!")
}

// TopCallbackHandler answers the "Топ" button, then reuses the /top reply.
func (h *Handler) TopCallbackHandler(ctx context.Context, upd maxbot.Update) {
	if upd.Callback == nil {
		return
	}
	h.answerCallback(ctx, upd.Callback.CallbackId)

	h.countCommand(ctx, "/top")
	h.reply(ctx, upd.Callback.User.UserId, h.topCardsText(ctx))
}

// TopViewsCallbackHandler answers the "Топ просмотров" button, then reuses
// the /topviews reply.
func (h *Handler) TopViewsCallbackHandler(ctx context.Context, upd maxbot.Update) {
	if upd.Callback == nil {
		return
	}
	h.answerCallback(ctx, upd.Callback.CallbackId)

	h.countCommand(ctx, "/topviews")
	h.reply(ctx, upd.Callback.User.UserId, h.topUsersText(ctx))
}

func (h *Handler) answerCallback(ctx context.Context, callbackId string) {
	if err := h.client.AnswerCallback(ctx, callbackId, "Загрузка топа..."); err != nil {
		log.Errorf("Error answering callback %s: %s", callbackId, err)
	}
}
