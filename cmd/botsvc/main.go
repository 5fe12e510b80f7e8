package main

import (
	"context"
	"os"
	"os/signal"

	config "github.com/dobromax/initiative-services/configs"
	"github.com/dobromax/initiative-services/internal/apisvc/service"
	"github.com/dobromax/initiative-services/internal/apisvc/store"
	botbroker "github.com/dobromax/initiative-services/internal/botsvc/broker"
	bothandlers "github.com/dobromax/initiative-services/internal/botsvc/handlers"
	"github.com/dobromax/initiative-services/internal/botsvc/notifier"
	"github.com/dobromax/initiative-services/internal/db"
	"github.com/dobromax/initiative-services/internal/maxbot"
	nats "github.com/dobromax/initiative-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "bot"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// mongo connection
	database, cancel, err := db.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer cancel()
	log.Printf("mongo connection established successfully")

	userStore := store.NewUserStore(database)
	userService := service.NewUserService(userStore)

	cardStore := store.NewCardStore(database)
	viewStore := store.NewCardViewStore(database)
	leaderboardService := service.NewLeaderboardService(cardStore, viewStore)
	viewService := service.NewViewService(viewStore)

	analyticsStore := store.NewAnalyticsStore(database)

	// MAX bot client
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("BOT_TOKEN is not set")
	}
	client := maxbot.NewClient(token, os.Getenv("MAX_API_URL"))
	bot := maxbot.NewBot(client)

	// command and callback handlers
	h := bothandlers.NewHandler(client, userService, leaderboardService, analyticsStore)
	h.Register(bot)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// motivation notifier fed by api service events
	ntf := notifier.NewNotifier(viewService, userService, client)
	b := botbroker.NewBroker(n.Conn, ntf)

	sub, err := b.Subscribe()
	if err != nil {
		log.Errorf("Error: unable to subscribe to notify events %v", err)
		os.Exit(0)
	}
	defer sub.Unsubscribe()
	log.Printf("subscribed to notify events")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h.RegisterCommands(ctx)

	// blocks until the context is cancelled
	bot.Start(ctx)

	log.Printf("bot service stopped")
}
