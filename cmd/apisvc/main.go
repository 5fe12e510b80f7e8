package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/dobromax/initiative-services/configs"
	"github.com/dobromax/initiative-services/internal/apisvc/broker"
	handlers "github.com/dobromax/initiative-services/internal/apisvc/handlers"
	"github.com/dobromax/initiative-services/internal/apisvc/service"
	"github.com/dobromax/initiative-services/internal/apisvc/store"
	"github.com/dobromax/initiative-services/internal/db"
	nats "github.com/dobromax/initiative-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "api"

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

	if err := db.EnsureIndexes(database); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	cardStore := store.NewCardStore(database)
	cardService := service.NewCardService(cardStore)

	viewStore := store.NewCardViewStore(database)
	viewService := service.NewViewService(viewStore)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// notifier event publisher
	b := broker.NewBroker(n.Conn)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, viewService, b)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("API_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Printf("api service listening at :%s", os.Getenv("API_SERVICE_PORT"))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown error: %v", err)
	}
	log.Printf("api service stopped")
}
