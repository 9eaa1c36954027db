package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/wattmarket/ev-marketplace/pkg/api"
	"github.com/wattmarket/ev-marketplace/pkg/esign"
	"github.com/wattmarket/ev-marketplace/pkg/handlers"
	"github.com/wattmarket/ev-marketplace/pkg/handlers/listings"
	"github.com/wattmarket/ev-marketplace/pkg/handlers/requests"
	"github.com/wattmarket/ev-marketplace/pkg/handlers/webhooks"
	wshandlers "github.com/wattmarket/ev-marketplace/pkg/handlers/websockets"
	"github.com/wattmarket/ev-marketplace/pkg/lifecycle"
	"github.com/wattmarket/ev-marketplace/pkg/middleware"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	"github.com/wattmarket/ev-marketplace/pkg/signing"
	dydbstore "github.com/wattmarket/ev-marketplace/pkg/storage/dynamodb"
	"github.com/wattmarket/ev-marketplace/pkg/sweeper"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	requestsTable := os.Getenv("DYNAMODB_REQUESTS_TABLE_NAME")
	listingsTable := os.Getenv("DYNAMODB_LISTINGS_TABLE_NAME")
	eventsTable := os.Getenv("DYNAMODB_EVENTS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if requestsTable == "" || listingsTable == "" || eventsTable == "" || connectionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, requestsTable, listingsTable, eventsTable, connectionsTable)

	// Notification dispatcher: SQS-backed when a queue is configured, no-op
	// otherwise (local development without the notifier pipeline).
	var notifier notifications.Dispatcher = &notifications.NoOpDispatcher{}
	if queueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); queueURL != "" {
		notifier = notifications.NewSQSDispatcher(sqs.NewFromConfig(cfg), queueURL)
	}

	// E-signature gateway client.
	esignBaseURL := os.Getenv("ESIGN_BASE_URL")
	esignAPIKey := os.Getenv("ESIGN_API_KEY")
	esignWebhookSecret := os.Getenv("ESIGN_WEBHOOK_SECRET")
	if esignBaseURL == "" || esignAPIKey == "" || esignWebhookSecret == "" {
		log.Fatal("ESIGN_BASE_URL, ESIGN_API_KEY and ESIGN_WEBHOOK_SECRET must be set")
	}
	gateway := esign.NewHTTPClient(esignBaseURL, esignAPIKey)

	// Wire the lifecycle manager and the signing coordinator. They reference
	// each other through interfaces, so the coordinator's finalizer is
	// assigned after both exist.
	coordinator := signing.NewCoordinator(store, store, gateway, notifier)
	service := lifecycle.NewService(store, store, coordinator, notifier)
	coordinator.Finalizer = service

	handler := handlers.NewApiHandler(
		requests.NewRequestsHandler(service, store),
		listings.NewListingsHandler(store),
		webhooks.NewWebhooksHandler(coordinator, esignWebhookSecret),
	)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(slog.Default()))

	api.HandlerFromMux(handler, router)

	// WebSocket endpoint for local development; in AWS this is handled by
	// the API Gateway WebSocket integration.
	router.Handle("/ws", wshandlers.NewHandler(store))

	// In-process expiry sweeper for local development. In AWS the expiry
	// lambda runs the same sweep on an EventBridge schedule.
	if os.Getenv("RUN_SWEEPER") == "true" {
		sw := sweeper.New(store, notifier, envDuration("RESPONSE_DEADLINE", sweeper.DefaultResponseDeadline), envDuration("SIGNING_DEADLINE", sweeper.DefaultSigningDeadline))
		sw.Interval = envDuration("SWEEP_INTERVAL", time.Minute)
		go sw.Run(context.Background())
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// envDuration reads a duration environment variable, falling back when unset
// or malformed.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
