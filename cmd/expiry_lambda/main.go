package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	dydbstore "github.com/wattmarket/ev-marketplace/pkg/storage/dynamodb"
	"github.com/wattmarket/ev-marketplace/pkg/sweeper"
)

var sw *sweeper.Sweeper

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	requestsTable := os.Getenv("DYNAMODB_REQUESTS_TABLE_NAME")
	listingsTable := os.Getenv("DYNAMODB_LISTINGS_TABLE_NAME")
	eventsTable := os.Getenv("DYNAMODB_EVENTS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	store := dydbstore.New(dbClient, requestsTable, listingsTable, eventsTable, connectionsTable)

	var notifier notifications.Dispatcher = &notifications.NoOpDispatcher{}
	if queueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); queueURL != "" {
		notifier = notifications.NewSQSDispatcher(sqs.NewFromConfig(cfg), queueURL)
	}

	sw = sweeper.New(store, notifier,
		envDuration("RESPONSE_DEADLINE", sweeper.DefaultResponseDeadline),
		envDuration("SIGNING_DEADLINE", sweeper.DefaultSigningDeadline))
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting expiry sweep...")

	expired, err := sw.SweepOnce(ctx)
	if err != nil {
		log.Printf("ERROR: expiry sweep failed: %v", err)
		return err
	}

	log.Printf("Expiry sweep finished, expired %d requests.", expired)
	return nil
}

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

func main() {
	lambda.Start(HandleRequest)
}
