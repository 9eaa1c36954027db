package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/wattmarket/ev-marketplace/pkg/notifications"
	dydbstore "github.com/wattmarket/ev-marketplace/pkg/storage/dynamodb"
)

var publisher *notifications.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	apiEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if connectionsTable == "" || apiEndpoint == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME and WEBSOCKET_API_ENDPOINT must be set")
	}

	// Only the connections table is used here; the other table names are
	// irrelevant to this lambda.
	store := dydbstore.New(dbClient, "", "", "", connectionsTable)

	publisher, err = notifications.NewPublisher(store, store, apiEndpoint)
	if err != nil {
		log.Fatalf("failed to create publisher: %v", err)
	}
}

// HandleRequest fans queued notifications out to the addressed accounts'
// WebSocket connections.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var n notifications.Notification
		if err := json.Unmarshal([]byte(message.Body), &n); err != nil {
			log.Printf("ERROR: failed to unmarshal notification from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		if err := publisher.Publish(ctx, n); err != nil {
			log.Printf("ERROR: failed to publish notification for account %s: %v", n.AccountId, err)
			return err
		}

		log.Printf("Delivered %s notification to account %s", n.Type, n.AccountId)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
