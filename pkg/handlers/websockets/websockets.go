package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wattmarket/ev-marketplace/pkg/storage"
)

// Handler handles WebSocket connections. Clients identify their account with
// an account_id query parameter on connect; notifications are fanned out per
// account.
type Handler struct {
	connStore storage.ConnectionStore
}

// NewHandler creates a new Handler.
func NewHandler(connStore storage.ConnectionStore) *Handler {
	return &Handler{
		connStore: connStore,
	}
}

// HandleConnect handles new client connections.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	accountID := request.QueryStringParameters["account_id"]
	if accountID == "" {
		slog.Warn("connection attempt without account_id", "connectionId", request.RequestContext.ConnectionID)
		return events.APIGatewayProxyResponse{StatusCode: 400}, nil
	}

	slog.Info("Client connected", "connectionId", request.RequestContext.ConnectionID, "accountId", accountID)

	if err := h.connStore.AddConnection(ctx, accountID, request.RequestContext.ConnectionID); err != nil {
		slog.Error("failed to save connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDisconnect handles client disconnections.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Client disconnected", "connectionId", request.RequestContext.ConnectionID)

	if err := h.connStore.RemoveConnection(ctx, request.RequestContext.ConnectionID); err != nil {
		slog.Error("failed to delete connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDefault handles messages sent from a client.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Received message", "connectionId", request.RequestContext.ConnectionID, "body", request.Body)
	// We don't expect clients to send messages, but we log them just in case.
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections by default for local development.
		return true
	},
}

// ServeHTTP handles WebSocket requests for the local development server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		http.Error(w, "account_id query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// Generate a unique connection ID for local connections.
	connectionID := uuid.New().String()
	slog.Info("Client connected locally", "connectionId", connectionID, "accountId", accountID)

	ctx := r.Context()
	if err := h.connStore.AddConnection(ctx, accountID, connectionID); err != nil {
		slog.Error("failed to save local connection ID", "error", err)
		return
	}

	// When the function returns (i.e., the client disconnects), remove the connection.
	defer func() {
		slog.Info("Client disconnected locally", "connectionId", connectionID)
		if err := h.connStore.RemoveConnection(ctx, connectionID); err != nil {
			slog.Error("failed to delete local connection ID", "error", err)
		}
	}()

	// Keep the connection alive, waiting for the client to disconnect.
	// The server doesn't process incoming messages; this loop only detects
	// when the client closes the connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("unexpected close error", "error", err)
			}
			break
		}
	}
}
