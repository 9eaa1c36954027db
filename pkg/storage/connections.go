package storage

import "context"

// ConnectionStore defines the interface for storing and retrieving WebSocket connection IDs.
type ConnectionStore interface {
	AddConnection(ctx context.Context, accountID, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetConnectionsByAccountID(ctx context.Context, accountID string) ([]string, error)
}
