package repository

import (
	"context"

	"backoffice/internal/model"
)

// StatusChangeRepository is the journal of order status transition attempts.
type StatusChangeRepository interface {
	// Record appends one transition attempt.
	Record(ctx context.Context, change *model.StatusChange) error

	// ListByOrder returns the newest attempts for an order first, at most limit of them.
	ListByOrder(ctx context.Context, orderID string, limit int) ([]model.StatusChange, error)
}
