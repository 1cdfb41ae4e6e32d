package repository

import (
	"context"
	"fmt"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const defaultHistoryLimit = 50

// statusChangeRepository implements StatusChangeRepository using PostgreSQL.
type statusChangeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStatusChangeRepository creates a PostgreSQL-backed journal.
func NewStatusChangeRepository(pool *pgxpool.Pool, logger zerolog.Logger) StatusChangeRepository {
	return &statusChangeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "status_change").Logger(),
	}
}

func (r *statusChangeRepository) Record(ctx context.Context, change *model.StatusChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}

	query := `
		INSERT INTO order_status_changes (id, order_id, from_status, to_status, actor, succeeded, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		change.ID,
		change.OrderID,
		string(change.From),
		string(change.To),
		change.Actor,
		change.Succeeded,
		change.Error,
		change.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", change.OrderID).
			Msg("failed to record status change")
		return fmt.Errorf("failed to record status change: %w", err)
	}

	r.logger.Debug().
		Str("order_id", change.OrderID).
		Str("to", string(change.To)).
		Bool("succeeded", change.Succeeded).
		Msg("status change recorded")

	return nil
}

func (r *statusChangeRepository) ListByOrder(ctx context.Context, orderID string, limit int) ([]model.StatusChange, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `
		SELECT id, order_id, from_status, to_status, actor, succeeded, error, created_at
		FROM order_status_changes
		WHERE order_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, orderID, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query status changes")
		return nil, fmt.Errorf("failed to query status changes: %w", err)
	}

	changes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.StatusChange])
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to scan status changes")
		return nil, fmt.Errorf("failed to scan status changes: %w", err)
	}

	return changes, nil
}

// nopStatusChangeRepository is used when the journal database is disabled.
type nopStatusChangeRepository struct{}

// NewNopStatusChangeRepository returns a journal that stores nothing.
func NewNopStatusChangeRepository() StatusChangeRepository {
	return nopStatusChangeRepository{}
}

func (nopStatusChangeRepository) Record(context.Context, *model.StatusChange) error {
	return nil
}

func (nopStatusChangeRepository) ListByOrder(context.Context, string, int) ([]model.StatusChange, error) {
	return []model.StatusChange{}, nil
}
