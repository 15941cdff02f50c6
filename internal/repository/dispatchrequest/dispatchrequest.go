package dispatchrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/dispatch"
)

const dispatchColumns = `id, order_id, pickup_lat, pickup_lng, state,
		assigned_courier_id, round, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderID string, pickup entities.Location) (*entities.DispatchRequest, error) {
	query := `INSERT INTO dispatch_requests (order_id, pickup_lat, pickup_lng, state)
		VALUES ($1, $2, $3, 'unassigned')
		RETURNING ` + dispatchColumns

	var requestModel DispatchRequestDB
	err := r.querier.QueryRow(ctx, query, orderID, pickup.Lat, pickup.Lng).
		Scan(
			&requestModel.ID,
			&requestModel.OrderID,
			&requestModel.PickupLat,
			&requestModel.PickupLng,
			&requestModel.State,
			&requestModel.AssignedCourierID,
			&requestModel.Round,
			&requestModel.CreatedAt,
			&requestModel.UpdatedAt,
		)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, dispatch.ErrDuplicateOrder
		}
		return nil, fmt.Errorf("unexpected dispatchrequest repository create error: %w", err)
	}

	return ToDomain(&requestModel), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.DispatchRequest, error) {
	query := `SELECT ` + dispatchColumns + `
		FROM dispatch_requests
		WHERE order_id = $1`

	var requestModel DispatchRequestDB
	err := r.querier.QueryRow(ctx, query, orderID).
		Scan(
			&requestModel.ID,
			&requestModel.OrderID,
			&requestModel.PickupLat,
			&requestModel.PickupLng,
			&requestModel.State,
			&requestModel.AssignedCourierID,
			&requestModel.Round,
			&requestModel.CreatedAt,
			&requestModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrDispatchNotFound
		}
		return nil, fmt.Errorf("unexpected dispatchrequest repository getbyorderid error: %w", err)
	}

	return ToDomain(&requestModel), nil
}

// MarkOffering bumps the dispatch into the offering state for a new
// round. The state guard keeps a late cascade from reviving a dispatch
// that was assigned or exhausted in the meantime.
func (r *Repository) MarkOffering(ctx context.Context, orderID string, round int64) error {
	query := `UPDATE dispatch_requests
		SET state = 'offering',
		    round = $2,
		    updated_at = NOW()
		WHERE order_id = $1
		  AND state IN ('unassigned', 'offering')`

	result, err := r.querier.Exec(ctx, query, orderID, round)
	if err != nil {
		return fmt.Errorf("unexpected dispatchrequest repository markoffering error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrDispatchTerminal
	}

	return nil
}

func (r *Repository) MarkAssigned(ctx context.Context, orderID string, courierID int64) error {
	query := `UPDATE dispatch_requests
		SET state = 'assigned',
		    assigned_courier_id = $2,
		    updated_at = NOW()
		WHERE order_id = $1
		  AND state IN ('unassigned', 'offering')`

	result, err := r.querier.Exec(ctx, query, orderID, courierID)
	if err != nil {
		return fmt.Errorf("unexpected dispatchrequest repository markassigned error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrDispatchTerminal
	}

	return nil
}

func (r *Repository) MarkExhausted(ctx context.Context, orderID string) error {
	query := `UPDATE dispatch_requests
		SET state = 'exhausted',
		    updated_at = NOW()
		WHERE order_id = $1
		  AND state IN ('unassigned', 'offering')`

	result, err := r.querier.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("unexpected dispatchrequest repository markexhausted error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrDispatchTerminal
	}

	return nil
}
