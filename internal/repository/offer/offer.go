package offer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/dispatch"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Issue inserts a pending offer. A partial unique index on
// (order_id) WHERE state = 'pending' guarantees at most one live offer
// per order, so a concurrent issue surfaces as a unique violation.
func (r *Repository) Issue(ctx context.Context, offerEntity entities.Offer) (*entities.Offer, error) {
	query := `INSERT INTO offers (order_id, courier_id, state, rank, score, distance_km, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
		RETURNING id, order_id, courier_id, state, rank, score, distance_km, issued_at, expires_at`

	var offerModel OfferDB
	err := r.querier.QueryRow(
		ctx,
		query,
		offerEntity.OrderID,
		offerEntity.CourierID,
		entities.OfferPending.String(),
		offerEntity.Rank,
		offerEntity.Score,
		offerEntity.DistanceKm,
		offerEntity.ExpiresAt,
	).Scan(
		&offerModel.ID,
		&offerModel.OrderID,
		&offerModel.CourierID,
		&offerModel.State,
		&offerModel.Rank,
		&offerModel.Score,
		&offerModel.DistanceKm,
		&offerModel.IssuedAt,
		&offerModel.ExpiresAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, dispatch.ErrOfferConflict
		}
		return nil, fmt.Errorf("unexpected offer repository issue error: %w", err)
	}

	return ToDomain(&offerModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Offer, error) {
	query := `SELECT id, order_id, courier_id, state, rank, score, distance_km, issued_at, expires_at
		FROM offers
		WHERE id = $1`

	var offerModel OfferDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&offerModel.ID,
			&offerModel.OrderID,
			&offerModel.CourierID,
			&offerModel.State,
			&offerModel.Rank,
			&offerModel.Score,
			&offerModel.DistanceKm,
			&offerModel.IssuedAt,
			&offerModel.ExpiresAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrOfferNotFound
		}
		return nil, fmt.Errorf("unexpected offer repository getbyid error: %w", err)
	}

	return ToDomain(&offerModel), nil
}

func (r *Repository) GetPendingByOrderID(ctx context.Context, orderID string) (*entities.Offer, error) {
	query := `SELECT id, order_id, courier_id, state, rank, score, distance_km, issued_at, expires_at
		FROM offers
		WHERE order_id = $1
		  AND state = 'pending'`

	var offerModel OfferDB
	err := r.querier.QueryRow(ctx, query, orderID).
		Scan(
			&offerModel.ID,
			&offerModel.OrderID,
			&offerModel.CourierID,
			&offerModel.State,
			&offerModel.Rank,
			&offerModel.Score,
			&offerModel.DistanceKm,
			&offerModel.IssuedAt,
			&offerModel.ExpiresAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrOfferNotFound
		}
		return nil, fmt.Errorf("unexpected offer repository getpendingbyorderid error: %w", err)
	}

	return ToDomain(&offerModel), nil
}

// Respond moves one pending offer to a terminal state. The state guard
// in the WHERE clause makes every response race-safe: a courier
// answering an offer the sweeper already expired matches zero rows and
// gets ErrOfferStale instead of overwriting the terminal state.
func (r *Repository) Respond(ctx context.Context, offerID, courierID int64, state entities.OfferState) error {
	query := `UPDATE offers
		SET state = $3
		WHERE id = $1
		  AND courier_id = $2
		  AND state = 'pending'`

	result, err := r.querier.Exec(ctx, query, offerID, courierID, state.String())
	if err != nil {
		return fmt.Errorf("unexpected offer repository respond error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrOfferStale
	}

	return nil
}

// ExpireStale transitions every overdue pending offer to expired and
// returns them so the caller can advance the matching dispatches.
func (r *Repository) ExpireStale(ctx context.Context) ([]entities.ExpiredOffer, error) {
	query := `UPDATE offers
		SET state = 'expired'
		WHERE state = 'pending'
		  AND expires_at <= NOW()
		RETURNING id, order_id, courier_id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository expirestale error: %w", err)
	}
	defer rows.Close()

	expired := make([]entities.ExpiredOffer, 0, 8)
	for rows.Next() {
		var e entities.ExpiredOffer
		err := rows.Scan(&e.OfferID, &e.OrderID, &e.CourierID)
		if err != nil {
			return nil, fmt.Errorf("unexpected offer repository expirestale error: %w", err)
		}
		expired = append(expired, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository expirestale error: %w", err)
	}

	return expired, nil
}

// SupersedePending closes whatever pending offer an order still has.
// Zero matched rows is fine: the offer may already be terminal.
func (r *Repository) SupersedePending(ctx context.Context, orderID string) error {
	query := `UPDATE offers
		SET state = 'superseded'
		WHERE order_id = $1
		  AND state = 'pending'`

	_, err := r.querier.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("unexpected offer repository supersedepending error: %w", err)
	}

	return nil
}

// ListOfferedCourierIDs returns every courier an order has ever been
// offered to, whatever came of the offer. Used to keep cascade rounds
// from knocking on the same door twice.
func (r *Repository) ListOfferedCourierIDs(ctx context.Context, orderID string) ([]int64, error) {
	query := `SELECT courier_id
		FROM offers
		WHERE order_id = $1`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository listofferedcourierids error: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 8)
	for rows.Next() {
		var id int64
		err := rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("unexpected offer repository listofferedcourierids error: %w", err)
		}
		ids = append(ids, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository listofferedcourierids error: %w", err)
	}

	return ids, nil
}
