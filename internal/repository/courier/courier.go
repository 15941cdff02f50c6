package courier

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/presence"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const courierColumns = `id, name, phone, online, lat, lng, rating,
		lifetime_deliveries, current_count, max_capacity, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, courierModifyEntity entities.CourierModify) (int64, error) {
	courierModifyModel := FromDomainModify(&courierModifyEntity)
	query := `INSERT INTO couriers (name, phone)
		VALUES ($1, $2)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		courierModifyModel.Name,
		courierModifyModel.Phone,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, presence.ErrConflict
		}
		return 0, fmt.Errorf("unexpected courier repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, courierModifyEntity entities.CourierModify) (*entities.CourierPresence, error) {
	courierModifyModel := FromDomainModify(&courierModifyEntity)

	builder := qb.
		Update("couriers")

	// optional fields
	if courierModifyModel.Name != nil {
		builder = builder.Set("name", courierModifyModel.Name)
	}
	if courierModifyModel.Phone != nil {
		builder = builder.Set("phone", courierModifyModel.Phone)
	}
	if courierModifyModel.Online != nil {
		builder = builder.Set("online", courierModifyModel.Online)
	}
	if courierModifyModel.Lat != nil {
		builder = builder.Set("lat", courierModifyModel.Lat)
		builder = builder.Set("lng", courierModifyModel.Lng)
	}
	if courierModifyModel.Rating != nil {
		builder = builder.Set("rating", courierModifyModel.Rating)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": courierModifyModel.ID}).
		Suffix("RETURNING " + courierColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	var courierModel CourierDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&courierModel.ID,
			&courierModel.Name,
			&courierModel.Phone,
			&courierModel.Online,
			&courierModel.Lat,
			&courierModel.Lng,
			&courierModel.Rating,
			&courierModel.LifetimeDeliveries,
			&courierModel.CurrentCount,
			&courierModel.MaxCapacity,
			&courierModel.CreatedAt,
			&courierModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, presence.ErrCourierNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, presence.ErrConflict
		}

		return nil, fmt.Errorf("unexpected courier repository update error: %w", err)
	}

	return ToDomain(&courierModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.CourierPresence, error) {
	query := `SELECT ` + courierColumns + `
		FROM couriers
		WHERE id = $1`

	var courierModel CourierDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&courierModel.ID,
			&courierModel.Name,
			&courierModel.Phone,
			&courierModel.Online,
			&courierModel.Lat,
			&courierModel.Lng,
			&courierModel.Rating,
			&courierModel.LifetimeDeliveries,
			&courierModel.CurrentCount,
			&courierModel.MaxCapacity,
			&courierModel.CreatedAt,
			&courierModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, presence.ErrCourierNotFound
		}

		return nil, fmt.Errorf("unexpected courier repository getbyid error: %w", err)
	}

	return ToDomain(&courierModel), nil
}

// ListOnline returns couriers that could receive an offer right now.
// Distance and rating filtering happen in the service layer, the query
// only drops couriers that are offline, unlocated or full.
func (r *Repository) ListOnline(ctx context.Context) ([]entities.CourierPresence, error) {
	query := `SELECT ` + courierColumns + `
		FROM couriers
		WHERE online = TRUE
		  AND lat IS NOT NULL
		  AND lng IS NOT NULL
		  AND current_count < max_capacity
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository listonline error: %w", err)
	}
	defer rows.Close()

	courierModels := make([]CourierDB, 0, 8)
	for rows.Next() {
		var courierModel CourierDB
		err := rows.Scan(
			&courierModel.ID,
			&courierModel.Name,
			&courierModel.Phone,
			&courierModel.Online,
			&courierModel.Lat,
			&courierModel.Lng,
			&courierModel.Rating,
			&courierModel.LifetimeDeliveries,
			&courierModel.CurrentCount,
			&courierModel.MaxCapacity,
			&courierModel.CreatedAt,
			&courierModel.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected courier repository listonline error: %w", err)
		}
		courierModels = append(courierModels, courierModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository listonline error: %w", err)
	}

	return ToDomainList(courierModels), nil
}

// IncrementLoad takes one capacity slot. The guard lives in the WHERE
// clause, so two concurrent accepts can never push a courier past
// max_capacity: the second UPDATE matches zero rows.
func (r *Repository) IncrementLoad(ctx context.Context, id int64) error {
	query := `UPDATE couriers
		SET current_count = current_count + 1,
		    updated_at = NOW()
		WHERE id = $1
		  AND current_count < max_capacity`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("unexpected courier repository incrementload error: %w", err)
	}

	if result.RowsAffected() == 0 {
		_, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return presence.ErrCapacityExceeded
	}

	return nil
}

func (r *Repository) DecrementLoad(ctx context.Context, id int64) error {
	query := `UPDATE couriers
		SET current_count = GREATEST(current_count - 1, 0),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("unexpected courier repository decrementload error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return presence.ErrCourierNotFound
	}

	return nil
}

// MarkDelivered releases a slot and credits the delivery to the
// courier's lifetime counter in one statement.
func (r *Repository) MarkDelivered(ctx context.Context, id int64) error {
	query := `UPDATE couriers
		SET current_count = GREATEST(current_count - 1, 0),
		    lifetime_deliveries = lifetime_deliveries + 1,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("unexpected courier repository markdelivered error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return presence.ErrCourierNotFound
	}

	return nil
}
