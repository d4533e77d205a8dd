package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-routing/internal/domain"
)

// OrderRepo represents order repository.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

// ListByIDs returns orders in the requested ID order. Missing IDs are
// absent from the result.
func (r *OrderRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, tenant_id, postal_code, lat, lng, weight, value, status
        FROM orders
        WHERE id = ANY($1)
        ORDER BY array_position($1, id)
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0, len(ids))
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
