package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-routing/internal/domain"
)

const directionsByTenantQuery = `
        SELECT id, tenant_id, name, range_start, range_end, surcharge
        FROM directions
        WHERE tenant_id = $1
        ORDER BY id
`

// DirectionRepo represents direction repository.
type DirectionRepo struct {
	db *pgxpool.Pool
}

// NewDirectionRepo creates a new DirectionRepo.
func NewDirectionRepo(db *pgxpool.Pool) *DirectionRepo {
	return &DirectionRepo{db: db}
}

// ListByTenant returns the tenant's directions in configured order.
// The order matters: overlapping ranges resolve first-match-wins.
func (r *DirectionRepo) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Direction, error) {
	rows, err := r.db.Query(ctx, directionsByTenantQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list directions: %w", err)
	}
	return scanDirections(rows)
}

// Create persists a new direction and returns its generated ID.
func (r *DirectionRepo) Create(ctx context.Context, d *domain.Direction) (int64, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO directions (tenant_id, name, range_start, range_end, surcharge)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, d.TenantID, d.Name, d.RangeStart, d.RangeEnd, d.Surcharge).Scan(&d.ID)
	if err != nil {
		return 0, fmt.Errorf("insert direction: %w", err)
	}
	return d.ID, nil
}

func scanDirections(rows pgx.Rows) ([]domain.Direction, error) {
	defer rows.Close()

	var out []domain.Direction
	for rows.Next() {
		var d domain.Direction
		err := rows.Scan(&d.ID, &d.TenantID, &d.Name, &d.RangeStart, &d.RangeEnd, &d.Surcharge)
		if err != nil {
			return nil, fmt.Errorf("scan direction: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directions iteration: %w", err)
	}
	return out, nil
}
