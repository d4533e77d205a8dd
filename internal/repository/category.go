package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-routing/internal/domain"
)

// CategoryRepo represents vehicle category repository.
type CategoryRepo struct {
	db *pgxpool.Pool
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Get returns a category by ID, or nil when absent.
func (r *CategoryRepo) Get(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, tenant_id, name, base_freight
        FROM categories
        WHERE id = $1
    `, id)

	var c domain.Category
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.BaseFreight); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &c, nil
}
