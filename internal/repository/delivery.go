package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
	"delivery-routing/internal/ports/deliverytx"
)

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetDelivery loads a delivery with its ordered stops outside a
// caller-owned transaction.
func (r *DeliveryRepo) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, tenant_id, driver_id, vehicle_id,
               freight_value, total_weight, total_value,
               status, reject_reason, created_at, completed_at
        FROM deliveries
        WHERE id = $1
    `, id)

	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d: %w", id, err)
	}

	rows, err := r.db.Query(ctx, deliveryOrdersQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d orders: %w", id, err)
	}
	d.Orders, err = scanDeliveryOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d orders: %w", id, err)
	}
	return d, nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

const deliveryOrdersQuery = `
        SELECT o.id, o.tenant_id, o.postal_code, o.lat, o.lng,
               o.weight, o.value, o.status, do2.sorting
        FROM delivery_orders do2
        JOIN orders o ON o.id = do2.order_id
        WHERE do2.delivery_id = $1
        ORDER BY do2.sorting
`

// OrdersForUpdate locks and returns the orders with the given IDs.
// Missing IDs are simply absent from the result.
func (r *TxRepo) OrdersForUpdate(ctx context.Context, ids []string) ([]domain.Order, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, tenant_id, postal_code, lat, lng, weight, value, status
        FROM orders
        WHERE id = ANY($1)
        ORDER BY array_position($1, id)
        FOR UPDATE
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("orders for update: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0, len(ids))
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("orders for update: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders for update: %w", err)
	}
	return out, nil
}

// UpdateOrderStatus - update a single order status.
func (r *TxRepo) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, orderID, string(status))
	if err != nil {
		return fmt.Errorf("update order status %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}

// InsertDelivery - insert a new delivery and its stop rows. A fresh
// stop row is an active claim; the partial unique index over active
// rows rejects an order still claimed by another live delivery.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (tenant_id, driver_id, vehicle_id,
                                freight_value, total_weight, total_value,
                                status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, d.TenantID, d.DriverID, d.VehicleID,
		d.FreightValue, d.TotalWeight, d.TotalValue,
		string(d.Status), d.CreatedAt).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	for _, o := range d.Orders {
		_, err := r.tx.Exec(ctx, `
            INSERT INTO delivery_orders (delivery_id, order_id, sorting)
            VALUES ($1, $2, $3)
        `, d.ID, o.Order.ID, o.Sorting)
		if err != nil {
			if IsDuplicate(err) {
				return fmt.Errorf("order %q already claimed by an active delivery: %w", o.Order.ID, apperr.ErrConflict)
			}
			return fmt.Errorf("insert delivery order %q: %w", o.Order.ID, err)
		}
	}
	return nil
}

// GetDeliveryForUpdate - load and lock a delivery with its stops.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT id, tenant_id, driver_id, vehicle_id,
               freight_value, total_weight, total_value,
               status, reject_reason, created_at, completed_at
        FROM deliveries
        WHERE id = $1
        FOR UPDATE
    `, id)

	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery for update %d: %w", id, err)
	}

	rows, err := r.tx.Query(ctx, deliveryOrdersQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery for update %d orders: %w", id, err)
	}
	d.Orders, err = scanDeliveryOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("get delivery for update %d orders: %w", id, err)
	}
	return d, nil
}

// UpdateDeliveryStatus - update delivery status, reason and completion.
func (r *TxRepo) UpdateDeliveryStatus(ctx context.Context, id int64, status domain.DeliveryStatus, reason *string, completedAt *time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET status = $2, reject_reason = $3, completed_at = $4
        WHERE id = $1
    `, id, string(status), reason, completedAt)
	if err != nil {
		return fmt.Errorf("update delivery status %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// UpdateDeliveryTotals - rewrite the recomputed totals.
func (r *TxRepo) UpdateDeliveryTotals(ctx context.Context, id int64, freightValue, weight, value float64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET freight_value = $2, total_weight = $3, total_value = $4
        WHERE id = $1
    `, id, freightValue, weight, value)
	if err != nil {
		return fmt.Errorf("update delivery totals %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// RemoveDeliveryOrder - drop a single stop row.
func (r *TxRepo) RemoveDeliveryOrder(ctx context.Context, deliveryID int64, orderID string) error {
	ct, err := r.tx.Exec(ctx, `
        DELETE FROM delivery_orders
        WHERE delivery_id = $1 AND order_id = $2
    `, deliveryID, orderID)
	if err != nil {
		return fmt.Errorf("remove delivery order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d order %q: %w", deliveryID, orderID, apperr.ErrNotFound)
	}
	return nil
}

// ReleaseDeliveryOrders - drop the active claim on every stop of the
// delivery. Stop rows stay behind for history; only the partial unique
// index over active rows stops seeing them, so the orders become
// claimable by a new delivery.
func (r *TxRepo) ReleaseDeliveryOrders(ctx context.Context, deliveryID int64) error {
	_, err := r.tx.Exec(ctx, `
        UPDATE delivery_orders
        SET active = FALSE
        WHERE delivery_id = $1 AND active
    `, deliveryID)
	if err != nil {
		return fmt.Errorf("release delivery %d orders: %w", deliveryID, err)
	}
	return nil
}

// DeleteDelivery - delete a delivery and its stop rows.
func (r *TxRepo) DeleteDelivery(ctx context.Context, id int64) error {
	if _, err := r.tx.Exec(ctx, `DELETE FROM delivery_orders WHERE delivery_id = $1`, id); err != nil {
		return fmt.Errorf("delete delivery %d orders: %w", id, err)
	}
	ct, err := r.tx.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// GetVehicle - get vehicle by ID.
func (r *TxRepo) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT id, driver_id, category_id
        FROM vehicles
        WHERE id = $1
    `, id)

	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.DriverID, &v.CategoryID); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return &v, nil
}

// GetCategory - get category by ID.
func (r *TxRepo) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.tx.QueryRow(ctx, `
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

// ListDirections - list the tenant's directions in configured order.
func (r *TxRepo) ListDirections(ctx context.Context, tenantID int64) ([]domain.Direction, error) {
	rows, err := r.tx.Query(ctx, directionsByTenantQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list directions: %w", err)
	}
	return scanDirections(rows)
}

// GetReleasePolicy - get the tenant's auto-release thresholds.
func (r *TxRepo) GetReleasePolicy(ctx context.Context, tenantID int64) (*domain.ReleasePolicy, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT tenant_id, min_total_value, min_total_weight,
               min_order_count, max_freight_percent
        FROM release_policies
        WHERE tenant_id = $1
    `, tenantID)

	var p domain.ReleasePolicy
	err := row.Scan(&p.TenantID, &p.MinTotalValue, &p.MinTotalWeight,
		&p.MinOrderCount, &p.MaxFreightPercent)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get release policy for tenant %d: %w", tenantID, err)
	}
	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var d domain.Delivery
	var status string
	err := row.Scan(&d.ID, &d.TenantID, &d.DriverID, &d.VehicleID,
		&d.FreightValue, &d.TotalWeight, &d.TotalValue,
		&status, &d.RejectReason, &d.CreatedAt, &d.CompletedAt)
	if err != nil {
		return nil, err
	}
	d.Status = domain.DeliveryStatus(status)
	return &d, nil
}

func scanOrderRow(row rowScanner) (domain.Order, error) {
	var (
		o        domain.Order
		status   string
		lat, lng *float64
	)
	err := row.Scan(&o.ID, &o.TenantID, &o.PostalCode, &lat, &lng,
		&o.Weight, &o.Value, &status)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	if lat != nil && lng != nil {
		o.Coord = &domain.Coordinate{Lat: *lat, Lng: *lng}
	}
	return o, nil
}

func scanDeliveryOrders(rows pgx.Rows) ([]domain.DeliveryOrder, error) {
	defer rows.Close()

	var out []domain.DeliveryOrder
	for rows.Next() {
		var (
			o        domain.Order
			status   string
			lat, lng *float64
			sorting  int
		)
		err := rows.Scan(&o.ID, &o.TenantID, &o.PostalCode, &lat, &lng,
			&o.Weight, &o.Value, &status, &sorting)
		if err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		if lat != nil && lng != nil {
			o.Coord = &domain.Coordinate{Lat: *lat, Lng: *lng}
		}
		out = append(out, domain.DeliveryOrder{Order: o, Sorting: sorting})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
