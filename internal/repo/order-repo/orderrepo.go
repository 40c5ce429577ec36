package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const orderColumns = `id, order_no, user_id, status, total_amount, pay_amount, discount_amount,
        points_used, balance_used, coupon_id, receiver_name, receiver_phone, receiver_address,
        remark, created_at, paid_at, shipped_at, completed_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.OrderNo, &o.UserID, &o.Status, &o.TotalAmount, &o.PayAmount, &o.DiscountAmount,
		&o.PointsUsed, &o.BalanceUsed, &o.CouponID,
		&o.Address.ReceiverName, &o.Address.ReceiverPhone, &o.Address.ReceiverAddress,
		&o.Remark, &o.CreatedAt, &o.PaidAt, &o.ShippedAt, &o.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan order", zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (order_no, user_id, status, total_amount, pay_amount, discount_amount,
            points_used, balance_used, coupon_id, receiver_name, receiver_phone, receiver_address, remark)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		order.OrderNo, order.UserID, order.Status, order.TotalAmount, order.PayAmount, order.DiscountAmount,
		order.PointsUsed, order.BalanceUsed, order.CouponID,
		order.Address.ReceiverName, order.Address.ReceiverPhone, order.Address.ReceiverAddress, order.Remark,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SaveItems(ctx context.Context, items []domain.OrderItem) error {
	query := `
        INSERT INTO order_items (order_id, product_id, sku_id, name, image, spec_values, price, quantity)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	for i := range items {
		item := &items[i]
		if _, err := r.db.Exec(ctx, query,
			item.OrderID, item.ProductID, item.SKUID, item.Name, item.Image, item.SpecValues, item.Price, item.Quantity,
		); err != nil {
			zap.L().Error("can't save order item", zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRow(ctx, query, orderID))
}

// GetByIDForUpdate locks the order row so concurrent transitions serialize.
func (r *Repository) GetByIDForUpdate(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return scanOrder(r.db.QueryRow(ctx, query, orderID))
}

func (r *Repository) GetByOrderNo(ctx context.Context, orderNo string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_no = $1`
	return scanOrder(r.db.QueryRow(ctx, query, orderNo))
}

func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	query := `
        UPDATE orders
        SET status = $2, paid_at = $3, shipped_at = $4, completed_at = $5
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, order.ID, order.Status, order.PaidAt, order.ShippedAt, order.CompletedAt); err != nil {
		zap.L().Error("can't update order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByUser(ctx context.Context, userID int, status string, limit, offset int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE user_id = $1 AND ($2 = '' OR status = $2)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4
    `
	rows, err := r.db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNo, &o.UserID, &o.Status, &o.TotalAmount, &o.PayAmount, &o.DiscountAmount,
			&o.PointsUsed, &o.BalanceUsed, &o.CouponID,
			&o.Address.ReceiverName, &o.Address.ReceiverPhone, &o.Address.ReceiverAddress,
			&o.Remark, &o.CreatedAt, &o.PaidAt, &o.ShippedAt, &o.CompletedAt,
		); err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *Repository) GetItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	query := `
        SELECT id, order_id, product_id, sku_id, name, image, spec_values, price, quantity
        FROM order_items
        WHERE order_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		zap.L().Error("can't get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SKUID, &item.Name, &item.Image, &item.SpecValues, &item.Price, &item.Quantity); err != nil {
			zap.L().Error("can't scan order item row", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) SaveLogistics(ctx context.Context, logistics *domain.Logistics) error {
	query := `
        INSERT INTO logistics (order_id, company, tracking_no, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, logistics.OrderID, logistics.Company, logistics.TrackingNo, logistics.Status).
		Scan(&logistics.ID, &logistics.CreatedAt)
	if err != nil {
		zap.L().Error("can't save logistics", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetLogistics(ctx context.Context, orderID int) (*domain.Logistics, error) {
	query := `
        SELECT id, order_id, company, tracking_no, status, created_at
        FROM logistics
        WHERE order_id = $1
    `
	var l domain.Logistics
	err := r.db.QueryRow(ctx, query, orderID).Scan(&l.ID, &l.OrderID, &l.Company, &l.TrackingNo, &l.Status, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get logistics", zap.Error(err))
		return nil, err
	}
	return &l, nil
}
