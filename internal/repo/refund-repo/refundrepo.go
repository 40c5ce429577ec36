package refundrepo

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

const refundColumns = `id, refund_no, payment_id, order_id, user_id, amount, reason, status, transaction_id, refunded_at, created_at`

func scanRefund(row pgx.Row) (*domain.Refund, error) {
	var rf domain.Refund
	err := row.Scan(&rf.ID, &rf.RefundNo, &rf.PaymentID, &rf.OrderID, &rf.UserID, &rf.Amount, &rf.Reason, &rf.Status, &rf.TransactionID, &rf.RefundedAt, &rf.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan refund", zap.Error(err))
		return nil, err
	}
	return &rf, nil
}

func (r *Repository) Save(ctx context.Context, refund *domain.Refund) error {
	query := `
        INSERT INTO refunds (refund_no, payment_id, order_id, user_id, amount, reason, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		refund.RefundNo, refund.PaymentID, refund.OrderID, refund.UserID, refund.Amount, refund.Reason, refund.Status,
	).Scan(&refund.ID, &refund.CreatedAt)
	if err != nil {
		zap.L().Error("can't save refund", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, refundID int) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1`
	return scanRefund(r.db.QueryRow(ctx, query, refundID))
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, refundID int) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1 FOR UPDATE`
	return scanRefund(r.db.QueryRow(ctx, query, refundID))
}

// FindActiveByOrder returns the pending or processing refund for an order,
// if any; at most one may exist at a time.
func (r *Repository) FindActiveByOrder(ctx context.Context, orderID int) (*domain.Refund, error) {
	query := `
        SELECT ` + refundColumns + `
        FROM refunds
        WHERE order_id = $1 AND status IN ('pending', 'processing')
        ORDER BY created_at DESC
        LIMIT 1
    `
	return scanRefund(r.db.QueryRow(ctx, query, orderID))
}

func (r *Repository) Update(ctx context.Context, refund *domain.Refund) error {
	query := `
        UPDATE refunds
        SET status = $2, transaction_id = $3, refunded_at = $4
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, refund.ID, refund.Status, refund.TransactionID, refund.RefundedAt); err != nil {
		zap.L().Error("can't update refund", zap.Error(err))
		return err
	}
	return nil
}
