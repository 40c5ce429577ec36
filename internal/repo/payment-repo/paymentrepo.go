package paymentrepo

import (
	"context"
	"errors"
	"time"

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

const paymentColumns = `id, payment_no, order_id, user_id, amount, method, status, transaction_id, paid_at, created_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.PaymentNo, &p.OrderID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.TransactionID, &p.PaidAt, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan payment", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
        INSERT INTO payments (payment_no, order_id, user_id, amount, method, status, transaction_id, paid_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		payment.PaymentNo, payment.OrderID, payment.UserID, payment.Amount,
		payment.Method, payment.Status, payment.TransactionID, payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetByNo(ctx context.Context, paymentNo string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_no = $1`
	return scanPayment(r.db.QueryRow(ctx, query, paymentNo))
}

// GetByNoForUpdate locks the payment row; two concurrent callback deliveries
// for the same payment serialize on it, which is what makes the terminal
// status check an effective idempotency gate.
func (r *Repository) GetByNoForUpdate(ctx context.Context, paymentNo string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_no = $1 FOR UPDATE`
	return scanPayment(r.db.QueryRow(ctx, query, paymentNo))
}

// FindActiveByOrder returns the pending or successful payment for an order,
// if any. The uniqueness of active payments per order is enforced through
// this lookup at creation time.
func (r *Repository) FindActiveByOrder(ctx context.Context, orderID int) (*domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE order_id = $1 AND status IN ('pending', 'success')
        ORDER BY created_at DESC
        LIMIT 1
    `
	return scanPayment(r.db.QueryRow(ctx, query, orderID))
}

func (r *Repository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
        UPDATE payments
        SET status = $2, transaction_id = $3, paid_at = $4
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, payment.ID, payment.Status, payment.TransactionID, payment.PaidAt); err != nil {
		zap.L().Error("can't update payment", zap.Error(err))
		return err
	}
	return nil
}

// FindStalePending lists gateway payments still pending since before the
// cutoff, for explicit reconciliation sweeps.
func (r *Repository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE status = 'pending' AND method = 'wechat' AND created_at < $1
        ORDER BY created_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		zap.L().Error("can't get stale pending payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.PaymentNo, &p.OrderID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.TransactionID, &p.PaidAt, &p.CreatedAt); err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}
