package commissionrepo

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

const commissionColumns = `id, user_id, order_id, order_no, product_id, product_name, order_amount, rate, amount, status, settled_at, created_at`

func scanCommission(row pgx.Row) (*domain.Commission, error) {
	var c domain.Commission
	err := row.Scan(&c.ID, &c.UserID, &c.OrderID, &c.OrderNo, &c.ProductID, &c.ProductName, &c.OrderAmount, &c.Rate, &c.Amount, &c.Status, &c.SettledAt, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan commission", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Save(ctx context.Context, commission *domain.Commission) error {
	query := `
        INSERT INTO commissions (user_id, order_id, order_no, product_id, product_name, order_amount, rate, amount, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		commission.UserID, commission.OrderID, commission.OrderNo, commission.ProductID, commission.ProductName,
		commission.OrderAmount, commission.Rate, commission.Amount, commission.Status,
	).Scan(&commission.ID, &commission.CreatedAt)
	if err != nil {
		zap.L().Error("can't save commission", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID int) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE order_id = $1`
	return scanCommission(r.db.QueryRow(ctx, query, orderID))
}

func (r *Repository) GetByOrderIDForUpdate(ctx context.Context, orderID int) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE order_id = $1 FOR UPDATE`
	return scanCommission(r.db.QueryRow(ctx, query, orderID))
}

func (r *Repository) UpdateStatus(ctx context.Context, commissionID int, status string, settledAt *time.Time) error {
	query := `
        UPDATE commissions
        SET status = $2, settled_at = $3
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, commissionID, status, settledAt); err != nil {
		zap.L().Error("can't update commission status", zap.Error(err))
		return err
	}
	return nil
}

// SumByStatuses aggregates a referrer's commission amounts over the given
// statuses.
func (r *Repository) SumByStatuses(ctx context.Context, userID int, statuses []string) (float64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM commissions
        WHERE user_id = $1 AND status = ANY($2)
    `
	var sum float64
	if err := r.db.QueryRow(ctx, query, userID, statuses).Scan(&sum); err != nil {
		zap.L().Error("can't sum commissions", zap.Error(err))
		return 0, err
	}
	return sum, nil
}

// FindConfirmedForUpdate returns a referrer's confirmed commissions oldest
// first with their rows locked, for settlement during withdrawal completion.
func (r *Repository) FindConfirmedForUpdate(ctx context.Context, userID int) ([]domain.Commission, error) {
	query := `
        SELECT ` + commissionColumns + `
        FROM commissions
        WHERE user_id = $1 AND status = 'confirmed'
        ORDER BY created_at ASC
        FOR UPDATE
    `
	return r.queryCommissions(ctx, query, userID)
}

func (r *Repository) FindByUser(ctx context.Context, userID int, limit, offset int) ([]domain.Commission, error) {
	query := `
        SELECT ` + commissionColumns + `
        FROM commissions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	return r.queryCommissions(ctx, query, userID, limit, offset)
}

func (r *Repository) ListAll(ctx context.Context, limit, offset int) ([]domain.Commission, error) {
	query := `
        SELECT ` + commissionColumns + `
        FROM commissions
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	return r.queryCommissions(ctx, query, limit, offset)
}

func (r *Repository) queryCommissions(ctx context.Context, query string, args ...interface{}) ([]domain.Commission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get commissions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var commissions []domain.Commission
	for rows.Next() {
		var c domain.Commission
		if err := rows.Scan(&c.ID, &c.UserID, &c.OrderID, &c.OrderNo, &c.ProductID, &c.ProductName, &c.OrderAmount, &c.Rate, &c.Amount, &c.Status, &c.SettledAt, &c.CreatedAt); err != nil {
			zap.L().Error("can't scan commission row", zap.Error(err))
			return nil, err
		}
		commissions = append(commissions, c)
	}
	return commissions, nil
}
