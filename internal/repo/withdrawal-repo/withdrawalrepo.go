package withdrawalrepo

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

const withdrawalColumns = `id, user_id, amount, status, reject_reason, processed_at, created_at`

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RejectReason, &w.ProcessedAt, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan withdrawal", zap.Error(err))
		return nil, err
	}
	return &w, nil
}

func (r *Repository) Save(ctx context.Context, withdrawal *domain.Withdrawal) error {
	query := `
        INSERT INTO withdrawals (user_id, amount, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, withdrawal.UserID, withdrawal.Amount, withdrawal.Status).
		Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	return scanWithdrawal(r.db.QueryRow(ctx, query, withdrawalID))
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1 FOR UPDATE`
	return scanWithdrawal(r.db.QueryRow(ctx, query, withdrawalID))
}

func (r *Repository) Update(ctx context.Context, withdrawal *domain.Withdrawal) error {
	query := `
        UPDATE withdrawals
        SET status = $2, reject_reason = $3, processed_at = $4
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, withdrawal.ID, withdrawal.Status, withdrawal.RejectReason, withdrawal.ProcessedAt); err != nil {
		zap.L().Error("can't update withdrawal", zap.Error(err))
		return err
	}
	return nil
}

// SumByStatuses aggregates a referrer's withdrawal amounts over the given
// statuses; the eligibility check subtracts these from the commission pool.
func (r *Repository) SumByStatuses(ctx context.Context, userID int, statuses []string) (float64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM withdrawals
        WHERE user_id = $1 AND status = ANY($2)
    `
	var sum float64
	if err := r.db.QueryRow(ctx, query, userID, statuses).Scan(&sum); err != nil {
		zap.L().Error("can't sum withdrawals", zap.Error(err))
		return 0, err
	}
	return sum, nil
}

func (r *Repository) FindByUser(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.queryWithdrawals(ctx, query, userID)
}

func (r *Repository) List(ctx context.Context, status string, limit, offset int) ([]domain.Withdrawal, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	return r.queryWithdrawals(ctx, query, status, limit, offset)
}

func (r *Repository) queryWithdrawals(ctx context.Context, query string, args ...interface{}) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RejectReason, &w.ProcessedAt, &w.CreatedAt); err != nil {
			zap.L().Error("can't scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}
