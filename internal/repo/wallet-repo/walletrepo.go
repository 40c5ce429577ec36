package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"go.uber.org/zap"
)

// Repository owns the wallet fields on users together with their ledger
// tables. Every balance/points mutation inserts a paired ledger row carrying
// the delta and the resulting running total, so the history can be audited
// and replayed.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Balance, &user.Points, &user.ReferrerID, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	query := `
        SELECT id, login, password_hash, balance, points, referrer_id, created_at
        FROM users
        WHERE id = $1
    `
	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetUserForUpdate locks the user row for the duration of the surrounding
// transaction, so concurrent debits cannot both pass the precondition check.
func (r *Repository) GetUserForUpdate(ctx context.Context, userID int) (*domain.User, error) {
	query := `
        SELECT id, login, password_hash, balance, points, referrer_id, created_at
        FROM users
        WHERE id = $1
        FOR UPDATE
    `
	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetCouponForUpdate locks the user's coupon row. A coupon id belonging to
// another user comes back as not found.
func (r *Repository) GetCouponForUpdate(ctx context.Context, couponID, userID int) (*domain.Coupon, error) {
	query := `
        SELECT id, user_id, title, discount, min_amount, status, expires_at, used_at, created_at
        FROM user_coupons
        WHERE id = $1 AND user_id = $2
        FOR UPDATE
    `
	var c domain.Coupon
	err := r.db.QueryRow(ctx, query, couponID, userID).Scan(
		&c.ID, &c.UserID, &c.Title, &c.Discount, &c.MinAmount,
		&c.Status, &c.ExpiresAt, &c.UsedAt, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan coupon", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

// UpdateCouponStatus flips a coupon between unused and used; used_at follows
// the status.
func (r *Repository) UpdateCouponStatus(ctx context.Context, couponID int, status string) error {
	query := `
        UPDATE user_coupons
        SET status = $2,
            used_at = CASE WHEN $2 = 'used' THEN now() ELSE NULL END
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, couponID, status); err != nil {
		zap.L().Error("can't update coupon status", zap.Error(err))
		return err
	}
	return nil
}

// UpdateBalance applies delta (negative for a debit) to the user's balance
// and records the ledger row in the same statement sequence. Callers must run
// it inside a transaction together with the operation that caused it.
func (r *Repository) UpdateBalance(ctx context.Context, userID int, delta float64, recordType, remark string) (*domain.BalanceRecord, error) {
	query := `
        UPDATE users
        SET balance = balance + $2
        WHERE id = $1
        RETURNING balance
    `
	var balance float64
	if err := r.db.QueryRow(ctx, query, userID, delta).Scan(&balance); err != nil {
		zap.L().Error("can't update user balance", zap.Error(err))
		return nil, err
	}

	record := &domain.BalanceRecord{
		UserID:  userID,
		Amount:  delta,
		Balance: balance,
		Type:    recordType,
		Remark:  remark,
	}
	insert := `
        INSERT INTO balance_records (user_id, amount, balance, record_type, remark)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	if err := r.db.QueryRow(ctx, insert, record.UserID, record.Amount, record.Balance, record.Type, record.Remark).Scan(&record.ID, &record.CreatedAt); err != nil {
		zap.L().Error("can't insert balance record", zap.Error(err))
		return nil, err
	}
	return record, nil
}

// UpdatePoints applies delta to the user's points alongside its ledger row.
func (r *Repository) UpdatePoints(ctx context.Context, userID int, delta int, recordType, remark string) (*domain.PointsRecord, error) {
	query := `
        UPDATE users
        SET points = points + $2
        WHERE id = $1
        RETURNING points
    `
	var points int
	if err := r.db.QueryRow(ctx, query, userID, delta).Scan(&points); err != nil {
		zap.L().Error("can't update user points", zap.Error(err))
		return nil, err
	}

	record := &domain.PointsRecord{
		UserID:  userID,
		Points:  delta,
		Balance: points,
		Type:    recordType,
		Remark:  remark,
	}
	insert := `
        INSERT INTO points_records (user_id, points, balance, record_type, remark)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	if err := r.db.QueryRow(ctx, insert, record.UserID, record.Points, record.Balance, record.Type, record.Remark).Scan(&record.ID, &record.CreatedAt); err != nil {
		zap.L().Error("can't insert points record", zap.Error(err))
		return nil, err
	}
	return record, nil
}
