package commissionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/minimall/mallcore/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func commissionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "order_id", "order_no", "product_id", "product_name",
		"order_amount", "rate", "amount", "status", "settled_at", "created_at",
	})
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Assigns id and created_at", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO commissions`)).
			WithArgs(2, 100, "A", 7, "Mug", 80.0, 0.1, 8.0, "pending").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

		commission := &domain.Commission{
			UserID: 2, OrderID: 100, OrderNo: "A", ProductID: 7, ProductName: "Mug",
			OrderAmount: 80.0, Rate: 0.1, Amount: 8.0, Status: domain.CommissionStatusPending,
		}
		err := repo.Save(context.Background(), commission)
		assert.NoError(t, err)
		assert.Equal(t, 1, commission.ID)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO commissions`)).
			WithArgs(2, 100, "A", 7, "Mug", 80.0, 0.1, 8.0, "pending").
			WillReturnError(errors.New("database error"))

		err := repo.Save(context.Background(), &domain.Commission{
			UserID: 2, OrderID: 100, OrderNo: "A", ProductID: 7, ProductName: "Mug",
			OrderAmount: 80.0, Rate: 0.1, Amount: 8.0, Status: domain.CommissionStatusPending,
		})
		assert.Error(t, err)
	})
}

func TestRepository_GetByOrderID(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`SELECT ` + commissionColumns + ` FROM commissions WHERE order_id = $1`)

	t.Run("Existing commission", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(100).
			WillReturnRows(commissionRows().AddRow(1, 2, 100, "A", 7, "Mug", 80.0, 0.1, 8.0, "pending", nil, time.Now()))

		commission, err := repo.GetByOrderID(context.Background(), 100)
		assert.NoError(t, err)
		assert.Equal(t, 8.0, commission.Amount)
	})

	t.Run("No commission for order returns nil", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(100).
			WillReturnError(pgx.ErrNoRows)

		commission, err := repo.GetByOrderID(context.Background(), 100)
		assert.NoError(t, err)
		assert.Nil(t, commission)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Settles a commission", func(t *testing.T) {
		now := time.Now()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE commissions`)).
			WithArgs(1, "settled", &now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(context.Background(), 1, domain.CommissionStatusSettled, &now)
		assert.NoError(t, err)
	})

	t.Run("Confirms without settled_at", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE commissions`)).
			WithArgs(1, "confirmed", (*time.Time)(nil)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(context.Background(), 1, domain.CommissionStatusConfirmed, nil)
		assert.NoError(t, err)
	})
}

func TestRepository_SumByStatuses(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Aggregates over statuses", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
			WithArgs(2, []string{"confirmed", "settled"}).
			WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(28.5))

		sum, err := repo.SumByStatuses(context.Background(), 2, []string{
			domain.CommissionStatusConfirmed, domain.CommissionStatusSettled,
		})
		assert.NoError(t, err)
		assert.Equal(t, 28.5, sum)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
			WithArgs(2, []string{"pending"}).
			WillReturnError(errors.New("database error"))

		_, err := repo.SumByStatuses(context.Background(), 2, []string{domain.CommissionStatusPending})
		assert.Error(t, err)
	})
}

func TestRepository_FindConfirmedForUpdate(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND status = 'confirmed'`)).
		WithArgs(2).
		WillReturnRows(commissionRows().
			AddRow(1, 2, 100, "A", 7, "Mug", 80.0, 0.1, 8.0, "confirmed", nil, time.Now()).
			AddRow(3, 2, 101, "B", 8, "Plate", 120.0, 0.1, 12.0, "confirmed", nil, time.Now()))

	commissions, err := repo.FindConfirmedForUpdate(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, commissions, 2)
	assert.Equal(t, 12.0, commissions[1].Amount)
}

func TestRepository_FindByUser(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1`)).
		WithArgs(2, 20, 0).
		WillReturnRows(commissionRows().
			AddRow(1, 2, 100, "A", 7, "Mug", 80.0, 0.1, 8.0, "pending", nil, time.Now()))

	commissions, err := repo.FindByUser(context.Background(), 2, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, commissions, 1)
}
