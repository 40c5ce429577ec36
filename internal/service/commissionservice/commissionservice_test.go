package commissionservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(repo, txManager)
	defer ctrl.Finish()
	return service, repo
}

func TestCreate(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name           string
		input          CreateInput
		prepareMock    func()
		expectedAmount float64
		expectedRate   float64
		expectedError  error
	}{
		{
			name: "Accrues commission with default rate",
			input: CreateInput{
				ReferrerID:  42,
				OrderID:     1,
				OrderNo:     "20240101120000abcd1234",
				ProductID:   7,
				ProductName: "Thermos",
				OrderAmount: 80.0,
			},
			prepareMock: func() {
				repo.EXPECT().GetByOrderID(gomock.Any(), 1).Return(nil, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedAmount: 8.0,
			expectedRate:   DefaultRate,
		},
		{
			name: "Accrues commission with explicit rate",
			input: CreateInput{
				ReferrerID:  42,
				OrderID:     2,
				OrderNo:     "20240101120000abcd1235",
				OrderAmount: 100.0,
				Rate:        0.15,
			},
			prepareMock: func() {
				repo.EXPECT().GetByOrderID(gomock.Any(), 2).Return(nil, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedAmount: 15.0,
			expectedRate:   0.15,
		},
		{
			name: "Rejects duplicate commission for order",
			input: CreateInput{
				ReferrerID:  42,
				OrderID:     3,
				OrderAmount: 80.0,
			},
			prepareMock: func() {
				repo.EXPECT().GetByOrderID(gomock.Any(), 3).Return(&domain.Commission{ID: 10, OrderID: 3}, nil)
			},
			expectedError: ErrCommissionExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			commission, err := service.Create(context.Background(), tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, commission)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.CommissionStatusPending, commission.Status)
			assert.Equal(t, tt.expectedAmount, commission.Amount)
			assert.Equal(t, tt.expectedRate, commission.Rate)
		})
	}
}

func TestConfirm(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		orderID       int
		prepareMock   func()
		expectedError error
	}{
		{
			name:    "Confirms pending commission",
			orderID: 1,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 1).
					Return(&domain.Commission{ID: 10, OrderID: 1, Status: domain.CommissionStatusPending}, nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.CommissionStatusConfirmed, nil).Return(nil)
			},
		},
		{
			name:    "No commission is a no-op",
			orderID: 2,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 2).Return(nil, nil)
			},
		},
		{
			name:    "Cancelled commission cannot be confirmed",
			orderID: 3,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 3).
					Return(&domain.Commission{ID: 11, OrderID: 3, Status: domain.CommissionStatusCancelled}, nil)
			},
			expectedError: ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.Confirm(context.Background(), tt.orderID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCancelByOrder(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		orderID       int
		prepareMock   func()
		expectedError error
	}{
		{
			name:    "Cancels pending commission",
			orderID: 1,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 1).
					Return(&domain.Commission{ID: 10, Status: domain.CommissionStatusPending}, nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.CommissionStatusCancelled, nil).Return(nil)
			},
		},
		{
			name:    "Cancels confirmed commission on refund",
			orderID: 2,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 2).
					Return(&domain.Commission{ID: 11, Status: domain.CommissionStatusConfirmed}, nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), 11, domain.CommissionStatusCancelled, nil).Return(nil)
			},
		},
		{
			name:    "Already cancelled is a no-op",
			orderID: 3,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 3).
					Return(&domain.Commission{ID: 12, Status: domain.CommissionStatusCancelled}, nil)
			},
		},
		{
			name:    "Settled commission stays settled",
			orderID: 4,
			prepareMock: func() {
				repo.EXPECT().GetByOrderIDForUpdate(gomock.Any(), 4).
					Return(&domain.Commission{ID: 13, Status: domain.CommissionStatusSettled}, nil)
			},
			expectedError: ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.CancelByOrder(context.Background(), tt.orderID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetEarnings(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("Aggregates totals per status group", func(t *testing.T) {
		repo.EXPECT().SumByStatuses(gomock.Any(), 42, []string{
			domain.CommissionStatusPending,
			domain.CommissionStatusConfirmed,
			domain.CommissionStatusSettled,
		}).Return(120.5, nil)
		repo.EXPECT().SumByStatuses(gomock.Any(), 42, []string{domain.CommissionStatusPending}).Return(15.0, nil)
		repo.EXPECT().SumByStatuses(gomock.Any(), 42, []string{
			domain.CommissionStatusConfirmed,
			domain.CommissionStatusSettled,
		}).Return(105.5, nil)

		earnings, err := service.GetEarnings(context.Background(), 42)
		assert.NoError(t, err)
		assert.Equal(t, 120.5, earnings.Total)
		assert.Equal(t, 15.0, earnings.Pending)
		assert.Equal(t, 105.5, earnings.Withdrawable)
	})

	t.Run("Propagates repo error", func(t *testing.T) {
		repo.EXPECT().SumByStatuses(gomock.Any(), 42, gomock.Any()).Return(0.0, errors.New("db error"))

		earnings, err := service.GetEarnings(context.Background(), 42)
		assert.Error(t, err)
		assert.Nil(t, earnings)
	})
}
