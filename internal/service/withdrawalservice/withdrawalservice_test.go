package withdrawalservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
)

type mocks struct {
	repo           *MockRepo
	commissionRepo *MockCommissionRepo
	walletRepo     *MockWalletRepo
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:           NewMockRepo(ctrl),
		commissionRepo: NewMockCommissionRepo(ctrl),
		walletRepo:     NewMockWalletRepo(ctrl),
	}
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(m.repo, m.commissionRepo, m.walletRepo, txManager, "https://mall.example.com")
	defer ctrl.Finish()
	return service, m
}

func TestAvailable(t *testing.T) {
	t.Run("Earned minus claimed", func(t *testing.T) {
		service, m := NewMock(t)
		m.commissionRepo.EXPECT().
			SumByStatuses(gomock.Any(), 1, []string{domain.CommissionStatusConfirmed, domain.CommissionStatusSettled}).
			Return(50.0, nil)
		m.repo.EXPECT().
			SumByStatuses(gomock.Any(), 1, []string{
				domain.WithdrawalStatusPending,
				domain.WithdrawalStatusApproved,
				domain.WithdrawalStatusCompleted,
			}).
			Return(20.0, nil)

		available, err := service.Available(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 30.0, available)
	})

	t.Run("Nothing earned yet", func(t *testing.T) {
		service, m := NewMock(t)
		m.commissionRepo.EXPECT().SumByStatuses(gomock.Any(), 1, gomock.Any()).Return(0.0, nil)
		m.repo.EXPECT().SumByStatuses(gomock.Any(), 1, gomock.Any()).Return(0.0, nil)

		available, err := service.Available(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, available)
	})
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name:   "Request within the withdrawable amount",
			amount: 25.0,
			prepareMock: func(m *mocks) {
				m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1}, nil)
				m.commissionRepo.EXPECT().FindConfirmedForUpdate(gomock.Any(), 1).Return([]domain.Commission{
					{ID: 1, Amount: 10.0, Status: domain.CommissionStatusConfirmed},
					{ID: 2, Amount: 20.0, Status: domain.CommissionStatusConfirmed},
				}, nil)
				m.commissionRepo.EXPECT().SumByStatuses(gomock.Any(), 1, []string{domain.CommissionStatusSettled}).
					Return(5.0, nil)
				m.repo.EXPECT().SumByStatuses(gomock.Any(), 1, gomock.Any()).Return(5.0, nil)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, w *domain.Withdrawal) error {
						assert.Equal(t, 25.0, w.Amount)
						assert.Equal(t, domain.WithdrawalStatusPending, w.Status)
						return nil
					})
			},
		},
		{
			name:   "Request exceeding the withdrawable amount",
			amount: 40.0,
			prepareMock: func(m *mocks) {
				m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1}, nil)
				m.commissionRepo.EXPECT().FindConfirmedForUpdate(gomock.Any(), 1).Return([]domain.Commission{
					{ID: 1, Amount: 30.0, Status: domain.CommissionStatusConfirmed},
				}, nil)
				m.commissionRepo.EXPECT().SumByStatuses(gomock.Any(), 1, []string{domain.CommissionStatusSettled}).
					Return(0.0, nil)
				m.repo.EXPECT().SumByStatuses(gomock.Any(), 1, gomock.Any()).Return(0.0, nil)
			},
			expectedError: ErrInsufficientWithdrawable,
		},
		{
			name:   "Open withdrawals reduce what is left",
			amount: 15.0,
			prepareMock: func(m *mocks) {
				m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1}, nil)
				m.commissionRepo.EXPECT().FindConfirmedForUpdate(gomock.Any(), 1).Return([]domain.Commission{
					{ID: 1, Amount: 30.0, Status: domain.CommissionStatusConfirmed},
				}, nil)
				m.commissionRepo.EXPECT().SumByStatuses(gomock.Any(), 1, []string{domain.CommissionStatusSettled}).
					Return(0.0, nil)
				m.repo.EXPECT().SumByStatuses(gomock.Any(), 1, gomock.Any()).Return(20.0, nil)
			},
			expectedError: ErrInsufficientWithdrawable,
		},
		{
			// Greedy settlement can leave settled > completed with zero
			// confirmed rows; the user lock is then the only serialization
			// point, so it must come before any sum is read.
			name:   "Surplus with no confirmed rows locks the user row first",
			amount: 40.0,
			prepareMock: func(m *mocks) {
				gomock.InOrder(
					m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).Return(&domain.User{ID: 1}, nil),
					m.commissionRepo.EXPECT().FindConfirmedForUpdate(gomock.Any(), 1).Return(nil, nil),
					m.commissionRepo.EXPECT().SumByStatuses(gomock.Any(), 1, []string{domain.CommissionStatusSettled}).
						Return(100.0, nil),
					m.repo.EXPECT().SumByStatuses(gomock.Any(), 1, gomock.Any()).Return(60.0, nil),
					m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name:   "Unknown user",
			amount: 10.0,
			prepareMock: func(m *mocks) {
				m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:          "Zero amount",
			amount:        0,
			prepareMock:   func(m *mocks) {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:          "Negative amount",
			amount:        -5.0,
			prepareMock:   func(m *mocks) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			withdrawal, err := service.Request(context.Background(), 1, tt.amount)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, withdrawal)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, withdrawal.UserID)
		})
	}
}

func TestProcess(t *testing.T) {
	pendingWithdrawal := func() *domain.Withdrawal {
		return &domain.Withdrawal{ID: 9, UserID: 1, Amount: 25.0, Status: domain.WithdrawalStatusPending}
	}

	t.Run("Approval settles oldest commissions until covered", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByIDForUpdate(gomock.Any(), 9).Return(pendingWithdrawal(), nil)
		m.commissionRepo.EXPECT().FindConfirmedForUpdate(gomock.Any(), 1).Return([]domain.Commission{
			{ID: 1, Amount: 10.0, Status: domain.CommissionStatusConfirmed},
			{ID: 2, Amount: 20.0, Status: domain.CommissionStatusConfirmed},
			{ID: 3, Amount: 15.0, Status: domain.CommissionStatusConfirmed},
		}, nil)
		// 10 + 20 covers 25; the third row stays confirmed
		m.commissionRepo.EXPECT().UpdateStatus(gomock.Any(), 1, domain.CommissionStatusSettled, gomock.Any()).Return(nil)
		m.commissionRepo.EXPECT().UpdateStatus(gomock.Any(), 2, domain.CommissionStatusSettled, gomock.Any()).Return(nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		withdrawal, err := service.Process(context.Background(), 9, true, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.WithdrawalStatusCompleted, withdrawal.Status)
		assert.NotNil(t, withdrawal.ProcessedAt)
	})

	t.Run("Rejection records the reason", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByIDForUpdate(gomock.Any(), 9).Return(pendingWithdrawal(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		withdrawal, err := service.Process(context.Background(), 9, false, "payout account mismatch")
		assert.NoError(t, err)
		assert.Equal(t, domain.WithdrawalStatusRejected, withdrawal.Status)
		assert.Equal(t, "payout account mismatch", withdrawal.RejectReason)
	})

	t.Run("Rejection without a reason is refused", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.Process(context.Background(), 9, false, "")
		assert.ErrorIs(t, err, ErrRejectReasonRequired)
	})

	t.Run("Already processed withdrawal", func(t *testing.T) {
		service, m := NewMock(t)
		done := pendingWithdrawal()
		done.Status = domain.WithdrawalStatusCompleted
		m.repo.EXPECT().GetByIDForUpdate(gomock.Any(), 9).Return(done, nil)

		_, err := service.Process(context.Background(), 9, true, "")
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("Unknown withdrawal", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByIDForUpdate(gomock.Any(), 9).Return(nil, nil)

		_, err := service.Process(context.Background(), 9, true, "")
		assert.ErrorIs(t, err, ErrWithdrawalNotFound)
	})
}

func TestGenerateShareLink(t *testing.T) {
	service, _ := NewMock(t)
	link := service.GenerateShareLink(1, 7)
	assert.Equal(t, "https://mall.example.com/product/7?ref=1", link)
}
