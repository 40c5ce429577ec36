package paymentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/wxpay"
)

type mocks struct {
	repo         *MockRepo
	orderRepo    *MockOrderRepo
	walletRepo   *MockWalletRepo
	orderService *MockOrderService
	gateway      *MockGateway
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:         NewMockRepo(ctrl),
		orderRepo:    NewMockOrderRepo(ctrl),
		walletRepo:   NewMockWalletRepo(ctrl),
		orderService: NewMockOrderService(ctrl),
		gateway:      NewMockGateway(ctrl),
	}
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
	service := New(m.repo, m.orderRepo, m.walletRepo, m.orderService, m.gateway, txManager)
	defer ctrl.Finish()
	return service, m
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:      100,
		OrderNo: "20240101120000abcd1234",
		UserID:  1,
		Status:  domain.OrderStatusPendingPayment,
		// pay amount after all discounts
		PayAmount: 80.0,
	}
}

func TestCreatePayment(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		prepareMock   func(m *mocks)
		check         func(t *testing.T, result *CreateResult)
		expectedError error
	}{
		{
			name:   "Balance payment settles synchronously",
			method: domain.PaymentMethodBalance,
			prepareMock: func(m *mocks) {
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(pendingOrder(), nil)
				m.repo.EXPECT().FindActiveByOrder(gomock.Any(), 100).Return(nil, nil)
				m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Balance: 100.0}, nil)
				m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), 1, -80.0, domain.RecordTypeOrderPay, gomock.Any()).
					Return(&domain.BalanceRecord{}, nil)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.orderService.EXPECT().MarkPaid(gomock.Any(), 100).Return(nil)
			},
			check: func(t *testing.T, result *CreateResult) {
				assert.Equal(t, domain.PaymentStatusSuccess, result.Payment.Status)
				assert.Equal(t, domain.PaymentMethodBalance, result.Payment.Method)
				assert.NotNil(t, result.Payment.PaidAt)
				assert.Nil(t, result.GatewayParams)
			},
		},
		{
			name:   "Balance payment with insufficient funds",
			method: domain.PaymentMethodBalance,
			prepareMock: func(m *mocks) {
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(pendingOrder(), nil)
				m.repo.EXPECT().FindActiveByOrder(gomock.Any(), 100).Return(nil, nil)
				m.walletRepo.EXPECT().GetUserForUpdate(gomock.Any(), 1).
					Return(&domain.User{ID: 1, Balance: 10.0}, nil)
			},
			expectedError: ErrInsufficientBalance,
		},
		{
			name:   "Gateway payment returns client params",
			method: domain.PaymentMethodWechat,
			prepareMock: func(m *mocks) {
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(pendingOrder(), nil)
				m.repo.EXPECT().FindActiveByOrder(gomock.Any(), 100).Return(nil, nil)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.gateway.EXPECT().UnifiedOrder(gomock.Any(), gomock.Any(), 80.0, gomock.Any(), gomock.Any(), "").
					Return("PREPAY123", nil)
				m.gateway.EXPECT().ClientParams("PREPAY123").Return(map[string]string{
					"package": "prepay_id=PREPAY123",
				})
			},
			check: func(t *testing.T, result *CreateResult) {
				assert.Equal(t, domain.PaymentStatusPending, result.Payment.Status)
				assert.Equal(t, "prepay_id=PREPAY123", result.GatewayParams["package"])
			},
		},
		{
			name:   "Pending gateway payment is reused",
			method: domain.PaymentMethodWechat,
			prepareMock: func(m *mocks) {
				existing := &domain.Payment{
					ID: 5, PaymentNo: "P20240101120000abcd1234", OrderID: 100, UserID: 1,
					Amount: 80.0, Method: domain.PaymentMethodWechat, Status: domain.PaymentStatusPending,
				}
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(pendingOrder(), nil)
				m.repo.EXPECT().FindActiveByOrder(gomock.Any(), 100).Return(existing, nil)
				m.gateway.EXPECT().UnifiedOrder(gomock.Any(), "P20240101120000abcd1234", 80.0, gomock.Any(), gomock.Any(), "").
					Return("PREPAY123", nil)
				m.gateway.EXPECT().ClientParams("PREPAY123").Return(map[string]string{})
			},
			check: func(t *testing.T, result *CreateResult) {
				assert.Equal(t, 5, result.Payment.ID)
			},
		},
		{
			name:   "Gateway outage degrades to mock prepay",
			method: domain.PaymentMethodWechat,
			prepareMock: func(m *mocks) {
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(pendingOrder(), nil)
				m.repo.EXPECT().FindActiveByOrder(gomock.Any(), 100).Return(nil, nil)
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.gateway.EXPECT().UnifiedOrder(gomock.Any(), gomock.Any(), 80.0, gomock.Any(), gomock.Any(), "").
					Return("", wxpay.ErrGatewayUnavailable)
				m.gateway.EXPECT().ClientParams(gomock.Any()).Return(map[string]string{})
			},
			check: func(t *testing.T, result *CreateResult) {
				assert.Equal(t, domain.PaymentStatusPending, result.Payment.Status)
			},
		},
		{
			name:   "Order already paid",
			method: domain.PaymentMethodBalance,
			prepareMock: func(m *mocks) {
				order := pendingOrder()
				order.Status = domain.OrderStatusPendingShipment
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(order, nil)
			},
			expectedError: ErrOrderNotPayable,
		},
		{
			name:   "Unknown method",
			method: "alipay",
			prepareMock: func(m *mocks) {
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(pendingOrder(), nil)
				m.repo.EXPECT().FindActiveByOrder(gomock.Any(), 100).Return(nil, nil)
			},
			expectedError: ErrUnsupportedMethod,
		},
		{
			name:   "Foreign order is not found",
			method: domain.PaymentMethodBalance,
			prepareMock: func(m *mocks) {
				order := pendingOrder()
				order.UserID = 2
				m.orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 100).Return(order, nil)
			},
			expectedError: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			result, err := service.CreatePayment(context.Background(), 100, 1, tt.method, "10.0.0.1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestHandleCallback(t *testing.T) {
	payload := []byte("<xml><out_trade_no>P1</out_trade_no></xml>")

	tests := []struct {
		name        string
		prepareMock func(m *mocks)
		expectAckOK bool
	}{
		{
			name: "Successful notification settles payment and order",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().ParseNotification(payload).Return(&wxpay.Notification{
					OutTradeNo: "P1", TransactionID: "WX123", ResultCode: "SUCCESS", TotalFee: 8000,
				}, nil)
				m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
					ID: 5, PaymentNo: "P1", OrderID: 100, Amount: 80.0, Status: domain.PaymentStatusPending,
				}, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Payment) error {
						assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
						assert.Equal(t, "WX123", p.TransactionID)
						return nil
					})
				m.orderService.EXPECT().MarkPaid(gomock.Any(), 100).Return(nil)
			},
			expectAckOK: true,
		},
		{
			name: "Replay after success acknowledges without side effects",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().ParseNotification(payload).Return(&wxpay.Notification{
					OutTradeNo: "P1", ResultCode: "SUCCESS", TotalFee: 8000,
				}, nil)
				m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
					ID: 5, PaymentNo: "P1", Status: domain.PaymentStatusSuccess,
				}, nil)
			},
			expectAckOK: true,
		},
		{
			name: "Bad signature is rejected before any lookup",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().ParseNotification(payload).Return(nil, wxpay.ErrBadSignature)
			},
			expectAckOK: false,
		},
		{
			name: "Amount mismatch fails the notification",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().ParseNotification(payload).Return(&wxpay.Notification{
					OutTradeNo: "P1", ResultCode: "SUCCESS", TotalFee: 1,
				}, nil)
				m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
					ID: 5, PaymentNo: "P1", Amount: 80.0, Status: domain.PaymentStatusPending,
				}, nil)
			},
			expectAckOK: false,
		},
		{
			name: "Failed result marks payment failed and leaves order alone",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().ParseNotification(payload).Return(&wxpay.Notification{
					OutTradeNo: "P1", ResultCode: "FAIL",
				}, nil)
				m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
					ID: 5, PaymentNo: "P1", Amount: 80.0, Status: domain.PaymentStatusPending,
				}, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Payment) error {
						assert.Equal(t, domain.PaymentStatusFailed, p.Status)
						return nil
					})
			},
			expectAckOK: true,
		},
		{
			name: "Unknown payment number fails the notification",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().ParseNotification(payload).Return(&wxpay.Notification{
					OutTradeNo: "P1", ResultCode: "SUCCESS",
				}, nil)
				m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(nil, nil)
			},
			expectAckOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			ack := service.HandleCallback(context.Background(), payload)
			if tt.expectAckOK {
				assert.Contains(t, string(ack), "SUCCESS")
			} else {
				assert.Contains(t, string(ack), "FAIL")
			}
		})
	}
}

func TestGetPayment(t *testing.T) {
	t.Run("Pending payment returned without a gateway call", func(t *testing.T) {
		service, m := NewMock(t)
		// no gateway expectation: the snapshot never polls
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			PaymentNo: "P1", UserID: 1, Status: domain.PaymentStatusPending,
		}, nil)

		payment, err := service.GetPayment(context.Background(), "P1", 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	})

	t.Run("Foreign payment is not found", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			PaymentNo: "P1", UserID: 2,
		}, nil)

		_, err := service.GetPayment(context.Background(), "P1", 1)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestQueryStatus(t *testing.T) {
	t.Run("Terminal payment returned as is", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			PaymentNo: "P1", UserID: 1, Status: domain.PaymentStatusSuccess,
		}, nil)

		payment, err := service.QueryStatus(context.Background(), "P1", 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
	})

	t.Run("Pending payment resolved against the gateway", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			ID: 5, PaymentNo: "P1", OrderID: 100, UserID: 1, Amount: 80.0, Status: domain.PaymentStatusPending,
		}, nil)
		m.gateway.EXPECT().QueryOrder(gomock.Any(), "P1").Return(&wxpay.Notification{
			OutTradeNo: "P1", TransactionID: "WX123", ResultCode: "SUCCESS", TotalFee: 8000,
		}, nil)
		m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
			ID: 5, PaymentNo: "P1", OrderID: 100, UserID: 1, Amount: 80.0, Status: domain.PaymentStatusPending,
		}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.orderService.EXPECT().MarkPaid(gomock.Any(), 100).Return(nil)
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			PaymentNo: "P1", UserID: 1, Status: domain.PaymentStatusSuccess,
		}, nil)

		payment, err := service.QueryStatus(context.Background(), "P1", 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
	})

	t.Run("Gateway failure falls back to stored status", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			PaymentNo: "P1", UserID: 1, Status: domain.PaymentStatusPending,
		}, nil)
		m.gateway.EXPECT().QueryOrder(gomock.Any(), "P1").Return(nil, errors.New("gateway down"))

		payment, err := service.QueryStatus(context.Background(), "P1", 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	})

	t.Run("Foreign payment is not found", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().GetByNo(gomock.Any(), "P1").Return(&domain.Payment{
			PaymentNo: "P1", UserID: 2,
		}, nil)

		_, err := service.QueryStatus(context.Background(), "P1", 1)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestResolvePending(t *testing.T) {
	t.Run("Reports settled when payment reaches success", func(t *testing.T) {
		service, m := NewMock(t)
		m.gateway.EXPECT().QueryOrder(gomock.Any(), "P1").Return(&wxpay.Notification{
			OutTradeNo: "P1", TransactionID: "WX123", ResultCode: "SUCCESS", TotalFee: 8000,
		}, nil)
		m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
			ID: 5, PaymentNo: "P1", OrderID: 100, Amount: 80.0, Status: domain.PaymentStatusPending,
		}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.orderService.EXPECT().MarkPaid(gomock.Any(), 100).Return(nil)

		settled, err := service.ResolvePending(context.Background(), "P1")
		assert.NoError(t, err)
		assert.True(t, settled)
	})

	t.Run("Concurrent settle already happened", func(t *testing.T) {
		service, m := NewMock(t)
		m.gateway.EXPECT().QueryOrder(gomock.Any(), "P1").Return(&wxpay.Notification{
			OutTradeNo: "P1", ResultCode: "SUCCESS",
		}, nil)
		m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
			ID: 5, PaymentNo: "P1", Status: domain.PaymentStatusSuccess,
		}, nil)

		settled, err := service.ResolvePending(context.Background(), "P1")
		assert.NoError(t, err)
		assert.True(t, settled)
	})

	t.Run("Still unpaid at the gateway", func(t *testing.T) {
		service, m := NewMock(t)
		m.gateway.EXPECT().QueryOrder(gomock.Any(), "P1").Return(&wxpay.Notification{
			OutTradeNo: "P1", ResultCode: "NOTPAY",
		}, nil)
		m.repo.EXPECT().GetByNoForUpdate(gomock.Any(), "P1").Return(&domain.Payment{
			ID: 5, PaymentNo: "P1", Status: domain.PaymentStatusPending,
		}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *domain.Payment) error {
				assert.Equal(t, domain.PaymentStatusFailed, p.Status)
				return nil
			})

		settled, err := service.ResolvePending(context.Background(), "P1")
		assert.NoError(t, err)
		assert.False(t, settled)
	})
}

func TestGeneratePaymentNo(t *testing.T) {
	no := GeneratePaymentNo()
	assert.Len(t, no, 23)
	assert.Equal(t, "P", no[:1])

	_, err := time.Parse("20060102150405", no[1:15])
	assert.NoError(t, err)
}
