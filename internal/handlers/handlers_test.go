package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/minimall/mallcore/docs"
	"github.com/minimall/mallcore/internal/handlers/distribution"
	"github.com/minimall/mallcore/internal/handlers/orders"
	"github.com/minimall/mallcore/internal/handlers/payments"
	"github.com/minimall/mallcore/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		OrderService:      orders.NewMockService(ctrl),
		RefundService:     orders.NewMockRefundService(ctrl),
		PaymentService:    payments.NewMockService(ctrl),
		Reconciler:        payments.NewMockReconciler(ctrl),
		CommissionService: distribution.NewMockCommissionService(ctrl),
		WithdrawalService: distribution.NewMockWithdrawalService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockDistributionHandler := NewMockDistributionHandler(ctrl)

	mockPaymentHandler.EXPECT().Callback(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		OrderHandler:        mockOrderHandler,
		PaymentHandler:      mockPaymentHandler,
		DistributionHandler: mockDistributionHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/payments/callback", http.StatusOK},
		{"POST", "/api/orders", http.StatusUnauthorized},
		{"GET", "/api/orders", http.StatusUnauthorized},
		{"GET", "/api/orders/1", http.StatusUnauthorized},
		{"POST", "/api/orders/1/cancel", http.StatusUnauthorized},
		{"POST", "/api/orders/1/confirm", http.StatusUnauthorized},
		{"POST", "/api/orders/1/refund", http.StatusUnauthorized},
		{"POST", "/api/payments", http.StatusUnauthorized},
		{"GET", "/api/payments/P1", http.StatusUnauthorized},
		{"GET", "/api/distribution/income", http.StatusUnauthorized},
		{"GET", "/api/distribution/records", http.StatusUnauthorized},
		{"POST", "/api/distribution/withdrawals", http.StatusUnauthorized},
		{"GET", "/api/distribution/withdrawals", http.StatusUnauthorized},
		{"GET", "/api/distribution/share-link", http.StatusUnauthorized},
		{"POST", "/api/admin/orders/1/ship", http.StatusUnauthorized},
		{"POST", "/api/admin/refunds/1/process", http.StatusUnauthorized},
		{"POST", "/api/admin/payments/reconcile", http.StatusUnauthorized},
		{"GET", "/api/admin/withdrawals", http.StatusUnauthorized},
		{"GET", "/api/admin/commissions", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
