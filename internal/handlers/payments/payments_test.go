package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/dto"
	paymentservice "github.com/minimall/mallcore/internal/service/paymentservice"
	"github.com/minimall/mallcore/pkg/auth"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService, *MockReconciler) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	reconciler := NewMockReconciler(ctrl)
	handler := New(service, reconciler)
	defer ctrl.Finish()
	return handler, service, reconciler
}

func authRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, 1))
}

func TestCreatePaymentHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Gateway payment returns pay sheet parameters",
			body: `{"orderId":100,"method":"wechat"}`,
			prepareMock: func() {
				service.EXPECT().CreatePayment(gomock.Any(), 100, 1, domain.PaymentMethodWechat, gomock.Any()).
					Return(&paymentservice.CreateResult{
						Payment: &domain.Payment{
							PaymentNo: "P1", Amount: 80, Method: domain.PaymentMethodWechat,
							Status: domain.PaymentStatusPending,
						},
						GatewayParams: map[string]string{"package": "prepay_id=PREPAY123"},
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Balance payment settles immediately",
			body: `{"orderId":100,"method":"balance"}`,
			prepareMock: func() {
				service.EXPECT().CreatePayment(gomock.Any(), 100, 1, domain.PaymentMethodBalance, gomock.Any()).
					Return(&paymentservice.CreateResult{
						Payment: &domain.Payment{
							PaymentNo: "P1", Amount: 80, Method: domain.PaymentMethodBalance,
							Status: domain.PaymentStatusSuccess,
						},
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"orderId":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Order not found",
			body: `{"orderId":100,"method":"wechat"}`,
			prepareMock: func() {
				service.EXPECT().CreatePayment(gomock.Any(), 100, 1, domain.PaymentMethodWechat, gomock.Any()).
					Return(nil, paymentservice.ErrOrderNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Order already paid",
			body: `{"orderId":100,"method":"wechat"}`,
			prepareMock: func() {
				service.EXPECT().CreatePayment(gomock.Any(), 100, 1, domain.PaymentMethodWechat, gomock.Any()).
					Return(nil, paymentservice.ErrOrderNotPayable)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Insufficient balance",
			body: `{"orderId":100,"method":"balance"}`,
			prepareMock: func() {
				service.EXPECT().CreatePayment(gomock.Any(), 100, 1, domain.PaymentMethodBalance, gomock.Any()).
					Return(nil, paymentservice.ErrInsufficientBalance)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Unsupported method",
			body: `{"orderId":100,"method":"alipay"}`,
			prepareMock: func() {
				service.EXPECT().CreatePayment(gomock.Any(), 100, 1, "alipay", gomock.Any()).
					Return(nil, paymentservice.ErrUnsupportedMethod)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authRequest(http.MethodPost, "/api/payments", tt.body)
			w := httptest.NewRecorder()
			handler.CreatePayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.CreatePaymentResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "P1", body.PaymentNo)
			}
		})
	}
}

func TestCallbackHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Acknowledgement is passed through verbatim", func(t *testing.T) {
		payload := `<xml><out_trade_no>P1</out_trade_no></xml>`
		ack := []byte("<xml><return_code><![CDATA[SUCCESS]]></return_code></xml>")
		service.EXPECT().HandleCallback(gomock.Any(), []byte(payload)).Return(ack)

		r := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		handler.Callback(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
		assert.Equal(t, string(ack), w.Body.String())
	})

	t.Run("Rejected notification still answers with 200", func(t *testing.T) {
		payload := `<xml>garbage</xml>`
		ack := []byte("<xml><return_code><![CDATA[FAIL]]></return_code></xml>")
		service.EXPECT().HandleCallback(gomock.Any(), []byte(payload)).Return(ack)

		r := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		handler.Callback(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "FAIL")
	})
}

func TestGetPaymentHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			// the GET is a pure snapshot; the gateway is never queried here
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetPayment(gomock.Any(), "P1", 1).Return(&domain.Payment{
					PaymentNo: "P1", OrderID: 100, Amount: 80,
					Method: domain.PaymentMethodWechat, Status: domain.PaymentStatusPending,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Payment not found",
			prepareMock: func() {
				service.EXPECT().GetPayment(gomock.Any(), "P1", 1).
					Return(nil, paymentservice.ErrPaymentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetPayment(gomock.Any(), "P1", 1).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authRequest(http.MethodGet, "/api/payments/P1", "")
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("paymentNo", "P1")
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()
			handler.GetPayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestQueryPaymentHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Gateway re-check settles the payment",
			prepareMock: func() {
				service.EXPECT().QueryStatus(gomock.Any(), "P1", 1).Return(&domain.Payment{
					PaymentNo: "P1", OrderID: 100, Amount: 80,
					Method: domain.PaymentMethodWechat, Status: domain.PaymentStatusSuccess,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Payment not found",
			prepareMock: func() {
				service.EXPECT().QueryStatus(gomock.Any(), "P1", 1).
					Return(nil, paymentservice.ErrPaymentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authRequest(http.MethodPost, "/api/payments/P1/query", "")
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("paymentNo", "P1")
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()
			handler.QueryPayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestReconcileHandler(t *testing.T) {
	handler, _, reconciler := NewMock(t)

	t.Run("Sweep result is reported", func(t *testing.T) {
		reconciler.EXPECT().Sweep(gomock.Any()).Return(5, 2, nil)

		r := authRequest(http.MethodPost, "/api/admin/payments/reconcile", "")
		w := httptest.NewRecorder()
		handler.Reconcile(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body dto.ReconcileResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, 5, body.Checked)
		assert.Equal(t, 2, body.Settled)
	})

	t.Run("Sweep failure", func(t *testing.T) {
		reconciler.EXPECT().Sweep(gomock.Any()).Return(0, 0, errors.New("error"))

		r := authRequest(http.MethodPost, "/api/admin/payments/reconcile", "")
		w := httptest.NewRecorder()
		handler.Reconcile(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
