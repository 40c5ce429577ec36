package distribution

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
	commissionservice "github.com/minimall/mallcore/internal/service/commissionservice"
	withdrawalservice "github.com/minimall/mallcore/internal/service/withdrawalservice"
	"github.com/minimall/mallcore/pkg/auth"
)

func NewMock(t *testing.T) (*DistributionHandler, *MockCommissionService, *MockWithdrawalService) {
	ctrl := gomock.NewController(t)
	commissions := NewMockCommissionService(ctrl)
	withdrawals := NewMockWithdrawalService(ctrl)
	handler := New(commissions, withdrawals)
	defer ctrl.Finish()
	return handler, commissions, withdrawals
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

func TestGetIncomeHandler(t *testing.T) {
	handler, commissions, withdrawals := NewMock(t)

	t.Run("Overview combines earnings and availability", func(t *testing.T) {
		commissions.EXPECT().GetEarnings(gomock.Any(), 1).Return(&commissionservice.Earnings{
			Total: 50.0, Pending: 12.5, Withdrawable: 30.0,
		}, nil)
		withdrawals.EXPECT().Available(gomock.Any(), 1).Return(25.0, nil)

		r := authRequest(http.MethodGet, "/api/distribution/income", "")
		w := httptest.NewRecorder()
		handler.GetIncome(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body dto.IncomeOverviewResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, 50.0, body.TotalEarnings)
		assert.Equal(t, 12.5, body.PendingEarnings)
		assert.Equal(t, 25.0, body.WithdrawableEarnings)
	})

	t.Run("Earnings failure", func(t *testing.T) {
		commissions.EXPECT().GetEarnings(gomock.Any(), 1).Return(nil, errors.New("error"))

		r := authRequest(http.MethodGet, "/api/distribution/income", "")
		w := httptest.NewRecorder()
		handler.GetIncome(w, r)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetRecordsHandler(t *testing.T) {
	handler, commissions, _ := NewMock(t)
	commissions.EXPECT().GetRecords(gomock.Any(), 1, defaultPageSize, 0).Return([]domain.Commission{
		{ID: 1, OrderNo: "A", ProductName: "Mug", OrderAmount: 80, Amount: 8, Status: domain.CommissionStatusPending},
	}, nil)

	r := authRequest(http.MethodGet, "/api/distribution/records", "")
	w := httptest.NewRecorder()
	handler.GetRecords(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.CommissionRecordDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
	assert.Equal(t, 8.0, body[0].Amount)
}

func TestRequestWithdrawalHandler(t *testing.T) {
	handler, _, withdrawals := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful request",
			body: `{"amount":25.5}`,
			prepareMock: func() {
				withdrawals.EXPECT().Request(gomock.Any(), 1, 25.5).
					Return(&domain.Withdrawal{ID: 9, Amount: 25.5, Status: domain.WithdrawalStatusPending}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"amount":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Invalid amount",
			body: `{"amount":-1}`,
			prepareMock: func() {
				withdrawals.EXPECT().Request(gomock.Any(), 1, -1.0).
					Return(nil, withdrawalservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient withdrawable earnings",
			body: `{"amount":100}`,
			prepareMock: func() {
				withdrawals.EXPECT().Request(gomock.Any(), 1, 100.0).
					Return(nil, withdrawalservice.ErrInsufficientWithdrawable)
			},
			expectedCode: http.StatusPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authRequest(http.MethodPost, "/api/distribution/withdrawals", tt.body)
			w := httptest.NewRecorder()
			handler.RequestWithdrawal(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, _, withdrawals := NewMock(t)
	withdrawals.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.Withdrawal{
		{ID: 9, Amount: 25.5, Status: domain.WithdrawalStatusCompleted},
	}, nil)

	r := authRequest(http.MethodGet, "/api/distribution/withdrawals", "")
	w := httptest.NewRecorder()
	handler.GetWithdrawals(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.WithdrawalResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
}

func TestGetShareLinkHandler(t *testing.T) {
	handler, _, withdrawals := NewMock(t)

	t.Run("Link for a product", func(t *testing.T) {
		withdrawals.EXPECT().GenerateShareLink(1, 7).Return("https://mall.example.com/product/7?ref=1")

		r := authRequest(http.MethodGet, "/api/distribution/share-link?productId=7", "")
		w := httptest.NewRecorder()
		handler.GetShareLink(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body dto.ShareLinkResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, "https://mall.example.com/product/7?ref=1", body.URL)
	})

	t.Run("Invalid product id", func(t *testing.T) {
		r := authRequest(http.MethodGet, "/api/distribution/share-link?productId=abc", "")
		w := httptest.NewRecorder()
		handler.GetShareLink(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListWithdrawalsHandler(t *testing.T) {
	handler, _, withdrawals := NewMock(t)
	withdrawals.EXPECT().
		ListAll(gomock.Any(), domain.WithdrawalStatusPending, defaultPageSize, 0).
		Return([]domain.Withdrawal{{ID: 9, Status: domain.WithdrawalStatusPending}}, nil)

	r := authRequest(http.MethodGet, "/api/admin/withdrawals?status=pending", "")
	w := httptest.NewRecorder()
	handler.ListWithdrawals(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.WithdrawalResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
}

func TestProcessWithdrawalHandler(t *testing.T) {
	handler, _, withdrawals := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Approval",
			body: `{"approved":true}`,
			prepareMock: func() {
				withdrawals.EXPECT().Process(gomock.Any(), 9, true, "").
					Return(&domain.Withdrawal{ID: 9, Status: domain.WithdrawalStatusCompleted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Rejection without a reason",
			body: `{"approved":false}`,
			prepareMock: func() {
				withdrawals.EXPECT().Process(gomock.Any(), 9, false, "").
					Return(nil, withdrawalservice.ErrRejectReasonRequired)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Withdrawal not found",
			body: `{"approved":true}`,
			prepareMock: func() {
				withdrawals.EXPECT().Process(gomock.Any(), 9, true, "").
					Return(nil, withdrawalservice.ErrWithdrawalNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Withdrawal already processed",
			body: `{"approved":true}`,
			prepareMock: func() {
				withdrawals.EXPECT().Process(gomock.Any(), 9, true, "").
					Return(nil, withdrawalservice.ErrInvalidStatusTransition)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authRequest(http.MethodPost, "/api/admin/withdrawals/9/process", tt.body)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "9")
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()
			handler.ProcessWithdrawal(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListCommissionsHandler(t *testing.T) {
	handler, commissions, _ := NewMock(t)
	commissions.EXPECT().ListAll(gomock.Any(), defaultPageSize, defaultPageSize).Return([]domain.Commission{
		{ID: 1, Status: domain.CommissionStatusConfirmed},
	}, nil)

	r := authRequest(http.MethodGet, "/api/admin/commissions?page=2", "")
	w := httptest.NewRecorder()
	handler.ListCommissions(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.CommissionRecordDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 1)
}
