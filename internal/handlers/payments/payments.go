package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/dto"
	paymentservice "github.com/minimall/mallcore/internal/service/paymentservice"
	"github.com/minimall/mallcore/pkg/auth"
	"github.com/minimall/mallcore/pkg/utils"
)

type Service interface {
	CreatePayment(ctx context.Context, orderID, userID int, method, clientIP string) (*paymentservice.CreateResult, error)
	HandleCallback(ctx context.Context, payload []byte) []byte
	GetPayment(ctx context.Context, paymentNo string, userID int) (*domain.Payment, error)
	QueryStatus(ctx context.Context, paymentNo string, userID int) (*domain.Payment, error)
}

type Reconciler interface {
	Sweep(ctx context.Context) (int, int, error)
}

type PaymentHandler struct {
	paymentService Service
	reconciler     Reconciler
}

func New(paymentService Service, reconciler Reconciler) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		reconciler:     reconciler,
	}
}

// maxCallbackBody caps the accepted notification payload size.
const maxCallbackBody = 1 << 16

// CreatePayment godoc
//
//	@Summary		Start a payment
//	@Description	Start a payment for an order awaiting payment. Balance payments settle immediately; gateway payments return client pay-sheet parameters.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreatePaymentRequestDTO		true	"Payment payload"
//	@Success		200		{object}	dto.CreatePaymentResponseDTO	"Payment"
//	@Failure		400		{object}	utils.Response					"Invalid request body or method"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		402		{object}	utils.Response					"Insufficient balance"
//	@Failure		404		{object}	utils.Response					"Order not found"
//	@Failure		409		{object}	utils.Response					"Order not awaiting payment"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.paymentService.CreatePayment(r.Context(), req.OrderID, userID, req.Method, r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrOrderNotPayable):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, paymentservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, paymentservice.ErrUnsupportedMethod):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.CreatePaymentResponseDTO{
		PaymentNo:     result.Payment.PaymentNo,
		Amount:        result.Payment.Amount,
		Method:        result.Payment.Method,
		Status:        result.Payment.Status,
		GatewayParams: result.GatewayParams,
	})
}

// Callback godoc
//
//	@Summary		Payment gateway notification
//	@Description	Receive the asynchronous XML payment notification from the gateway. No authentication; the MD5 signature is the integrity check.
//	@Tags			Payments
//	@Accept			xml
//	@Produce		xml
//	@Success		200	{string}	string	"XML acknowledgement"
//	@Router			/api/payments/callback [post]
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	ack := h.paymentService.HandleCallback(r.Context(), payload)

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ack)
}

// GetPayment godoc
//
//	@Summary		Get payment status
//	@Description	Get the stored payment snapshot. Never calls out to the gateway; use the query endpoint to force a re-check.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			paymentNo	path		string	true	"Payment number"
//	@Success		200			{object}	dto.PaymentStatusResponseDTO	"Payment status"
//	@Failure		401			{object}	utils.Response					"User not authorized"
//	@Failure		404			{object}	utils.Response					"Payment not found"
//	@Failure		500			{object}	utils.Response					"Internal server error"
//	@Router			/api/payments/{paymentNo} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	paymentNo := chi.URLParam(r, "paymentNo")

	payment, err := h.paymentService.GetPayment(r.Context(), paymentNo, userID)
	h.renderPayment(w, payment, err)
}

// QueryPayment godoc
//
//	@Summary		Re-check payment against the gateway
//	@Description	Query the gateway for a pending payment's authoritative status; a missed notification settles here.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			paymentNo	path		string	true	"Payment number"
//	@Success		200			{object}	dto.PaymentStatusResponseDTO	"Payment status"
//	@Failure		401			{object}	utils.Response					"User not authorized"
//	@Failure		404			{object}	utils.Response					"Payment not found"
//	@Failure		500			{object}	utils.Response					"Internal server error"
//	@Router			/api/payments/{paymentNo}/query [post]
func (h *PaymentHandler) QueryPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	paymentNo := chi.URLParam(r, "paymentNo")

	payment, err := h.paymentService.QueryStatus(r.Context(), paymentNo, userID)
	h.renderPayment(w, payment, err)
}

func (h *PaymentHandler) renderPayment(w http.ResponseWriter, payment *domain.Payment, err error) {
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentStatusResponseDTO{
		PaymentNo: payment.PaymentNo,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		Status:    payment.Status,
		PaidAt:    payment.PaidAt,
	})
}

// Reconcile godoc
//
//	@Summary		Reconcile stale payments
//	@Description	Sweep payments stuck in the pending status and settle them against the gateway's authoritative answer. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReconcileResponseDTO	"Sweep result"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/payments/reconcile [post]
func (h *PaymentHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	checked, settled, err := h.reconciler.Sweep(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Reconciliation failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReconcileResponseDTO{
		Checked: checked,
		Settled: settled,
	})
}
