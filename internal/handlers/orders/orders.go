package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/dto"
	orderservice "github.com/minimall/mallcore/internal/service/orderservice"
	refundservice "github.com/minimall/mallcore/internal/service/refundservice"
	"github.com/minimall/mallcore/pkg/auth"
	"github.com/minimall/mallcore/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, userID int, in orderservice.CreateInput) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, userID int) error
	Ship(ctx context.Context, orderID int, company, trackingNo string) error
	ConfirmReceipt(ctx context.Context, orderID, userID int) error
	GetOrders(ctx context.Context, userID int, status string, limit, offset int) ([]domain.Order, error)
	GetOrderDetail(ctx context.Context, orderID, userID int) (*orderservice.OrderDetail, error)
}

type RefundService interface {
	CreateRefund(ctx context.Context, orderID, userID int, reason string) (*domain.Refund, error)
	ProcessRefund(ctx context.Context, refundID int, approved bool) (*domain.Refund, error)
}

type OrderHandler struct {
	orderService  Service
	refundService RefundService
}

func New(orderService Service, refundService RefundService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		refundService: refundService,
	}
}

const defaultPageSize = 20

// CreateOrder godoc
//
//	@Summary		Create an order from the cart
//	@Description	Create an order from the selected cart items, applying coupon, points and balance discounts.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order payload"
//	@Success		200		{object}	dto.OrderResponseDTO		"Created order"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient points or balance"
//	@Failure		409		{object}	utils.Response				"Product not sellable, out of stock or coupon not usable"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReceiverName == "" || req.ReceiverPhone == "" || req.ReceiverAddress == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "receiver name, phone and address are required")
		return
	}

	order, err := h.orderService.Create(r.Context(), userID, orderservice.CreateInput{
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		ReceiverAddress: req.ReceiverAddress,
		CouponID:        req.CouponID,
		PointsUsed:      req.PointsUsed,
		BalanceUsed:     req.BalanceUsed,
		ReferrerID:      req.ReferrerID,
		Remark:          req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrEmptyCart),
			errors.Is(err, orderservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, orderservice.ErrInsufficientPoints),
			errors.Is(err, orderservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, orderservice.ErrProductNotSellable),
			errors.Is(err, orderservice.ErrInsufficientStock),
			errors.Is(err, orderservice.ErrCouponNotUsable):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toOrderResponse(order))
}

// GetOrders godoc
//
//	@Summary		List orders
//	@Description	List the authenticated user's orders, newest first, optionally filtered by status.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Order status filter"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{array}		dto.OrderResponseDTO	"Orders"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	status := r.URL.Query().Get("status")
	page := pageParam(r)

	orders, err := h.orderService.GetOrders(r.Context(), userID, status, defaultPageSize, (page-1)*defaultPageSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	resp := make([]dto.OrderResponseDTO, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetOrderDetail godoc
//
//	@Summary		Get order detail
//	@Description	Get a single order with its item snapshots and logistics record.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Order ID"
//	@Success		200	{object}	dto.OrderDetailResponseDTO	"Order detail"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"Order not found"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	detail, err := h.orderService.GetOrderDetail(r.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toOrderDetailResponse(detail))
}

// CancelOrder godoc
//
//	@Summary		Cancel an unpaid order
//	@Description	Cancel an order awaiting payment, restoring stock, points and balance.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Order ID"
//	@Success		200	{object}	utils.Response	"Order cancelled"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order not cancellable"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.Cancel, "order cancelled")
}

// ConfirmReceipt godoc
//
//	@Summary		Confirm receipt
//	@Description	Confirm delivery of a shipped order, completing it and confirming any referral commission.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Order ID"
//	@Success		200	{object}	utils.Response	"Receipt confirmed"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order not in shipped status"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/confirm [post]
func (h *OrderHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.ConfirmReceipt, "receipt confirmed")
}

// ApplyRefund godoc
//
//	@Summary		Request a refund
//	@Description	Open a full refund request for a completed order.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Order ID"
//	@Param			request	body		dto.ApplyRefundRequestDTO	false	"Refund reason"
//	@Success		200		{object}	dto.RefundResponseDTO	"Refund request"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Order not found"
//	@Failure		409		{object}	utils.Response			"Order not refundable or refund already open"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/orders/{id}/refund [post]
func (h *OrderHandler) ApplyRefund(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.ApplyRefundRequestDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	refund, err := h.refundService.CreateRefund(r.Context(), orderID, userID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, refundservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, refundservice.ErrOrderNotRefundable),
			errors.Is(err, refundservice.ErrActiveRefundExists),
			errors.Is(err, refundservice.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toRefundResponse(refund))
}

// ShipOrder godoc
//
//	@Summary		Ship an order
//	@Description	Record the logistics shipment for a paid order. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Order ID"
//	@Param			request	body		dto.ShipOrderRequestDTO	true	"Logistics payload"
//	@Success		200		{object}	utils.Response	"Order shipped"
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		409		{object}	utils.Response	"Order not awaiting shipment"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders/{id}/ship [post]
func (h *OrderHandler) ShipOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.ShipOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Company == "" || req.TrackingNo == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company and tracking number are required")
		return
	}

	if err := h.orderService.Ship(r.Context(), orderID, req.Company, req.TrackingNo); err != nil {
		respondTransitionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "order shipped"})
}

// ProcessRefund godoc
//
//	@Summary		Process a refund request
//	@Description	Approve or reject a pending refund request. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Refund ID"
//	@Param			request	body		dto.ProcessRefundRequestDTO	true	"Review decision"
//	@Success		200		{object}	dto.RefundResponseDTO	"Processed refund"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Refund not found"
//	@Failure		409		{object}	utils.Response			"Refund not pending"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/refunds/{id}/process [post]
func (h *OrderHandler) ProcessRefund(w http.ResponseWriter, r *http.Request) {
	refundID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid refund id")
		return
	}

	var req dto.ProcessRefundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refund, err := h.refundService.ProcessRefund(r.Context(), refundID, req.Approved)
	if err != nil {
		switch {
		case errors.Is(err, refundservice.ErrRefundNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, refundservice.ErrInvalidStatusTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toRefundResponse(refund))
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, orderID, userID int) error, message string) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := op(r.Context(), orderID, userID); err != nil {
		respondTransitionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: message})
}

func respondTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orderservice.ErrOrderNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orderservice.ErrInvalidStatusTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func toOrderResponse(order *domain.Order) dto.OrderResponseDTO {
	return dto.OrderResponseDTO{
		ID:             order.ID,
		OrderNo:        order.OrderNo,
		Status:         order.Status,
		TotalAmount:    order.TotalAmount,
		PayAmount:      order.PayAmount,
		DiscountAmount: order.DiscountAmount,
		CreatedAt:      order.CreatedAt.Format("2006-01-02 15:04:05"),
		Operations:     domain.AllowedOperations(order.Status),
	}
}

func toOrderDetailResponse(detail *orderservice.OrderDetail) dto.OrderDetailResponseDTO {
	order := detail.Order
	items := make([]dto.OrderItemDTO, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID:  item.ProductID,
			SKUID:      item.SKUID,
			Name:       item.Name,
			Image:      item.Image,
			SpecValues: item.SpecValues,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}

	resp := dto.OrderDetailResponseDTO{
		ID:              order.ID,
		OrderNo:         order.OrderNo,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		PayAmount:       order.PayAmount,
		DiscountAmount:  order.DiscountAmount,
		PointsUsed:      order.PointsUsed,
		BalanceUsed:     order.BalanceUsed,
		ReceiverName:    order.Address.ReceiverName,
		ReceiverPhone:   order.Address.ReceiverPhone,
		ReceiverAddress: order.Address.ReceiverAddress,
		Remark:          order.Remark,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		PaidAt:          order.PaidAt,
		ShippedAt:       order.ShippedAt,
		CompletedAt:     order.CompletedAt,
		Operations:      domain.AllowedOperations(order.Status),
	}
	if detail.Logistics != nil {
		resp.Logistics = &dto.LogisticsDTO{
			Company:    detail.Logistics.Company,
			TrackingNo: detail.Logistics.TrackingNo,
			Status:     detail.Logistics.Status,
		}
	}
	return resp
}

func toRefundResponse(refund *domain.Refund) dto.RefundResponseDTO {
	return dto.RefundResponseDTO{
		RefundNo:   refund.RefundNo,
		OrderID:    refund.OrderID,
		Amount:     refund.Amount,
		Status:     refund.Status,
		Reason:     refund.Reason,
		RefundedAt: refund.RefundedAt,
	}
}
