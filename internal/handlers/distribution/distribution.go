package distribution

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/dto"
	commissionservice "github.com/minimall/mallcore/internal/service/commissionservice"
	withdrawalservice "github.com/minimall/mallcore/internal/service/withdrawalservice"
	"github.com/minimall/mallcore/pkg/auth"
	"github.com/minimall/mallcore/pkg/utils"
)

type CommissionService interface {
	GetEarnings(ctx context.Context, userID int) (*commissionservice.Earnings, error)
	GetRecords(ctx context.Context, userID int, limit, offset int) ([]domain.Commission, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Commission, error)
}

type WithdrawalService interface {
	Available(ctx context.Context, userID int) (float64, error)
	Request(ctx context.Context, userID int, amount float64) (*domain.Withdrawal, error)
	Process(ctx context.Context, withdrawalID int, approved bool, rejectReason string) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Withdrawal, error)
	GenerateShareLink(userID, productID int) string
}

type DistributionHandler struct {
	commissionService CommissionService
	withdrawalService WithdrawalService
}

func New(commissionService CommissionService, withdrawalService WithdrawalService) *DistributionHandler {
	return &DistributionHandler{
		commissionService: commissionService,
		withdrawalService: withdrawalService,
	}
}

const defaultPageSize = 20

// GetIncome godoc
//
//	@Summary		Income overview
//	@Description	Total, pending and withdrawable referral earnings for the authenticated user.
//	@Tags			Distribution
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.IncomeOverviewResponseDTO	"Income overview"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/distribution/income [get]
func (h *DistributionHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	earnings, err := h.commissionService.GetEarnings(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch earnings")
		return
	}
	available, err := h.withdrawalService.Available(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch earnings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.IncomeOverviewResponseDTO{
		TotalEarnings:        earnings.Total,
		PendingEarnings:      earnings.Pending,
		WithdrawableEarnings: available,
	})
}

// GetRecords godoc
//
//	@Summary		Commission records
//	@Description	Commission accrual history for the authenticated user, newest first.
//	@Tags			Distribution
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int	false	"Page number"
//	@Success		200		{array}		dto.CommissionRecordDTO	"Commission records"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/distribution/records [get]
func (h *DistributionHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	page := pageParam(r)

	records, err := h.commissionService.GetRecords(r.Context(), userID, defaultPageSize, (page-1)*defaultPageSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toCommissionRecords(records))
}

// RequestWithdrawal godoc
//
//	@Summary		Request a withdrawal
//	@Description	Request a payout of withdrawable referral earnings.
//	@Tags			Distribution
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Withdrawal amount"
//	@Success		200		{object}	dto.WithdrawalResponseDTO	"Withdrawal request"
//	@Failure		400		{object}	utils.Response				"Invalid amount"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient withdrawable earnings"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/distribution/withdrawals [post]
func (h *DistributionHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	withdrawal, err := h.withdrawalService.Request(r.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdrawalservice.ErrInsufficientWithdrawable):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalResponse(withdrawal))
}

// GetWithdrawals godoc
//
//	@Summary		Withdrawal history
//	@Description	Withdrawal requests of the authenticated user, newest first.
//	@Tags			Distribution
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawals"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/distribution/withdrawals [get]
func (h *DistributionHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalResponses(withdrawals))
}

// GetShareLink godoc
//
//	@Summary		Referral share link
//	@Description	Build the referral link for a product; orders placed through it credit the authenticated user.
//	@Tags			Distribution
//	@Security		BearerAuth
//	@Produce		json
//	@Param			productId	query		int	true	"Product ID"
//	@Success		200			{object}	dto.ShareLinkResponseDTO	"Share link"
//	@Failure		400			{object}	utils.Response				"Invalid product id"
//	@Failure		401			{object}	utils.Response				"User not authorized"
//	@Router			/api/distribution/share-link [get]
func (h *DistributionHandler) GetShareLink(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	productID, err := strconv.Atoi(r.URL.Query().Get("productId"))
	if err != nil || productID < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ShareLinkResponseDTO{
		URL: h.withdrawalService.GenerateShareLink(userID, productID),
	})
}

// ListWithdrawals godoc
//
//	@Summary		List withdrawal requests
//	@Description	List withdrawal requests across all users, optionally filtered by status. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{array}		dto.WithdrawalResponseDTO	"Withdrawals"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/withdrawals [get]
func (h *DistributionHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page := pageParam(r)

	withdrawals, err := h.withdrawalService.ListAll(r.Context(), status, defaultPageSize, (page-1)*defaultPageSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalResponses(withdrawals))
}

// ProcessWithdrawal godoc
//
//	@Summary		Process a withdrawal request
//	@Description	Approve or reject a pending withdrawal. Approval pays it out and settles the covering commissions. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Withdrawal ID"
//	@Param			request	body		dto.ProcessWithdrawalRequestDTO	true	"Review decision"
//	@Success		200		{object}	dto.WithdrawalResponseDTO	"Processed withdrawal"
//	@Failure		400		{object}	utils.Response				"Invalid request body or missing reject reason"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		404		{object}	utils.Response				"Withdrawal not found"
//	@Failure		409		{object}	utils.Response				"Withdrawal not pending"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/process [post]
func (h *DistributionHandler) ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	withdrawalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	var req dto.ProcessWithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	withdrawal, err := h.withdrawalService.Process(r.Context(), withdrawalID, req.Approved, req.RejectReason)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, withdrawalservice.ErrRejectReasonRequired):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdrawalservice.ErrInvalidStatusTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalResponse(withdrawal))
}

// ListCommissions godoc
//
//	@Summary		List commissions
//	@Description	List commission accruals across all users, newest first. Admin only.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int	false	"Page number"
//	@Success		200		{array}		dto.CommissionRecordDTO	"Commissions"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/commissions [get]
func (h *DistributionHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	records, err := h.commissionService.ListAll(r.Context(), defaultPageSize, (page-1)*defaultPageSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch commissions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toCommissionRecords(records))
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func toCommissionRecords(records []domain.Commission) []dto.CommissionRecordDTO {
	resp := make([]dto.CommissionRecordDTO, 0, len(records))
	for _, c := range records {
		resp = append(resp, dto.CommissionRecordDTO{
			ID:          c.ID,
			OrderNo:     c.OrderNo,
			ProductName: c.ProductName,
			OrderAmount: c.OrderAmount,
			Amount:      c.Amount,
			Status:      c.Status,
			SettledAt:   c.SettledAt,
			CreatedAt:   c.CreatedAt,
		})
	}
	return resp
}

func toWithdrawalResponse(w *domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:           w.ID,
		Amount:       w.Amount,
		Status:       w.Status,
		RejectReason: w.RejectReason,
		ProcessedAt:  w.ProcessedAt,
		CreatedAt:    w.CreatedAt,
	}
}

func toWithdrawalResponses(withdrawals []domain.Withdrawal) []dto.WithdrawalResponseDTO {
	resp := make([]dto.WithdrawalResponseDTO, 0, len(withdrawals))
	for i := range withdrawals {
		resp = append(resp, toWithdrawalResponse(&withdrawals[i]))
	}
	return resp
}
