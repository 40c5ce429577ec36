package refundservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/service/orderservice"
)

type Repo interface {
	Save(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, refundID int) (*domain.Refund, error)
	GetByIDForUpdate(ctx context.Context, refundID int) (*domain.Refund, error)
	FindActiveByOrder(ctx context.Context, orderID int) (*domain.Refund, error)
	Update(ctx context.Context, refund *domain.Refund) error
}

type PaymentRepo interface {
	GetByID(ctx context.Context, id int) (*domain.Payment, error)
	FindActiveByOrder(ctx context.Context, orderID int) (*domain.Payment, error)
}

type OrderRepo interface {
	GetByIDForUpdate(ctx context.Context, orderID int) (*domain.Order, error)
}

type OrderService interface {
	ApplyRefund(ctx context.Context, orderID, userID int) error
	CompleteRefund(ctx context.Context, orderID int) error
	RejectRefund(ctx context.Context, orderID int) error
}

type WalletRepo interface {
	UpdateBalance(ctx context.Context, userID int, delta float64, recordType, remark string) (*domain.BalanceRecord, error)
}

type Service struct {
	repo         Repo
	paymentRepo  PaymentRepo
	orderRepo    OrderRepo
	orderService OrderService
	walletRepo   WalletRepo
	txManager    pg.TXManager
}

func New(repo Repo, paymentRepo PaymentRepo, orderRepo OrderRepo, orderService OrderService, walletRepo WalletRepo, txManager pg.TXManager) *Service {
	return &Service{
		repo:         repo,
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		orderService: orderService,
		walletRepo:   walletRepo,
		txManager:    txManager,
	}
}

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderNotRefundable      = errors.New("order is not refundable")
	ErrPaymentNotFound         = errors.New("no successful payment for order")
	ErrRefundNotFound          = errors.New("refund not found")
	ErrActiveRefundExists      = errors.New("active refund already exists for order")
	ErrInvalidStatusTransition = errors.New("invalid refund status transition")
)

// CreateRefund opens a full refund request against a completed order and
// moves the order into refunding while the request awaits review.
func (s *Service) CreateRefund(ctx context.Context, orderID, userID int, reason string) (*domain.Refund, error) {
	var refund *domain.Refund

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID {
			return ErrOrderNotFound
		}
		if order.Status != domain.OrderStatusCompleted {
			return ErrOrderNotRefundable
		}

		payment, err := s.paymentRepo.FindActiveByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if payment == nil || payment.Status != domain.PaymentStatusSuccess {
			return ErrPaymentNotFound
		}

		active, err := s.repo.FindActiveByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrActiveRefundExists
		}

		refund = &domain.Refund{
			RefundNo:  GenerateRefundNo(),
			PaymentID: payment.ID,
			OrderID:   orderID,
			UserID:    userID,
			Amount:    payment.Amount,
			Reason:    reason,
			Status:    domain.RefundStatusPending,
		}
		if err := s.repo.Save(ctx, refund); err != nil {
			return err
		}
		return s.orderService.ApplyRefund(ctx, orderID, userID)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("refund requested",
		zap.String("refundNo", refund.RefundNo),
		zap.Int("orderID", orderID),
		zap.Float64("amount", refund.Amount),
	)
	return refund, nil
}

// ProcessRefund reviews a pending refund. Approval returns the money along
// the original payment path and finishes the order as refunded; rejection
// puts the order back to completed.
func (s *Service) ProcessRefund(ctx context.Context, refundID int, approved bool) (*domain.Refund, error) {
	var refund *domain.Refund

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		refund, err = s.repo.GetByIDForUpdate(ctx, refundID)
		if err != nil {
			return err
		}
		if refund == nil {
			return ErrRefundNotFound
		}
		if refund.Status != domain.RefundStatusPending {
			return ErrInvalidStatusTransition
		}

		if !approved {
			refund.Status = domain.RefundStatusFailed
			if err := s.repo.Update(ctx, refund); err != nil {
				return err
			}
			return s.orderService.RejectRefund(ctx, refund.OrderID)
		}

		payment, err := s.paymentRepo.GetByID(ctx, refund.PaymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrPaymentNotFound
		}

		if payment.Method == domain.PaymentMethodBalance {
			if _, err := s.walletRepo.UpdateBalance(ctx, refund.UserID, refund.Amount, domain.RecordTypeRefund, refund.RefundNo); err != nil {
				return err
			}
		}

		now := time.Now()
		refund.Status = domain.RefundStatusSuccess
		refund.TransactionID = "RF" + refund.RefundNo
		refund.RefundedAt = &now
		if err := s.repo.Update(ctx, refund); err != nil {
			return err
		}
		return s.orderService.CompleteRefund(ctx, refund.OrderID)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("refund processed",
		zap.String("refundNo", refund.RefundNo),
		zap.Bool("approved", approved),
		zap.String("status", refund.Status),
	)
	return refund, nil
}

func (s *Service) GetRefund(ctx context.Context, refundID, userID int) (*domain.Refund, error) {
	refund, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund == nil || refund.UserID != userID {
		return nil, ErrRefundNotFound
	}
	return refund, nil
}

// GenerateRefundNo issues a refund number in the shared sortable shape.
func GenerateRefundNo() string {
	return "R" + orderservice.GenerateOrderNo()
}
