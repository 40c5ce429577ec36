package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/service/orderservice"
	"github.com/minimall/mallcore/internal/wxpay"
)

type Repo interface {
	Save(ctx context.Context, payment *domain.Payment) error
	GetByNo(ctx context.Context, paymentNo string) (*domain.Payment, error)
	GetByNoForUpdate(ctx context.Context, paymentNo string) (*domain.Payment, error)
	FindActiveByOrder(ctx context.Context, orderID int) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]domain.Payment, error)
}

type OrderRepo interface {
	GetByIDForUpdate(ctx context.Context, orderID int) (*domain.Order, error)
}

type WalletRepo interface {
	GetUserForUpdate(ctx context.Context, userID int) (*domain.User, error)
	UpdateBalance(ctx context.Context, userID int, delta float64, recordType, remark string) (*domain.BalanceRecord, error)
}

type OrderService interface {
	MarkPaid(ctx context.Context, orderID int) error
}

type Gateway interface {
	UnifiedOrder(ctx context.Context, outTradeNo string, amount float64, body, clientIP, openID string) (string, error)
	ClientParams(prepayID string) map[string]string
	ParseNotification(payload []byte) (*wxpay.Notification, error)
	QueryOrder(ctx context.Context, outTradeNo string) (*wxpay.Notification, error)
	MockMode() bool
}

type Service struct {
	repo         Repo
	orderRepo    OrderRepo
	walletRepo   WalletRepo
	orderService OrderService
	gateway      Gateway
	txManager    pg.TXManager
}

func New(repo Repo, orderRepo OrderRepo, walletRepo WalletRepo, orderService OrderService, gateway Gateway, txManager pg.TXManager) *Service {
	return &Service{
		repo:         repo,
		orderRepo:    orderRepo,
		walletRepo:   walletRepo,
		orderService: orderService,
		gateway:      gateway,
		txManager:    txManager,
	}
}

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotPayable     = errors.New("order is not awaiting payment")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnsupportedMethod   = errors.New("unsupported payment method")
	ErrAmountMismatch      = errors.New("notification amount mismatch")
)

type CreateResult struct {
	Payment       *domain.Payment
	GatewayParams map[string]string
}

// CreatePayment starts a payment for an order awaiting payment. Balance
// payments debit the wallet and settle the order synchronously; gateway
// payments return the client parameters needed to invoke the pay sheet.
// An active gateway payment for the order is reused instead of duplicated.
func (s *Service) CreatePayment(ctx context.Context, orderID, userID int, method, clientIP string) (*CreateResult, error) {
	var result CreateResult

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID {
			return ErrOrderNotFound
		}
		if order.Status != domain.OrderStatusPendingPayment {
			return ErrOrderNotPayable
		}

		existing, err := s.repo.FindActiveByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		switch method {
		case domain.PaymentMethodBalance:
			return s.payWithBalance(ctx, order, existing, &result)
		case domain.PaymentMethodWechat:
			return s.payWithGateway(ctx, order, existing, clientIP, &result)
		default:
			return ErrUnsupportedMethod
		}
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("payment created",
		zap.String("paymentNo", result.Payment.PaymentNo),
		zap.String("method", result.Payment.Method),
		zap.Float64("amount", result.Payment.Amount),
	)
	return &result, nil
}

func (s *Service) payWithBalance(ctx context.Context, order *domain.Order, existing *domain.Payment, result *CreateResult) error {
	// A pending gateway payment stays open for the gateway's lifecycle; a
	// balance payment alongside it closes the window.
	if existing != nil {
		existing.Status = domain.PaymentStatusClosed
		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
	}

	user, err := s.walletRepo.GetUserForUpdate(ctx, order.UserID)
	if err != nil {
		return err
	}
	if user == nil || user.Balance < order.PayAmount {
		return ErrInsufficientBalance
	}
	if _, err := s.walletRepo.UpdateBalance(ctx, order.UserID, -order.PayAmount, domain.RecordTypeOrderPay, order.OrderNo); err != nil {
		return err
	}

	now := time.Now()
	payment := &domain.Payment{
		PaymentNo: GeneratePaymentNo(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Amount:    order.PayAmount,
		Method:    domain.PaymentMethodBalance,
		Status:    domain.PaymentStatusSuccess,
		PaidAt:    &now,
	}
	if err := s.repo.Save(ctx, payment); err != nil {
		return err
	}
	if err := s.orderService.MarkPaid(ctx, order.ID); err != nil {
		return err
	}

	result.Payment = payment
	return nil
}

func (s *Service) payWithGateway(ctx context.Context, order *domain.Order, existing *domain.Payment, clientIP string, result *CreateResult) error {
	payment := existing
	if payment == nil {
		payment = &domain.Payment{
			PaymentNo: GeneratePaymentNo(),
			OrderID:   order.ID,
			UserID:    order.UserID,
			Amount:    order.PayAmount,
			Method:    domain.PaymentMethodWechat,
			Status:    domain.PaymentStatusPending,
		}
		if err := s.repo.Save(ctx, payment); err != nil {
			return err
		}
	}

	prepayID, err := s.gateway.UnifiedOrder(ctx, payment.PaymentNo, payment.Amount, "order "+order.OrderNo, clientIP, "")
	if err != nil {
		if errors.Is(err, wxpay.ErrGatewayUnavailable) {
			// The gateway being down must not block order flow in
			// development setups; hand out a mock prepay handle instead.
			zap.L().Warn("payment gateway unavailable, falling back to mock prepay",
				zap.String("paymentNo", payment.PaymentNo), zap.Error(err))
			prepayID = "MOCKPREPAY" + payment.PaymentNo
		} else {
			return err
		}
	}

	result.Payment = payment
	result.GatewayParams = s.gateway.ClientParams(prepayID)
	return nil
}

// HandleCallback processes an asynchronous gateway notification and returns
// the XML acknowledgement body to answer with. Replayed notifications for a
// payment already in a terminal status acknowledge without side effects.
func (s *Service) HandleCallback(ctx context.Context, payload []byte) []byte {
	notification, err := s.gateway.ParseNotification(payload)
	if err != nil {
		zap.L().Warn("rejected payment notification", zap.Error(err))
		return wxpay.BuildAck(false, "invalid notification")
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		payment, err := s.repo.GetByNoForUpdate(ctx, notification.OutTradeNo)
		if err != nil {
			return err
		}
		if payment == nil {
			return fmt.Errorf("%w: %s", ErrPaymentNotFound, notification.OutTradeNo)
		}
		if payment.Status != domain.PaymentStatusPending {
			return nil
		}
		return s.applyOutcome(ctx, payment, notification)
	})
	if err != nil {
		zap.L().Error("payment notification failed", zap.String("outTradeNo", notification.OutTradeNo), zap.Error(err))
		return wxpay.BuildAck(false, "processing failed")
	}
	return wxpay.BuildAck(true, "OK")
}

// applyOutcome records the gateway's verdict on a pending payment. Runs
// inside the caller's transaction with the payment row locked.
func (s *Service) applyOutcome(ctx context.Context, payment *domain.Payment, n *wxpay.Notification) error {
	if !n.Succeeded() {
		payment.Status = domain.PaymentStatusFailed
		return s.repo.Update(ctx, payment)
	}
	if n.TotalFee > 0 && n.TotalFee != wxpay.Fen(payment.Amount) {
		return fmt.Errorf("%w: got %d fen, expected %d", ErrAmountMismatch, n.TotalFee, wxpay.Fen(payment.Amount))
	}

	now := time.Now()
	payment.Status = domain.PaymentStatusSuccess
	payment.TransactionID = n.TransactionID
	payment.PaidAt = &now
	if err := s.repo.Update(ctx, payment); err != nil {
		return err
	}
	return s.orderService.MarkPaid(ctx, payment.OrderID)
}

// GetPayment returns the stored payment as is, without touching the gateway.
func (s *Service) GetPayment(ctx context.Context, paymentNo string, userID int) (*domain.Payment, error) {
	payment, err := s.repo.GetByNo(ctx, paymentNo)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// QueryStatus returns the payment's current status, actively querying the
// gateway for pending payments so a missed notification still settles.
func (s *Service) QueryStatus(ctx context.Context, paymentNo string, userID int) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, paymentNo, userID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return payment, nil
	}

	if _, err := s.ResolvePending(ctx, paymentNo); err != nil {
		zap.L().Warn("gateway query failed", zap.String("paymentNo", paymentNo), zap.Error(err))
		return payment, nil
	}
	return s.repo.GetByNo(ctx, paymentNo)
}

// ResolvePending queries the gateway for a pending payment and applies the
// authoritative outcome. It reports whether the payment reached the success
// status, and is the unit of work behind reconciliation sweeps.
func (s *Service) ResolvePending(ctx context.Context, paymentNo string) (bool, error) {
	notification, err := s.gateway.QueryOrder(ctx, paymentNo)
	if err != nil {
		return false, err
	}

	settled := false
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		payment, err := s.repo.GetByNoForUpdate(ctx, paymentNo)
		if err != nil {
			return err
		}
		if payment == nil {
			return fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentNo)
		}
		if payment.Status != domain.PaymentStatusPending {
			settled = payment.Status == domain.PaymentStatusSuccess
			return nil
		}
		if err := s.applyOutcome(ctx, payment, notification); err != nil {
			return err
		}
		settled = payment.Status == domain.PaymentStatusSuccess
		return nil
	})
	if err != nil {
		return false, err
	}
	return settled, nil
}

// FindStalePending exposes the reconciliation candidates to the sweep loop.
func (s *Service) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]domain.Payment, error) {
	return s.repo.FindStalePending(ctx, cutoff, limit)
}

// GeneratePaymentNo issues a payment number in the same sortable shape as
// order numbers, prefixed to keep the two series distinguishable.
func GeneratePaymentNo() string {
	return "P" + orderservice.GenerateOrderNo()
}
