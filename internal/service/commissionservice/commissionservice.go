package commissionservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/settlement"
)

type Repo interface {
	Save(ctx context.Context, commission *domain.Commission) error
	GetByOrderID(ctx context.Context, orderID int) (*domain.Commission, error)
	GetByOrderIDForUpdate(ctx context.Context, orderID int) (*domain.Commission, error)
	UpdateStatus(ctx context.Context, commissionID int, status string, settledAt *time.Time) error
	SumByStatuses(ctx context.Context, userID int, statuses []string) (float64, error)
	FindByUser(ctx context.Context, userID int, limit, offset int) ([]domain.Commission, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Commission, error)
}

type Service struct {
	repo      Repo
	txManager pg.TXManager
}

func New(repo Repo, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// DefaultRate is applied when an order carries no product-specific rate.
const DefaultRate = 0.10

var (
	ErrCommissionExists        = errors.New("commission already exists for order")
	ErrCommissionNotFound      = errors.New("commission not found")
	ErrInvalidStatusTransition = errors.New("invalid commission status transition")
)

type CreateInput struct {
	ReferrerID  int
	OrderID     int
	OrderNo     string
	ProductID   int
	ProductName string
	OrderAmount float64
	Rate        float64
}

// Create accrues a pending commission for the referrer of a freshly placed
// order. At most one commission exists per order.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Commission, error) {
	rate := in.Rate
	if rate <= 0 {
		rate = DefaultRate
	}

	commission := &domain.Commission{
		UserID:      in.ReferrerID,
		OrderID:     in.OrderID,
		OrderNo:     in.OrderNo,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		OrderAmount: in.OrderAmount,
		Rate:        rate,
		Amount:      settlement.Round2(in.OrderAmount * rate),
		Status:      domain.CommissionStatusPending,
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByOrderID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCommissionExists
		}
		return s.repo.Save(ctx, commission)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("commission accrued",
		zap.Int("referrerID", in.ReferrerID),
		zap.String("orderNo", in.OrderNo),
		zap.Float64("amount", commission.Amount),
	)
	return commission, nil
}

// Confirm moves the order's commission from pending to confirmed when the
// buyer confirms receipt. Orders without a referrer have no commission and
// confirming them is a no-op.
func (s *Service) Confirm(ctx context.Context, orderID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		commission, err := s.repo.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if commission == nil {
			return nil
		}
		if !domain.CommissionCanTransition(commission.Status, domain.CommissionStatusConfirmed) {
			return ErrInvalidStatusTransition
		}
		return s.repo.UpdateStatus(ctx, commission.ID, domain.CommissionStatusConfirmed, nil)
	})
}

// CancelByOrder voids the order's commission on cancellation or refund.
// Settled commissions stay settled: the payout already happened.
func (s *Service) CancelByOrder(ctx context.Context, orderID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		commission, err := s.repo.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if commission == nil || commission.Status == domain.CommissionStatusCancelled {
			return nil
		}
		if !domain.CommissionCanTransition(commission.Status, domain.CommissionStatusCancelled) {
			return ErrInvalidStatusTransition
		}
		return s.repo.UpdateStatus(ctx, commission.ID, domain.CommissionStatusCancelled, nil)
	})
}

type Earnings struct {
	Total        float64
	Pending      float64
	Withdrawable float64
}

// GetEarnings aggregates a referrer's commission totals. Withdrawable here
// is the gross earned amount; the withdrawal service subtracts amounts
// already claimed by withdrawal requests.
func (s *Service) GetEarnings(ctx context.Context, userID int) (*Earnings, error) {
	total, err := s.repo.SumByStatuses(ctx, userID, []string{
		domain.CommissionStatusPending,
		domain.CommissionStatusConfirmed,
		domain.CommissionStatusSettled,
	})
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.SumByStatuses(ctx, userID, []string{domain.CommissionStatusPending})
	if err != nil {
		return nil, err
	}
	earned, err := s.repo.SumByStatuses(ctx, userID, []string{
		domain.CommissionStatusConfirmed,
		domain.CommissionStatusSettled,
	})
	if err != nil {
		return nil, err
	}
	return &Earnings{
		Total:        settlement.Round2(total),
		Pending:      settlement.Round2(pending),
		Withdrawable: settlement.Round2(earned),
	}, nil
}

func (s *Service) GetRecords(ctx context.Context, userID int, limit, offset int) ([]domain.Commission, error) {
	return s.repo.FindByUser(ctx, userID, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]domain.Commission, error) {
	return s.repo.ListAll(ctx, limit, offset)
}
