package withdrawalservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/settlement"
)

type Repo interface {
	Save(ctx context.Context, withdrawal *domain.Withdrawal) error
	GetByID(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error)
	GetByIDForUpdate(ctx context.Context, withdrawalID int) (*domain.Withdrawal, error)
	Update(ctx context.Context, withdrawal *domain.Withdrawal) error
	SumByStatuses(ctx context.Context, userID int, statuses []string) (float64, error)
	FindByUser(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Withdrawal, error)
}

type CommissionRepo interface {
	SumByStatuses(ctx context.Context, userID int, statuses []string) (float64, error)
	FindConfirmedForUpdate(ctx context.Context, userID int) ([]domain.Commission, error)
	UpdateStatus(ctx context.Context, commissionID int, status string, settledAt *time.Time) error
}

type WalletRepo interface {
	GetUserForUpdate(ctx context.Context, userID int) (*domain.User, error)
}

type Service struct {
	repo           Repo
	commissionRepo CommissionRepo
	walletRepo     WalletRepo
	txManager      pg.TXManager
	shareBaseURL   string
}

func New(repo Repo, commissionRepo CommissionRepo, walletRepo WalletRepo, txManager pg.TXManager, shareBaseURL string) *Service {
	return &Service{
		repo:           repo,
		commissionRepo: commissionRepo,
		walletRepo:     walletRepo,
		txManager:      txManager,
		shareBaseURL:   shareBaseURL,
	}
}

var (
	ErrInvalidAmount            = errors.New("withdrawal amount must be positive")
	ErrUserNotFound             = errors.New("user not found")
	ErrInsufficientWithdrawable = errors.New("insufficient withdrawable earnings")
	ErrWithdrawalNotFound       = errors.New("withdrawal not found")
	ErrRejectReasonRequired     = errors.New("reject reason is required")
	ErrInvalidStatusTransition  = errors.New("invalid withdrawal status transition")
)

// Available computes how much a referrer can still request: earnings in
// confirmed or settled commissions minus everything already claimed by
// withdrawals that are pending, approved or paid out.
func (s *Service) Available(ctx context.Context, userID int) (float64, error) {
	earned, err := s.commissionRepo.SumByStatuses(ctx, userID, []string{
		domain.CommissionStatusConfirmed,
		domain.CommissionStatusSettled,
	})
	if err != nil {
		return 0, err
	}
	claimed, err := s.repo.SumByStatuses(ctx, userID, []string{
		domain.WithdrawalStatusPending,
		domain.WithdrawalStatusApproved,
		domain.WithdrawalStatusCompleted,
	})
	if err != nil {
		return 0, err
	}
	return settlement.Round2(earned - claimed), nil
}

// Request opens a withdrawal for the given amount. The user row is locked
// first so concurrent requests always serialize, even when the user has no
// confirmed commission rows left to lock.
func (s *Service) Request(ctx context.Context, userID int, amount float64) (*domain.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	amount = settlement.Round2(amount)

	var withdrawal *domain.Withdrawal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.walletRepo.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		confirmed, err := s.commissionRepo.FindConfirmedForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		var earned float64
		for _, c := range confirmed {
			earned += c.Amount
		}
		settled, err := s.commissionRepo.SumByStatuses(ctx, userID, []string{domain.CommissionStatusSettled})
		if err != nil {
			return err
		}
		claimed, err := s.repo.SumByStatuses(ctx, userID, []string{
			domain.WithdrawalStatusPending,
			domain.WithdrawalStatusApproved,
			domain.WithdrawalStatusCompleted,
		})
		if err != nil {
			return err
		}
		if amount > settlement.Round2(earned+settled-claimed) {
			return ErrInsufficientWithdrawable
		}

		withdrawal = &domain.Withdrawal{
			UserID: userID,
			Amount: amount,
			Status: domain.WithdrawalStatusPending,
		}
		return s.repo.Save(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("withdrawal requested", zap.Int("userID", userID), zap.Float64("amount", amount))
	return withdrawal, nil
}

// Process reviews a pending withdrawal. Approval pays it out immediately and
// settles the referrer's oldest confirmed commissions up to the withdrawn
// amount; rejection requires a reason and releases the claimed earnings.
func (s *Service) Process(ctx context.Context, withdrawalID int, approved bool, rejectReason string) (*domain.Withdrawal, error) {
	if !approved && rejectReason == "" {
		return nil, ErrRejectReasonRequired
	}

	var withdrawal *domain.Withdrawal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		withdrawal, err = s.repo.GetByIDForUpdate(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if withdrawal == nil {
			return ErrWithdrawalNotFound
		}
		if withdrawal.Status != domain.WithdrawalStatusPending {
			return ErrInvalidStatusTransition
		}

		now := time.Now()
		if !approved {
			withdrawal.Status = domain.WithdrawalStatusRejected
			withdrawal.RejectReason = rejectReason
			withdrawal.ProcessedAt = &now
			return s.repo.Update(ctx, withdrawal)
		}

		if err := s.settleCommissions(ctx, withdrawal.UserID, withdrawal.Amount, now); err != nil {
			return err
		}
		withdrawal.Status = domain.WithdrawalStatusCompleted
		withdrawal.ProcessedAt = &now
		return s.repo.Update(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("withdrawal processed",
		zap.Int("withdrawalID", withdrawalID),
		zap.Bool("approved", approved),
		zap.String("status", withdrawal.Status),
	)
	return withdrawal, nil
}

// settleCommissions marks the user's oldest confirmed commissions settled
// until their sum covers the paid out amount.
func (s *Service) settleCommissions(ctx context.Context, userID int, amount float64, settledAt time.Time) error {
	confirmed, err := s.commissionRepo.FindConfirmedForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	var covered float64
	for _, c := range confirmed {
		if covered >= amount {
			break
		}
		if err := s.commissionRepo.UpdateStatus(ctx, c.ID, domain.CommissionStatusSettled, &settledAt); err != nil {
			return err
		}
		covered += c.Amount
	}
	return nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Withdrawal, error) {
	return s.repo.List(ctx, status, limit, offset)
}

// GenerateShareLink builds the referral link a user shares for a product.
// Orders placed through it carry the user as referrer.
func (s *Service) GenerateShareLink(userID, productID int) string {
	return fmt.Sprintf("%s/product/%d?ref=%d", s.shareBaseURL, productID, userID)
}
