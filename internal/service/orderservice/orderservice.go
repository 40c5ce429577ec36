package orderservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/service/commissionservice"
	"github.com/minimall/mallcore/internal/settlement"
)

type Repo interface {
	Save(ctx context.Context, order *domain.Order) error
	SaveItems(ctx context.Context, items []domain.OrderItem) error
	GetByID(ctx context.Context, orderID int) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, orderID int) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	FindByUser(ctx context.Context, userID int, status string, limit, offset int) ([]domain.Order, error)
	GetItems(ctx context.Context, orderID int) ([]domain.OrderItem, error)
	SaveLogistics(ctx context.Context, logistics *domain.Logistics) error
	GetLogistics(ctx context.Context, orderID int) (*domain.Logistics, error)
}

type ProductRepo interface {
	GetProductForUpdate(ctx context.Context, productID int) (*domain.Product, error)
	GetSKUForUpdate(ctx context.Context, skuID int) (*domain.ProductSKU, error)
	AdjustStock(ctx context.Context, productID int, skuID *int, qtyDelta int) error
	GetSelectedCartItems(ctx context.Context, userID int) ([]domain.CartItem, error)
	DeleteCartItems(ctx context.Context, userID int, ids []int) error
}

type WalletRepo interface {
	GetUserForUpdate(ctx context.Context, userID int) (*domain.User, error)
	GetCouponForUpdate(ctx context.Context, couponID, userID int) (*domain.Coupon, error)
	UpdateCouponStatus(ctx context.Context, couponID int, status string) error
	UpdateBalance(ctx context.Context, userID int, delta float64, recordType, remark string) (*domain.BalanceRecord, error)
	UpdatePoints(ctx context.Context, userID int, delta int, recordType, remark string) (*domain.PointsRecord, error)
}

type CommissionService interface {
	Create(ctx context.Context, in commissionservice.CreateInput) (*domain.Commission, error)
	Confirm(ctx context.Context, orderID int) error
	CancelByOrder(ctx context.Context, orderID int) error
}

type Service struct {
	repo              Repo
	productRepo       ProductRepo
	walletRepo        WalletRepo
	commissionService CommissionService
	txManager         pg.TXManager
}

func New(repo Repo, productRepo ProductRepo, walletRepo WalletRepo, commissionService CommissionService, txManager pg.TXManager) *Service {
	return &Service{
		repo:              repo,
		productRepo:       productRepo,
		walletRepo:        walletRepo,
		commissionService: commissionService,
		txManager:         txManager,
	}
}

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyCart               = errors.New("no selected items in cart")
	ErrUserNotFound            = errors.New("user not found")
	ErrProductNotSellable      = errors.New("product is not available for sale")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInsufficientPoints      = errors.New("insufficient points")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrInvalidAmount           = errors.New("points and balance amounts must not be negative")
	ErrCouponNotUsable         = errors.New("coupon cannot be applied")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type CreateInput struct {
	ReceiverName    string
	ReceiverPhone   string
	ReceiverAddress string
	CouponID        *int
	PointsUsed      int
	BalanceUsed     float64
	ReferrerID      *int
	Remark          string
}

// Create places an order from the user's selected cart items. Stock
// adjustment, points and balance deduction, ledger rows, cart cleanup and
// commission accrual all commit atomically with the order itself. The coupon
// discount is read from the user's own coupon row, never from the request.
func (s *Service) Create(ctx context.Context, userID int, in CreateInput) (*domain.Order, error) {
	if in.PointsUsed < 0 || in.BalanceUsed < 0 {
		return nil, ErrInvalidAmount
	}

	var order *domain.Order

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		cartItems, err := s.productRepo.GetSelectedCartItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		user, err := s.walletRepo.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if in.PointsUsed > user.Points {
			return ErrInsufficientPoints
		}
		if in.BalanceUsed > user.Balance {
			return ErrInsufficientBalance
		}

		var totalAmount float64
		items := make([]domain.OrderItem, 0, len(cartItems))
		cartIDs := make([]int, 0, len(cartItems))

		for _, ci := range cartItems {
			product, err := s.productRepo.GetProductForUpdate(ctx, ci.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.Sellable {
				return ErrProductNotSellable
			}

			price := product.Price
			specValues := ""
			if ci.SKUID != nil {
				sku, err := s.productRepo.GetSKUForUpdate(ctx, *ci.SKUID)
				if err != nil {
					return err
				}
				if sku == nil || sku.ProductID != product.ID {
					return ErrProductNotSellable
				}
				if sku.Stock < ci.Quantity {
					return ErrInsufficientStock
				}
				price = sku.Price
				specValues = sku.SpecValues
			} else if product.Stock < ci.Quantity {
				return ErrInsufficientStock
			}

			totalAmount += price * float64(ci.Quantity)
			items = append(items, domain.OrderItem{
				ProductID:  product.ID,
				SKUID:      ci.SKUID,
				Name:       product.Name,
				Image:      product.Image,
				SpecValues: specValues,
				Price:      price,
				Quantity:   ci.Quantity,
			})
			cartIDs = append(cartIDs, ci.ID)
		}
		totalAmount = settlement.Round2(totalAmount)

		var couponDiscount float64
		if in.CouponID != nil {
			coupon, err := s.walletRepo.GetCouponForUpdate(ctx, *in.CouponID, userID)
			if err != nil {
				return err
			}
			if coupon == nil || coupon.Status != domain.CouponStatusUnused {
				return ErrCouponNotUsable
			}
			if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
				return ErrCouponNotUsable
			}
			if totalAmount < coupon.MinAmount {
				return ErrCouponNotUsable
			}
			couponDiscount = coupon.Discount
			if err := s.walletRepo.UpdateCouponStatus(ctx, coupon.ID, domain.CouponStatusUsed); err != nil {
				return err
			}
		}

		res := settlement.Calculate(totalAmount, in.PointsUsed, in.BalanceUsed, couponDiscount)

		order = &domain.Order{
			OrderNo:        GenerateOrderNo(),
			UserID:         userID,
			Status:         domain.OrderStatusPendingPayment,
			TotalAmount:    totalAmount,
			PayAmount:      res.PayAmount,
			DiscountAmount: res.DiscountAmount,
			PointsUsed:     in.PointsUsed,
			BalanceUsed:    res.BalanceDiscount,
			CouponID:       in.CouponID,
			Address: domain.Address{
				ReceiverName:    in.ReceiverName,
				ReceiverPhone:   in.ReceiverPhone,
				ReceiverAddress: in.ReceiverAddress,
			},
			Remark: in.Remark,
		}
		if err := s.repo.Save(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.repo.SaveItems(ctx, items); err != nil {
			return err
		}

		for _, item := range items {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.SKUID, -item.Quantity); err != nil {
				return err
			}
		}

		if in.PointsUsed > 0 {
			if _, err := s.walletRepo.UpdatePoints(ctx, userID, -in.PointsUsed, domain.RecordTypeOrderPay, order.OrderNo); err != nil {
				return err
			}
		}
		if res.BalanceDiscount > 0 {
			if _, err := s.walletRepo.UpdateBalance(ctx, userID, -res.BalanceDiscount, domain.RecordTypeOrderPay, order.OrderNo); err != nil {
				return err
			}
		}

		if err := s.productRepo.DeleteCartItems(ctx, userID, cartIDs); err != nil {
			return err
		}

		if in.ReferrerID != nil && *in.ReferrerID != userID {
			_, err := s.commissionService.Create(ctx, commissionservice.CreateInput{
				ReferrerID:  *in.ReferrerID,
				OrderID:     order.ID,
				OrderNo:     order.OrderNo,
				ProductID:   items[0].ProductID,
				ProductName: items[0].Name,
				OrderAmount: order.PayAmount,
			})
			if err != nil && !errors.Is(err, commissionservice.ErrCommissionExists) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.String("orderNo", order.OrderNo),
		zap.Int("userID", userID),
		zap.Float64("payAmount", order.PayAmount),
	)
	return order, nil
}

// Cancel voids an unpaid order and returns everything it reserved: stock,
// points, balance and the coupon all go back in the same transaction.
func (s *Service) Cancel(ctx context.Context, orderID, userID int) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.getOwnedForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if !domain.OrderCanTransition(order.Status, domain.OrderStatusCancelled) {
			return ErrInvalidStatusTransition
		}

		items, err := s.repo.GetItems(ctx, orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.SKUID, item.Quantity); err != nil {
				return err
			}
		}

		if order.PointsUsed > 0 {
			if _, err := s.walletRepo.UpdatePoints(ctx, order.UserID, order.PointsUsed, domain.RecordTypeOrderCancel, order.OrderNo); err != nil {
				return err
			}
		}
		if order.BalanceUsed > 0 {
			if _, err := s.walletRepo.UpdateBalance(ctx, order.UserID, order.BalanceUsed, domain.RecordTypeOrderCancel, order.OrderNo); err != nil {
				return err
			}
		}
		if order.CouponID != nil {
			if err := s.walletRepo.UpdateCouponStatus(ctx, *order.CouponID, domain.CouponStatusUnused); err != nil {
				return err
			}
		}

		if err := s.commissionService.CancelByOrder(ctx, orderID); err != nil {
			return err
		}

		order.Status = domain.OrderStatusCancelled
		return s.repo.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	zap.L().Info("order cancelled", zap.Int("orderID", orderID), zap.Int("userID", userID))
	return nil
}

// MarkPaid transitions an order to pending_shipment once its payment
// succeeds. Called by the payment service inside its own transaction.
func (s *Service) MarkPaid(ctx context.Context, orderID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !domain.OrderCanTransition(order.Status, domain.OrderStatusPendingShipment) {
			return ErrInvalidStatusTransition
		}
		now := time.Now()
		order.Status = domain.OrderStatusPendingShipment
		order.PaidAt = &now
		return s.repo.Update(ctx, order)
	})
}

// Ship records the logistics shipment and moves the order to shipped.
func (s *Service) Ship(ctx context.Context, orderID int, company, trackingNo string) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !domain.OrderCanTransition(order.Status, domain.OrderStatusShipped) {
			return ErrInvalidStatusTransition
		}

		logistics := &domain.Logistics{
			OrderID:    orderID,
			Company:    company,
			TrackingNo: trackingNo,
			Status:     domain.LogisticsStatusShipped,
		}
		if err := s.repo.SaveLogistics(ctx, logistics); err != nil {
			return err
		}

		now := time.Now()
		order.Status = domain.OrderStatusShipped
		order.ShippedAt = &now
		return s.repo.Update(ctx, order)
	})
}

// ConfirmReceipt completes the order and confirms the referral commission,
// if the order carries one.
func (s *Service) ConfirmReceipt(ctx context.Context, orderID, userID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.getOwnedForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if !domain.OrderCanTransition(order.Status, domain.OrderStatusCompleted) {
			return ErrInvalidStatusTransition
		}

		now := time.Now()
		order.Status = domain.OrderStatusCompleted
		order.CompletedAt = &now
		if err := s.repo.Update(ctx, order); err != nil {
			return err
		}
		return s.commissionService.Confirm(ctx, orderID)
	})
}

// ApplyRefund moves a completed order into refunding while the refund
// request awaits review.
func (s *Service) ApplyRefund(ctx context.Context, orderID, userID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.getOwnedForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if !domain.OrderCanTransition(order.Status, domain.OrderStatusRefunding) {
			return ErrInvalidStatusTransition
		}
		order.Status = domain.OrderStatusRefunding
		return s.repo.Update(ctx, order)
	})
}

// CompleteRefund finishes the refund: the order becomes refunded and the
// referral commission, if any, is voided.
func (s *Service) CompleteRefund(ctx context.Context, orderID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !domain.OrderCanTransition(order.Status, domain.OrderStatusRefunded) {
			return ErrInvalidStatusTransition
		}
		order.Status = domain.OrderStatusRefunded
		if err := s.repo.Update(ctx, order); err != nil {
			return err
		}
		return s.commissionService.CancelByOrder(ctx, orderID)
	})
}

// RejectRefund puts a refunding order back to completed after the refund
// request was declined.
func (s *Service) RejectRefund(ctx context.Context, orderID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != domain.OrderStatusRefunding {
			return ErrInvalidStatusTransition
		}
		order.Status = domain.OrderStatusCompleted
		return s.repo.Update(ctx, order)
	})
}

func (s *Service) GetOrders(ctx context.Context, userID int, status string, limit, offset int) ([]domain.Order, error) {
	return s.repo.FindByUser(ctx, userID, status, limit, offset)
}

type OrderDetail struct {
	Order     *domain.Order
	Items     []domain.OrderItem
	Logistics *domain.Logistics
}

func (s *Service) GetOrderDetail(ctx context.Context, orderID, userID int) (*OrderDetail, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	items, err := s.repo.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	logistics, err := s.repo.GetLogistics(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: order, Items: items, Logistics: logistics}, nil
}

func (s *Service) getOwnedForUpdate(ctx context.Context, orderID, userID int) (*domain.Order, error) {
	order, err := s.repo.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GenerateOrderNo issues a sortable order number: a timestamp prefix plus a
// short random suffix to break same-second collisions.
func GenerateOrderNo() string {
	return time.Now().Format("20060102150405") + uuid.NewString()[:8]
}
