package service

import (
	"github.com/minimall/mallcore/internal/config"
	"github.com/minimall/mallcore/internal/handlers/distribution"
	"github.com/minimall/mallcore/internal/handlers/orders"
	"github.com/minimall/mallcore/internal/handlers/payments"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/reconcile"
	"github.com/minimall/mallcore/internal/repo"
	commissionservice "github.com/minimall/mallcore/internal/service/commissionservice"
	orderservice "github.com/minimall/mallcore/internal/service/orderservice"
	paymentservice "github.com/minimall/mallcore/internal/service/paymentservice"
	refundservice "github.com/minimall/mallcore/internal/service/refundservice"
	withdrawalservice "github.com/minimall/mallcore/internal/service/withdrawalservice"
)

type Services struct {
	OrderService      orders.Service
	RefundService     orders.RefundService
	PaymentService    payments.Service
	Reconciler        payments.Reconciler
	CommissionService distribution.CommissionService
	WithdrawalService distribution.WithdrawalService
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, gateway paymentservice.Gateway) *Services {
	commissionService := commissionservice.New(repo.CommissionRepo, txManager)
	orderService := orderservice.New(repo.OrderRepo, repo.ProductRepo, repo.WalletRepo, commissionService, txManager)
	paymentService := paymentservice.New(repo.PaymentRepo, repo.OrderRepo, repo.WalletRepo, orderService, gateway, txManager)
	refundService := refundservice.New(repo.RefundRepo, repo.PaymentRepo, repo.OrderRepo, orderService, repo.WalletRepo, txManager)
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, repo.CommissionRepo, repo.WalletRepo, txManager, cfg.ShareBaseURL)
	reconciler := reconcile.New(paymentService)

	return &Services{
		OrderService:      orderService,
		RefundService:     refundService,
		PaymentService:    paymentService,
		Reconciler:        reconciler,
		CommissionService: commissionService,
		WithdrawalService: withdrawalService,
	}
}
