package repo

import (
	"github.com/minimall/mallcore/internal/pg"
	commissionrepo "github.com/minimall/mallcore/internal/repo/commission-repo"
	orderrepo "github.com/minimall/mallcore/internal/repo/order-repo"
	paymentrepo "github.com/minimall/mallcore/internal/repo/payment-repo"
	productrepo "github.com/minimall/mallcore/internal/repo/product-repo"
	refundrepo "github.com/minimall/mallcore/internal/repo/refund-repo"
	walletrepo "github.com/minimall/mallcore/internal/repo/wallet-repo"
	withdrawalrepo "github.com/minimall/mallcore/internal/repo/withdrawal-repo"
)

type Repositories struct {
	WalletRepo     *walletrepo.Repository
	ProductRepo    *productrepo.Repository
	OrderRepo      *orderrepo.Repository
	PaymentRepo    *paymentrepo.Repository
	RefundRepo     *refundrepo.Repository
	CommissionRepo *commissionrepo.Repository
	WithdrawalRepo *withdrawalrepo.Repository
}

func New(db pg.Database) *Repositories {
	return &Repositories{
		WalletRepo:     walletrepo.New(db),
		ProductRepo:    productrepo.New(db),
		OrderRepo:      orderrepo.New(db),
		PaymentRepo:    paymentrepo.New(db),
		RefundRepo:     refundrepo.New(db),
		CommissionRepo: commissionrepo.New(db),
		WithdrawalRepo: withdrawalrepo.New(db),
	}
}
