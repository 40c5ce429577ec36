package handlers

import (
	"net/http"

	_ "github.com/minimall/mallcore/docs"
	distributionhandlers "github.com/minimall/mallcore/internal/handlers/distribution"
	ordershandlers "github.com/minimall/mallcore/internal/handlers/orders"
	paymentshandlers "github.com/minimall/mallcore/internal/handlers/payments"
	"github.com/minimall/mallcore/internal/service"
	"github.com/minimall/mallcore/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrderDetail(w http.ResponseWriter, r *http.Request)
	CancelOrder(w http.ResponseWriter, r *http.Request)
	ConfirmReceipt(w http.ResponseWriter, r *http.Request)
	ApplyRefund(w http.ResponseWriter, r *http.Request)
	ShipOrder(w http.ResponseWriter, r *http.Request)
	ProcessRefund(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	CreatePayment(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	QueryPayment(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type DistributionHandler interface {
	GetIncome(w http.ResponseWriter, r *http.Request)
	GetRecords(w http.ResponseWriter, r *http.Request)
	RequestWithdrawal(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	GetShareLink(w http.ResponseWriter, r *http.Request)
	ListWithdrawals(w http.ResponseWriter, r *http.Request)
	ProcessWithdrawal(w http.ResponseWriter, r *http.Request)
	ListCommissions(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	OrderHandler        OrderHandler
	PaymentHandler      PaymentHandler
	DistributionHandler DistributionHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		OrderHandler:        ordershandlers.New(s.OrderService, s.RefundService),
		PaymentHandler:      paymentshandlers.New(s.PaymentService, s.Reconciler),
		DistributionHandler: distributionhandlers.New(s.CommissionService, s.WithdrawalService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	// The gateway posts notifications without credentials; the MD5 signature
	// is the integrity check.
	r.Post("/api/payments/callback", h.PaymentHandler.Callback)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.CreateOrder)
				r.Get("/", h.OrderHandler.GetOrders)
				r.Get("/{id}", h.OrderHandler.GetOrderDetail)
				r.Post("/{id}/cancel", h.OrderHandler.CancelOrder)
				r.Post("/{id}/confirm", h.OrderHandler.ConfirmReceipt)
				r.Post("/{id}/refund", h.OrderHandler.ApplyRefund)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.PaymentHandler.CreatePayment)
				r.Get("/{paymentNo}", h.PaymentHandler.GetPayment)
				r.Post("/{paymentNo}/query", h.PaymentHandler.QueryPayment)
			})

			r.Route("/distribution", func(r chi.Router) {
				r.Get("/income", h.DistributionHandler.GetIncome)
				r.Get("/records", h.DistributionHandler.GetRecords)
				r.Post("/withdrawals", h.DistributionHandler.RequestWithdrawal)
				r.Get("/withdrawals", h.DistributionHandler.GetWithdrawals)
				r.Get("/share-link", h.DistributionHandler.GetShareLink)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.AdminMiddleware)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/orders/{id}/ship", h.OrderHandler.ShipOrder)
				r.Post("/refunds/{id}/process", h.OrderHandler.ProcessRefund)
				r.Post("/payments/reconcile", h.PaymentHandler.Reconcile)
				r.Get("/withdrawals", h.DistributionHandler.ListWithdrawals)
				r.Post("/withdrawals/{id}/process", h.DistributionHandler.ProcessWithdrawal)
				r.Get("/commissions", h.DistributionHandler.ListCommissions)
			})
		})
	})

	return r
}
