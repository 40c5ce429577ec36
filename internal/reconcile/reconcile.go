// Package reconcile re-checks gateway payments stuck in the pending status
// against the gateway's query endpoint, settling orders whose asynchronous
// notification never arrived. Sweeps run only when explicitly triggered.
package reconcile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/minimall/mallcore/internal/domain"
)

const (
	defaultLimit = 100
	defaultStale = time.Minute * 10
	poolSize     = 10
)

var processingPayments sync.Map

type PaymentService interface {
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]domain.Payment, error)
	ResolvePending(ctx context.Context, paymentNo string) (bool, error)
}

type Service struct {
	payments   PaymentService
	limit      int
	staleAfter time.Duration
	workerPool WorkerPoolI
}

func New(payments PaymentService) *Service {
	return &Service{
		payments:   payments,
		limit:      defaultLimit,
		staleAfter: defaultStale,
		workerPool: NewWorkerPool(poolSize),
	}
}

// Sweep checks every stale pending payment against the gateway and reports
// how many were checked and how many came back settled. Payments already
// claimed by a concurrent sweep are skipped. The call returns once all
// checks it scheduled have finished.
func (s *Service) Sweep(ctx context.Context) (int, int, error) {
	payments, err := s.payments.FindStalePending(ctx, time.Now().Add(-s.staleAfter), s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch stale pending payments", zap.Error(err))
		return 0, 0, err
	}

	results := make(chan Result, len(payments))
	scheduled := 0
	for _, payment := range payments {
		paymentNo := payment.PaymentNo

		if _, loaded := processingPayments.LoadOrStore(paymentNo, struct{}{}); loaded {
			continue
		}

		task := Task{
			PaymentNo: paymentNo,
			Resolve: func(ctx context.Context) (bool, error) {
				return s.payments.ResolvePending(ctx, paymentNo)
			},
		}
		if err := s.workerPool.Submit(ctx, task, results); err != nil {
			processingPayments.Delete(paymentNo)
			checked, settled := collect(results, scheduled)
			return checked, settled, err
		}
		scheduled++
	}

	checked, settled := collect(results, scheduled)
	zap.L().Info("Reconciliation sweep finished",
		zap.Int("checked", checked),
		zap.Int("settled", settled),
	)
	return checked, settled, nil
}

// collect drains exactly n results, releasing each payment's claim as it
// arrives. Failed checks are logged and excluded from the checked count.
func collect(results <-chan Result, n int) (checked, settled int) {
	for i := 0; i < n; i++ {
		r := <-results
		processingPayments.Delete(r.PaymentNo)
		if r.Err != nil {
			zap.L().Warn("Failed to resolve pending payment",
				zap.String("paymentNo", r.PaymentNo), zap.Error(r.Err))
			continue
		}
		checked++
		if r.Settled {
			settled++
		}
	}
	return checked, settled
}
