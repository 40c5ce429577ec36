package service

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/minimall/mallcore/internal/config"
	"github.com/minimall/mallcore/internal/pg"
	"github.com/minimall/mallcore/internal/repo"
	paymentservice "github.com/minimall/mallcore/internal/service/paymentservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	cfg := &config.Config{ShareBaseURL: "https://mall.example.com"}
	repos := repo.New(mockDB)
	txManager := pg.NewMockTXManager(ctrl)
	gateway := paymentservice.NewMockGateway(ctrl)

	services := New(cfg, repos, txManager, gateway)

	assert.NotNil(t, services.OrderService)
	assert.NotNil(t, services.RefundService)
	assert.NotNil(t, services.PaymentService)
	assert.NotNil(t, services.Reconciler)
	assert.NotNil(t, services.CommissionService)
	assert.NotNil(t, services.WithdrawalService)
}
