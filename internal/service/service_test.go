package service_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/testutil"
	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

type env struct {
	db       *gorm.DB
	rec      *events.Recorder
	metrics  *metrics.Metrics
	accounts *service.AccountService
	auth     *service.AuthService
	products *service.ProductService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb := testutil.InitTestDB(t)
	r := &repo.GormRepo{DB: gdb}
	rec := &events.Recorder{}
	m := metrics.New(prometheus.NewRegistry())

	return &env{
		db:       gdb,
		rec:      rec,
		metrics:  m,
		accounts: &service.AccountService{Repo: r, Events: rec, Metrics: m},
		auth:     &service.AuthService{Repo: r, Tokens: tokens.NewManager([]byte("test-secret"), 0), Events: rec, Metrics: m},
		products: &service.ProductService{Repo: r, Events: rec, Metrics: m},
	}
}

func ptr[T any](v T) *T { return &v }
