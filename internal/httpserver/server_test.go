package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/httpserver"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/testutil"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

type testServer struct {
	e      *echo.Echo
	db     *gorm.DB
	rec    *events.Recorder
	tokens *tokens.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb := testutil.InitTestDB(t)
	r := &repo.GormRepo{DB: gdb}
	rec := &events.Recorder{}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	tm := tokens.NewManager([]byte("test-secret"), time.Hour)

	e := httpserver.New(&httpserver.Deps{
		Logger:     logging.NewWithWriter(io.Discard, "error"),
		DB:         gdb,
		Accounts:   &service.AccountService{Repo: r, Events: rec, Metrics: m},
		Auth:       &service.AuthService{Repo: r, Tokens: tm, Events: rec, Metrics: m},
		Products:   &service.ProductService{Repo: r, Events: rec, Metrics: m},
		PageSize:   10,
		Registerer: reg,
		Gatherer:   reg,
	})

	return &testServer{e: e, db: gdb, rec: rec, tokens: tm}
}

// do sends body as JSON (unless nil) with an optional bearer token.
func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) tokenFor(t *testing.T, acc *models.Account) string {
	t.Helper()
	token, _, err := s.tokens.Issue(acc.ID)
	require.NoError(t, err)
	return token
}

func (s *testServer) account(t *testing.T, username string, seller, superuser bool) (*models.Account, string) {
	t.Helper()
	acc := testutil.CreateAccount(t, s.db, username, seller, superuser)
	return acc, s.tokenFor(t, acc)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	d, _ := decode(t, rec)["detail"].(string)
	return d
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	requireStatus(t, s.do(t, http.MethodGet, "/health/live", nil, ""), http.StatusOK)
	requireStatus(t, s.do(t, http.MethodGet, "/health/ready", nil, ""), http.StatusOK)

	require.NoError(t, testutil.CloseDB(s.db))
	requireStatus(t, s.do(t, http.MethodGet, "/health/ready", nil, ""), http.StatusServiceUnavailable)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	requireStatus(t, s.do(t, http.MethodPost, "/api/accounts/", map[string]any{
		"username": "alexandre", "password": "1234", "first_name": "A", "last_name": "S", "is_seller": true,
	}, ""), http.StatusCreated)

	rec := s.do(t, http.MethodGet, "/metrics", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Body.String(), "marketplace_accounts_registered_total 1")
	require.Contains(t, rec.Body.String(), "marketplace_requests_total")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/nothing/", nil, "")
	requireStatus(t, rec, http.StatusNotFound)
	require.Equal(t, "Not found.", detailOf(t, rec))

	rec = s.do(t, http.MethodPut, "/api/products/", nil, "")
	requireStatus(t, rec, http.StatusMethodNotAllowed)
	require.Equal(t, `Method "PUT" not allowed.`, detailOf(t, rec))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health/live", nil, "")
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
