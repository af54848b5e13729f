package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/events"
)

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t)
	acc, _ := s.account(t, "alexandre", true, false)

	rec := s.do(t, http.MethodPost, "/api/login/", map[string]any{"username": "alexandre", "password": "alexandre"}, "")
	requireStatus(t, rec, http.StatusOK)

	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	claims, err := s.tokens.Parse(token)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, acc.ID, id)
	assert.Equal(t, []string{events.TypeAccountLoggedIn}, s.rec.Types())
}

func TestLogin_WrongCredentials(t *testing.T) {
	s := newTestServer(t)
	s.account(t, "alexandre", true, false)

	rec := s.do(t, http.MethodPost, "/api/login/", map[string]any{"username": "alexandre", "password": "errada"}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.JSONEq(t, `{"non_field_errors":["Unable to log in with provided credentials."]}`, rec.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/login/", map[string]any{"username": "alexandre"}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.JSONEq(t, `{"password":["This field is required."]}`, rec.Body.String())
}

func TestLogin_TokenAuthenticatesLaterRequests(t *testing.T) {
	s := newTestServer(t)
	s.account(t, "vendedor", true, false)

	rec := s.do(t, http.MethodPost, "/api/login/", map[string]any{"username": "vendedor", "password": "vendedor"}, "")
	requireStatus(t, rec, http.StatusOK)
	token := decode(t, rec)["token"].(string)

	rec = s.do(t, http.MethodPost, "/api/products/", map[string]any{"description": "d", "price": 1, "quantity": 1}, token)
	requireStatus(t, rec, http.StatusCreated)
}

func TestAuthenticate_BadTokens(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/", nil, "garbage")
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "Invalid token.", detailOf(t, rec))

	ghost, _, err := s.tokens.Issue(4242)
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/products/", nil, ghost)
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "User inactive or deleted.", detailOf(t, rec))
}

func TestAuthenticate_HeaderSchemes(t *testing.T) {
	s := newTestServer(t)
	_, token := s.account(t, "vendedor", true, false)

	send := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	requireStatus(t, send("Token "+token), http.StatusOK)
	requireStatus(t, send("bearer "+token), http.StatusOK)
	requireStatus(t, send("Basic dXNlcjpwYXNz"), http.StatusOK)

	rec := send("Bearer")
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "Invalid token.", detailOf(t, rec))

	requireStatus(t, send("Bearer a b"), http.StatusUnauthorized)
}
