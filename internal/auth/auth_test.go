package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	repo "HDDPull/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: repo.NewMemoryRepository()}
}

func sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	env := newEnv()

	rec := httptest.NewRecorder()
	env.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":"driller","email":"d@example.com","password":"secret1"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, sessionFrom(t, rec).Secure)

	rec = httptest.NewRecorder()
	env.AuthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"driller","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	sessionFrom(t, rec)

	rec = httptest.NewRecorder()
	env.AuthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"driller","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	env.AuthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"ghost","password":"whatever"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newEnv()
	for _, body := range []string{
		`{"login":"a","email":"","password":"secret1"}`,
		`{"login":"a","email":"a@b.c","password":"123"}`,
		`not json`,
	} {
		rec := httptest.NewRecorder()
		env.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	var seenID int
	var seenLogin string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = UserIDFromContext(r.Context())
		seenLogin = UserLoginFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := env.AuthMiddleware(next)

	token, err := env.IssueToken(7, "driller", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/analyses", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 7, seenID)
	assert.Equal(t, "driller", seenLogin)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/analyses", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	expired, err := env.IssueToken(7, "driller", time.Now().Add(-2*sessionTTL))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/user/analyses", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: expired})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := &Authenv{JWTkey: []byte("other-key")}
	forged, err := other.IssueToken(7, "driller", time.Now())
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/user/analyses", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: forged})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:" + []string{"1000", "1001", "1002"}[i]
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
