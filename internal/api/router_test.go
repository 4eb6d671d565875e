package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/karanvs/se-portal/internal/auth"
	"github.com/karanvs/se-portal/internal/database"
	"github.com/karanvs/se-portal/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires a real user service over an in-memory database, the
// way main does, so these tests cover whole request flows.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	users := services.NewUserService(db)
	sessions := auth.NewManager([]byte("test-secret"), users)
	return NewRouter(sessions, users)
}

func get(router http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postForm(router http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

func signUpJane(t *testing.T, router http.Handler) {
	t.Helper()
	rec := postForm(router, "/signup", url.Values{
		"full_name":       {"Jane Doe"},
		"username":        {"jane"},
		"email":           {"jane@x.com"},
		"password":        {"secret1"},
		"c_password":      {"secret1"},
		"education_level": {"2"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignupThenLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	signUpJane(t, router)

	// Signup does not log the user in: /login still behaves as for anons
	// and the dashboard stays gated.
	rec := get(router, "/login")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = get(router, "/dashboard")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Login with the created credentials, remember unset
	rec = postForm(router, "/login", url.Values{
		"email":    {"jane@x.com"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	session := cookieByName(rec, auth.SessionCookie)
	require.NotNil(t, session)
	assert.True(t, session.Expires.IsZero(), "remember unset must yield a browser-session cookie")

	// With the cookie: homepage redirects to the dashboard, which renders
	rec = get(router, "/", session)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = get(router, "/dashboard", session)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Doe")

	// Without the cookie the same request is anonymous again
	rec = get(router, "/dashboard")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDuplicateSignupLeavesStoreUnchanged(t *testing.T) {
	router := newTestRouter(t)

	signUpJane(t, router)

	// Same email, different username
	rec := postForm(router, "/signup", url.Values{
		"full_name":       {"Other Jane"},
		"username":        {"jane2"},
		"email":           {"jane@x.com"},
		"password":        {"secret2"},
		"c_password":      {"secret2"},
		"education_level": {"1"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signup", rec.Header().Get("Location"))

	// Only the first account can log in; the second was never created
	rec = postForm(router, "/login", url.Values{
		"email":    {"jane@x.com"},
		"password": {"secret2"},
	})
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = postForm(router, "/login", url.Values{
		"email":    {"jane@x.com"},
		"password": {"secret1"},
	})
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/dashboard", "/analytics", "/logout"} {
		rec := get(router, path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestPublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := get(router, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/signup")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/game")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Experiential Learning")

	rec = get(router, "/robots.txt")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	router := newTestRouter(t)

	signUpJane(t, router)
	rec := postForm(router, "/login", url.Values{
		"email":    {"jane@x.com"},
		"password": {"secret1"},
	})
	session := cookieByName(rec, auth.SessionCookie)
	require.NotNil(t, session)

	rec = get(router, "/logout", session)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// The response instructs the browser to drop the cookie
	dropped := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.MaxAge < 0 {
			dropped = true
		}
	}
	assert.True(t, dropped)
}

func TestAnalyticsForFreshAccount(t *testing.T) {
	router := newTestRouter(t)

	signUpJane(t, router)
	rec := postForm(router, "/login", url.Values{
		"email":    {"jane@x.com"},
		"password": {"secret1"},
	})
	session := cookieByName(rec, auth.SessionCookie)
	require.NotNil(t, session)

	// A fresh account has an empty analytics document, not a broken page
	rec = get(router, "/analytics", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sophomore")
	assert.Contains(t, rec.Body.String(), "No analytics recorded yet")
}
