package handler

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/model"
)

func TestSignup(t *testing.T) {
	app := newTestApp(t)
	c := app.client()

	rec := c.post(RouteSignup, signupValues())
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, RouteRoot, rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies(), "session cookie should be issued")

	user, err := app.queries.GetUserByUsername(t.Context(), "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lee", user.FullName())
	assert.NotEqual(t, "secret1", user.Password)

	// the new session is logged in
	rec = c.get(RouteProfile)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "@ana")

	events, err := app.events.Recent(t.Context(), model.EventCategoryAuth, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "User signed up", events[0].Message)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.client().post(RouteSignup, signupValues()).Code)

	c := app.client()
	rec := c.post(RouteSignup, signupValues())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, msgUsernameTaken)
	assert.Contains(t, body, `value="ana"`)
	assert.NotContains(t, body, "secret1")
	assert.Empty(t, rec.Result().Cookies(), "session must not change")

	n, err := app.queries.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSignup_InvalidForm(t *testing.T) {
	app := newTestApp(t)

	values := signupValues()
	values.Set("email", "not-an-email")
	values.Set("password", "abc")
	rec := app.client().post(RouteSignup, values)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email address.")
	assert.Contains(t, rec.Body.String(), "Field must be at least 6 characters long.")

	n, err := app.queries.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoginForm_CarriesSafeNext(t *testing.T) {
	app := newTestApp(t)

	rec := app.client().get(RouteLogin + "?next=%2Fprofile")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="next" value="/profile"`)

	rec = app.client().get(RouteLogin + "?next=" + url.QueryEscape("//evil.example"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `name="next"`)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "ana")
	c := app.client()

	rec := c.post(RouteLogin, url.Values{"username": {"ana"}, "password": {"secret1"}, "next": {"/profile"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, RouteProfile, rec.Header().Get("Location"))

	rec = c.get(RouteProfile)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome back, Test!")
}

func TestLogin_UnsafeNextFallsBackToRoot(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "ana")

	rec := app.client().post(RouteLogin, url.Values{"username": {"ana"}, "password": {"secret1"}, "next": {"https://evil.example/"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteRoot, rec.Header().Get("Location"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "ana")

	for _, values := range []url.Values{
		{"username": {"ana"}, "password": {"wrong-password"}},
		{"username": {"nobody"}, "password": {"secret1"}},
	} {
		rec := app.client().post(RouteLogin, values)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), msgInvalidCredentials)
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestLogin_InvalidFormHasNoCredentialError(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "ana")

	rec := app.client().post(RouteLogin, url.Values{"username": {"ana"}, "password": {"abc"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Field must be at least 6 characters long.")
	assert.NotContains(t, rec.Body.String(), msgInvalidCredentials)
}

func TestLogin_Lockout(t *testing.T) {
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 2,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	t.Cleanup(lp.Stop)

	app := newTestAppWith(t, testOptions{loginProtection: lp})
	app.createUser(t, "ana")
	bad := url.Values{"username": {"ana"}, "password": {"wrong-password"}}

	rec := app.client().post(RouteLogin, bad)
	assert.Contains(t, rec.Body.String(), msgInvalidCredentials)

	rec = app.client().post(RouteLogin, bad)
	assert.Contains(t, rec.Body.String(), "Too many failed attempts. Try again in 1 minute.")

	// the right password is refused while locked
	rec = app.client().post(RouteLogin, url.Values{"username": {"ana"}, "password": {"secret1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many failed attempts.")
}

func TestLoginAndSignupRedirectWhenLoggedIn(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "ana")
	c := app.client()
	c.login(t, "ana")

	for _, path := range []string{RouteLogin, RouteSignup} {
		rec := c.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, RouteRoot, rec.Header().Get("Location"), path)
	}
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "ana")
	c := app.client()
	c.login(t, "ana")

	rec := c.post(RouteLogout, url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteRoot, rec.Header().Get("Location"))

	rec = c.get(RouteRoot)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgLoggedOut)
	assert.Contains(t, rec.Body.String(), `href="/login"`)

	rec = c.get(RouteProfile)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLogout_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.client().post(RouteLogout, url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Flogout", rec.Header().Get("Location"))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds"},
		{time.Minute, "1 minute"},
		{15 * time.Minute, "15 minutes"},
		{time.Hour, "1 hour"},
		{5 * time.Hour, "5 hours"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
