package handler

import (
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/cafe-go/internal/auth"
	"github.com/olegiv/cafe-go/internal/cache"
	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/render"
	"github.com/olegiv/cafe-go/internal/service"
	"github.com/olegiv/cafe-go/internal/store"
	"github.com/olegiv/cafe-go/internal/testutil"
	"github.com/olegiv/cafe-go/internal/view"
	"github.com/olegiv/cafe-go/web"
)

// testApp is the full page router over an in-memory database.
type testApp struct {
	db      *sql.DB
	queries *store.Queries
	sm      *scs.SessionManager
	events  *service.EventService
	router  http.Handler
}

// testOptions enables the optional middleware of Routes.
type testOptions struct {
	loginProtection *middleware.LoginProtection
	csrf            bool
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWith(t, testOptions{})
}

func newTestAppWith(t *testing.T, opts testOptions) *testApp {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	sm := testutil.TestSessionManager(t)
	queries := store.New(db)

	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, IsDev: true})
	require.NoError(t, err)

	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	t.Cleanup(func() { _ = mem.Close() })
	cities := cache.NewCityCache(mem, queries, time.Minute)

	views := view.NewRegistry(renderer)
	require.NoError(t, RegisterViews(views, queries, cities))

	authSvc := auth.NewService(queries, sm)
	events := service.NewEventService(db, testutil.TestLogger())

	lp := opts.loginProtection
	var csrf func(http.Handler) http.Handler
	if opts.csrf {
		csrf = middleware.CSRF(middleware.DefaultCSRFConfig([]byte(strings.Repeat("k", 32)), true, "localhost:8080"))
	}

	r := chi.NewRouter()
	Routes{
		Sessions:        sm,
		Users:           authSvc,
		Renderer:        renderer,
		Views:           views,
		Home:            NewHomeHandler(renderer, cities),
		Cafes:           NewCafesHandler(db, renderer, cities, events),
		Auth:            NewAuthHandler(authSvc, renderer, events, lp),
		Profile:         NewProfileHandler(db, renderer, events),
		CSRF:            csrf,
		LoginProtection: lp,
	}.Mount(r)

	return &testApp{db: db, queries: queries, sm: sm, events: events, router: r}
}

// client carries the session cookie between requests like a browser would.
type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) client() *client {
	return &client{app: a, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, target string, values url.Values) *httptest.ResponseRecorder {
	return c.doWithHeader(method, target, values, nil)
}

func (c *client) doWithHeader(method, target string, values url.Values, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if values != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.app.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, nil)
}

func (c *client) post(target string, values url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, values)
}

func signupValues() url.Values {
	return url.Values{
		"username":    {"ana"},
		"first_name":  {"Ana"},
		"last_name":   {"Lee"},
		"description": {"x"},
		"email":       {"a@b.com"},
		"password":    {"secret1"},
	}
}

// createUser inserts a user whose password is "secret1".
func (a *testApp) createUser(t *testing.T, username string) store.User {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	return testutil.CreateUser(t, a.db, username, hash)
}

// login logs c in as username with password "secret1".
func (c *client) login(t *testing.T, username string) {
	t.Helper()
	rec := c.post(RouteLogin, url.Values{"username": {username}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
}
