package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/cafe-go/internal/testutil"
)

func TestHome(t *testing.T) {
	app := newTestApp(t)

	rec := app.client().get(RouteRoot)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/cities/sf"`)
	assert.Contains(t, body, "Berkeley, CA")
}

func TestCafeList_OrderedByName(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateCafe(t, app.db, "Zeitgeist", "sf")
	testutil.CreateCafe(t, app.db, "Artis", "berk")

	rec := app.client().get(RouteCafes)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Artis")
	require.Contains(t, body, "Zeitgeist")
	assert.Less(t, strings.Index(body, "Artis"), strings.Index(body, "Zeitgeist"))
}

func TestCafeDetail(t *testing.T) {
	app := newTestApp(t)
	cafe := testutil.CreateCafe(t, app.db, "Artis", "berk")

	rec := app.client().get(fmt.Sprintf("/cafes/%d", cafe.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Berkeley, CA")
	assert.Contains(t, rec.Body.String(), "<title>Artis")

	assert.Equal(t, http.StatusNotFound, app.client().get("/cafes/424242").Code)
	assert.Equal(t, http.StatusNotFound, app.client().get("/cafes/nope").Code)
}

func TestCities(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateCafe(t, app.db, "Artis", "berk")

	rec := app.client().get(RouteCities)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Oakland, CA")

	rec = app.client().get("/cities/berk")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cafes in Berkeley, CA")
	assert.Contains(t, rec.Body.String(), "Artis")

	assert.Equal(t, http.StatusNotFound, app.client().get("/cities/atlantis").Code)
}

func TestUnknownRouteRendersNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.client().get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

