package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/cafe-go/internal/model"
	"github.com/olegiv/cafe-go/internal/store"
	"github.com/olegiv/cafe-go/internal/testutil"
)

func cafeValues() url.Values {
	return url.Values{
		"name":        {"Blue Bottle"},
		"description": {"Pour-over and *pastries*."},
		"url":         {"https://bluebottle.example"},
		"address":     {"66 Mint St"},
		"city_code":   {"sf"},
	}
}

func TestCafeAddForm(t *testing.T) {
	app := newTestApp(t)

	rec := app.client().get(RouteCafesAdd)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="sf"`)
	assert.Contains(t, body, "San Francisco")
}

func TestCafeAdd(t *testing.T) {
	app := newTestApp(t)
	c := app.client()

	rec := c.post(RouteCafesAdd, cafeValues())
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	cafes, err := app.queries.ListCafesWithCity(t.Context())
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	cafe := cafes[0]
	assert.Equal(t, fmt.Sprintf("/cafes/%d", cafe.ID), rec.Header().Get("Location"))
	assert.Equal(t, store.DefaultCafeImageURL, cafe.ImageUrl)
	assert.Equal(t, "San Francisco, CA", cafe.CityState())

	rec = c.get(rec.Header().Get("Location"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blue Bottle added.")
	assert.Contains(t, rec.Body.String(), "<em>pastries</em>")

	events, err := app.events.Recent(t.Context(), model.EventCategoryCafe, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Cafe added", events[0].Message)
}

func TestCafeAdd_UnknownCity(t *testing.T) {
	app := newTestApp(t)

	values := cafeValues()
	values.Set("city_code", "atlantis")
	rec := app.client().post(RouteCafesAdd, values)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not a valid choice.")

	n, err := app.queries.CountCafes(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCafeAdd_StripsTagsFromDescription(t *testing.T) {
	app := newTestApp(t)

	values := cafeValues()
	values.Set("description", `<script>alert(1)</script>Good coffee`)
	require.Equal(t, http.StatusSeeOther, app.client().post(RouteCafesAdd, values).Code)

	cafes, err := app.queries.ListCafesByCity(t.Context(), "sf")
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.NotContains(t, cafes[0].Description, "<script>")
	assert.Contains(t, cafes[0].Description, "Good coffee")
}

func TestCafeEditForm(t *testing.T) {
	app := newTestApp(t)
	cafe := testutil.CreateCafe(t, app.db, "Ritual", "oak")

	rec := app.client().get(fmt.Sprintf("/cafes/%d/edit", cafe.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Ritual"`)
	assert.Contains(t, body, `<option value="oak" selected>`)
	assert.Contains(t, body, fmt.Sprintf(`href="/cafes/%d"`, cafe.ID))
}

func TestCafeEdit(t *testing.T) {
	app := newTestApp(t)
	cafe := testutil.CreateCafe(t, app.db, "Ritual", "oak")
	c := app.client()

	values := cafeValues()
	values.Set("name", "Ritual Roasters")
	values.Set("city_code", "berk")
	rec := c.post(fmt.Sprintf("/cafes/%d/edit", cafe.ID), values)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, fmt.Sprintf("/cafes/%d", cafe.ID), rec.Header().Get("Location"))

	updated, err := app.queries.GetCafeByID(t.Context(), cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ritual Roasters", updated.Name)
	assert.Equal(t, "berk", updated.CityCode)
	assert.Equal(t, "66 Mint St", updated.Address)
	assert.Equal(t, store.DefaultCafeImageURL, updated.ImageUrl)

	rec = c.get(rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), "Ritual Roasters edited.")
}

func TestCafeEdit_EmptyAddressLeavesRowUnchanged(t *testing.T) {
	app := newTestApp(t)
	cafe := testutil.CreateCafe(t, app.db, "Ritual", "oak")

	values := cafeValues()
	values.Set("address", "")
	rec := app.client().post(fmt.Sprintf("/cafes/%d/edit", cafe.ID), values)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")

	after, err := app.queries.GetCafeByID(t.Context(), cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, cafe.Name, after.Name)
	assert.Equal(t, cafe.Address, after.Address)
	assert.Equal(t, cafe.CityCode, after.CityCode)
}

func TestCafeEdit_NotFound(t *testing.T) {
	app := newTestApp(t)
	c := app.client()

	for _, path := range []string{"/cafes/999/edit", "/cafes/abc/edit", "/cafes/0/edit"} {
		assert.Equal(t, http.StatusNotFound, c.get(path).Code, path)
		assert.Equal(t, http.StatusNotFound, c.post(path, cafeValues()).Code, path)
	}
}
