package handler

import (
	"context"
	"fmt"

	"github.com/olegiv/cafe-go/internal/cache"
	"github.com/olegiv/cafe-go/internal/store"
	"github.com/olegiv/cafe-go/internal/view"
)

// Read-only resource kinds served by the view registry.
const (
	KindCafe view.Kind = "cafe"
	KindCity view.Kind = "city"
)

// RegisterViews adds the cafe and city list/detail pages to reg.
func RegisterViews(reg *view.Registry, queries *store.Queries, cities *cache.CityCache) error {
	// The list and detail rows differ in type, so the list is wired by hand.
	cafe := view.Resource[store.GetCafeWithCityRow]{
		Kind:  KindCafe,
		Title: "Cafes",
		Get:   view.ByID(queries.GetCafeWithCity),
		Name:  func(c store.GetCafeWithCityRow) string { return c.Name },
	}.Entry()
	cafe.List = func(ctx context.Context) (any, error) {
		return queries.ListCafesWithCity(ctx)
	}

	if err := reg.Register(cafe); err != nil {
		return err
	}

	return reg.Register(view.Resource[store.CityWithCafes]{
		Kind:  KindCity,
		Title: "Cities",
		List: func(ctx context.Context) ([]store.CityWithCafes, error) {
			all, err := cities.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]store.CityWithCafes, len(all))
			for i, c := range all {
				out[i] = store.CityWithCafes{City: c}
			}
			return out, nil
		},
		Get: func(ctx context.Context, code string) (store.CityWithCafes, error) {
			city, err := queries.GetCityByCode(ctx, code)
			if err != nil {
				return store.CityWithCafes{}, err
			}
			cafes, err := queries.ListCafesByCity(ctx, code)
			if err != nil {
				return store.CityWithCafes{}, fmt.Errorf("listing cafes in %s: %w", code, err)
			}
			return store.CityWithCafes{City: city, Cafes: cafes}, nil
		},
		Name: func(c store.CityWithCafes) string { return c.Label() },
	}.Entry())
}
