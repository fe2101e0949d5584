// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// sampleCafes are inserted by Seed when the directory is empty.
var sampleCafes = []CreateCafeParams{
	{
		Name:        "Bernie's Cafe",
		Description: "Neighborhood coffee shop with a **sunny patio**.",
		Url:         "https://example.com/bernies",
		Address:     "3966 24th St",
		CityCode:    "sf",
		ImageUrl:    DefaultCafeImageURL,
	},
	{
		Name:        "Artis Coffee",
		Description: "Small-batch roaster.",
		Url:         "https://example.com/artis",
		Address:     "1717 4th St",
		CityCode:    "berk",
		ImageUrl:    DefaultCafeImageURL,
	},
}

// Seed inserts sample cafes when doSeed is true and no cafes exist.
// Cities are seeded by migrations and are always present.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		slog.Debug("seeding disabled, skipping")
		return nil
	}

	queries := New(db)

	count, err := queries.CountCafes(ctx)
	if err != nil {
		return fmt.Errorf("counting cafes: %w", err)
	}
	if count > 0 {
		slog.Info("cafes already exist, skipping seed", "count", count)
		return nil
	}

	now := time.Now()
	for _, params := range sampleCafes {
		params.CreatedAt = now
		params.UpdatedAt = now
		cafe, err := queries.CreateCafe(ctx, params)
		if err != nil {
			return fmt.Errorf("creating sample cafe %q: %w", params.Name, err)
		}
		slog.Info("created sample cafe", "id", cafe.ID, "name", cafe.Name)
	}

	return nil
}

// SeedCities upserts the given cities. Existing codes keep their key and
// only have name and state refreshed, so referencing cafes stay valid.
func SeedCities(ctx context.Context, db *sql.DB, cities []City) error {
	queries := New(db)
	for _, c := range cities {
		if err := queries.UpsertCity(ctx, UpsertCityParams(c)); err != nil {
			return fmt.Errorf("upserting city %q: %w", c.Code, err)
		}
	}
	return nil
}
