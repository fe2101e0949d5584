// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "fmt"

// Default image placeholders used when no image URL is supplied.
const (
	DefaultUserImageURL = "/static/images/default-pic.png"
	DefaultCafeImageURL = "/static/images/default-cafe.jpg"
)

// FullName returns "first last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Label returns "City, ST".
func (c City) Label() string {
	return cityState(c.Name, c.State)
}

// CityState returns "City, ST" for the cafe's city.
func (c GetCafeWithCityRow) CityState() string {
	return cityState(c.CityName, c.CityStateCode)
}

// CityState returns "City, ST" for the cafe's city.
func (c ListCafesWithCityRow) CityState() string {
	return cityState(c.CityName, c.CityStateCode)
}

func cityState(name, state string) string {
	return fmt.Sprintf("%s, %s", name, state)
}

// CityWithCafes is a city together with the cafes that reference it.
type CityWithCafes struct {
	City
	Cafes []Cafe
}
