package form

import (
	"time"

	"github.com/olegiv/cafe-go/internal/store"
)

// ApplyCafe builds the update for a validated cafe form. Every cafe column is overwritten.
func ApplyCafe(f *Form, id int64) store.UpdateCafeParams {
	return store.UpdateCafeParams{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		Url:         f.Get("url"),
		Address:     f.Get("address"),
		CityCode:    f.Get("city_code"),
		ImageUrl:    orDefault(f.Get("image_url"), store.DefaultCafeImageURL),
		UpdatedAt:   time.Now(),
		ID:          id,
	}
}

// NewCafe builds the insert for a validated cafe form.
func NewCafe(f *Form) store.CreateCafeParams {
	now := time.Now()
	return store.CreateCafeParams{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		Url:         f.Get("url"),
		Address:     f.Get("address"),
		CityCode:    f.Get("city_code"),
		ImageUrl:    orDefault(f.Get("image_url"), store.DefaultCafeImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyProfile builds the update for a validated profile form.
// Only display fields are copied; username, password and admin stay untouched.
func ApplyProfile(f *Form, userID int64) store.UpdateUserProfileParams {
	return store.UpdateUserProfileParams{
		FirstName:   f.Get("first_name"),
		LastName:    f.Get("last_name"),
		Description: f.Get("description"),
		Email:       f.Get("email"),
		ImageUrl:    orDefault(f.Get("image_url"), store.DefaultUserImageURL),
		UpdatedAt:   time.Now(),
		ID:          userID,
	}
}

// CafeValues returns the form values of an existing cafe for the edit page.
func CafeValues(c store.Cafe) map[string]string {
	return map[string]string{
		"name":        c.Name,
		"description": c.Description,
		"url":         c.Url,
		"address":     c.Address,
		"city_code":   c.CityCode,
		"image_url":   c.ImageUrl,
	}
}

// ProfileValues returns the form values of a user for the profile edit page.
func ProfileValues(u store.User) map[string]string {
	return map[string]string{
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"description": u.Description,
		"email":       u.Email,
		"image_url":   u.ImageUrl,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
