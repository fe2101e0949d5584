package form

import "github.com/olegiv/cafe-go/internal/store"

// CityChoices converts the city list into select options labelled by city name.
func CityChoices(cities []store.City) []Choice {
	choices := make([]Choice, 0, len(cities))
	for _, c := range cities {
		choices = append(choices, Choice{Value: c.Code, Label: c.Name})
	}
	return choices
}

// CafeSchema is the add/edit cafe form. city_code must be one of cityChoices.
func CafeSchema(cityChoices []Choice) Schema {
	if cityChoices == nil {
		cityChoices = []Choice{}
	}
	return Schema{Fields: []Field{
		{Name: "name", Label: "Name", Required: true},
		{Name: "description", Label: "Description", StripTags: true},
		{Name: "url", Label: "URL", Format: FormatURL},
		{Name: "address", Label: "Address", Required: true},
		{Name: "city_code", Label: "City", Required: true, Choices: cityChoices},
		{Name: "image_url", Label: "Image URL", Format: FormatURL},
	}}
}

// SignupSchema is the registration form.
func SignupSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "username", Label: "Username", Required: true, MaxLength: 25},
		{Name: "first_name", Label: "First Name", Required: true, MaxLength: 25},
		{Name: "last_name", Label: "Last Name", Required: true, MaxLength: 25},
		{Name: "description", Label: "Description", Required: true, StripTags: true},
		{Name: "email", Label: "Email", Required: true, Format: FormatEmail, MaxLength: 50},
		{Name: "password", Label: "Password", Required: true, MinLength: 6, Secret: true},
		{Name: "image_url", Label: "Image URL", Format: FormatURL},
	}}
}

// LoginSchema is the login form.
func LoginSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "username", Label: "Username", Required: true},
		{Name: "password", Label: "Password", Required: true, MinLength: 6, Secret: true},
	}}
}

// ProfileSchema is the profile edit form. Username and password are not editable here.
func ProfileSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "first_name", Label: "First Name", Required: true, MaxLength: 25},
		{Name: "last_name", Label: "Last Name", Required: true, MaxLength: 25},
		{Name: "description", Label: "Description", Required: true, StripTags: true},
		{Name: "email", Label: "Email", Required: true, Format: FormatEmail, MaxLength: 50},
		{Name: "image_url", Label: "Image URL", Format: FormatURL},
	}}
}
