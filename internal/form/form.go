// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package form declares the fields of each HTML form and validates submitted
// values against them.
package form

import (
	"fmt"
	"html"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Validation messages.
const (
	MsgRequired      = "This field is required."
	MsgInvalidURL    = "Invalid URL."
	MsgInvalidEmail  = "Invalid email address."
	MsgInvalidChoice = "Not a valid choice."
)

// Format selects an additional syntax check for a field value.
type Format int

const (
	FormatNone Format = iota
	FormatURL
	FormatEmail
)

// Choice is one allowed value of a select field.
type Choice struct {
	Value string
	Label string
}

// Field describes a single form input.
type Field struct {
	Name      string
	Label     string
	Required  bool
	Format    Format
	MinLength int
	MaxLength int
	Choices   []Choice
	// StripTags removes any HTML markup from the submitted value.
	StripTags bool
	// Secret values are neither trimmed nor echoed back when the form is re-rendered.
	Secret bool
}

// Schema is an ordered set of fields.
type Schema struct {
	Fields []Field
}

var strictPolicy = bluemonday.StrictPolicy()

// Field returns the field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Empty returns a form with no values and no errors, for initial GET renders.
func (s Schema) Empty() *Form {
	return s.Prefill(nil)
}

// Prefill returns a form populated from existing values without validating them.
func (s Schema) Prefill(values map[string]string) *Form {
	f := newForm(s)
	for k, v := range values {
		f.Values[k] = v
	}
	return f
}

// Validate checks every field of the schema against the submitted values.
// The returned form carries the cleaned values and any per-field errors.
func (s Schema) Validate(values url.Values) *Form {
	f := newForm(s)

	for _, field := range s.Fields {
		v := values.Get(field.Name)
		if !field.Secret {
			v = strings.TrimSpace(v)
		}
		if field.StripTags && v != "" {
			v = strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(v)))
		}
		f.Values[field.Name] = v

		if msg := field.check(v); msg != "" {
			f.AddError(field.Name, msg)
		}
	}

	return f
}

// check returns the first validation message for v, or "".
func (fd Field) check(v string) string {
	if v == "" {
		if fd.Required {
			return MsgRequired
		}
		return ""
	}

	n := utf8.RuneCountInString(v)
	if fd.MinLength > 0 && n < fd.MinLength {
		return fmt.Sprintf("Field must be at least %d characters long.", fd.MinLength)
	}
	if fd.MaxLength > 0 && n > fd.MaxLength {
		return fmt.Sprintf("Field cannot be longer than %d characters.", fd.MaxLength)
	}

	switch fd.Format {
	case FormatURL:
		if !isHTTPURL(v) {
			return MsgInvalidURL
		}
	case FormatEmail:
		if !isEmail(v) {
			return MsgInvalidEmail
		}
	}

	if fd.Choices != nil && !slices.ContainsFunc(fd.Choices, func(c Choice) bool { return c.Value == v }) {
		return MsgInvalidChoice
	}

	return ""
}

func isHTTPURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isEmail accepts a bare address only, rejecting "Name <addr>" forms.
func isEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == v
}

// Form holds submitted values and validation errors for one schema.
type Form struct {
	Schema Schema
	Values map[string]string
	Errors map[string][]string
}

func newForm(s Schema) *Form {
	return &Form{
		Schema: s,
		Values: make(map[string]string, len(s.Fields)),
		Errors: make(map[string][]string),
	}
}

// Valid reports whether the form has no errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Get returns the cleaned value of a field.
func (f *Form) Get(name string) string {
	return f.Values[name]
}

// Value returns the value to echo back into an input; secret fields are always blank.
func (f *Form) Value(name string) string {
	if fd, ok := f.Schema.Field(name); ok && fd.Secret {
		return ""
	}
	return f.Values[name]
}

// FieldError returns the first error for a field, or "".
func (f *Form) FieldError(name string) string {
	if errs := f.Errors[name]; len(errs) > 0 {
		return errs[0]
	}
	return ""
}

// AddError records an error against a field.
func (f *Form) AddError(name, msg string) {
	f.Errors[name] = append(f.Errors[name], msg)
}

// Label returns the human label of a field.
func (f *Form) Label(name string) string {
	if fd, ok := f.Schema.Field(name); ok {
		return fd.Label
	}
	return name
}

// Choices returns the allowed values of a select field.
func (f *Form) Choices(name string) []Choice {
	fd, _ := f.Schema.Field(name)
	return fd.Choices
}
