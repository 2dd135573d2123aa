package entity

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names used in validation errors
const (
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldType        = "type"
	FieldQuery       = "query"
)

// Validation messages
const (
	MsgDescriptionRequired = "description is required"
	MsgPriceNotNumber      = "price must be a number"
	MsgPricePositive       = "price must be a positive value"
	MsgCategoryRequired    = "category is required"
)

// FieldError is a validation failure attached to a single input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the ordered list of field failures of a form
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the message for a field, or "" when the field is valid
func (v ValidationErrors) Get(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Map returns the errors keyed by field
func (v ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, e := range v {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// DescriptionRule returns the failure message for a description, "" if valid
func DescriptionRule(s string) string {
	if s == "" {
		return MsgDescriptionRequired
	}
	return ""
}

// CategoryRule returns the failure message for a category, "" if valid
func CategoryRule(s string) string {
	if s == "" {
		return MsgCategoryRequired
	}
	return ""
}

// PriceRule returns the failure message for a numeric price, "" if valid.
// The price is checked after rounding to cents.
func PriceRule(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return MsgPriceNotNumber
	}
	if RoundPrice(p) <= 0 {
		return MsgPricePositive
	}
	return ""
}

// RoundPrice rounds a price to cents, the precision it is stored with.
// p must be finite.
func RoundPrice(p float64) float64 {
	return decimal.NewFromFloat(p).Round(2).InexactFloat64()
}

// ParsePrice parses a price as typed by the user.
// It returns the parsed value and a failure message ("" if valid).
func ParsePrice(raw string) (float64, string) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, MsgPriceNotNumber
	}

	price := d.Round(2).InexactFloat64()
	return price, PriceRule(price)
}
