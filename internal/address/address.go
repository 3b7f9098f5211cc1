// Package address converts between the address shapes in play across the
// portal: a single display string, a geocoding provider breakdown, and the
// canonical structured form persisted with properties.
package address

import (
	"regexp"
	"strings"
)

// NoSubdomain is returned by NormalizeSubdomain for empty input.
const NoSubdomain = "no-subdomain"

// Defaults holds the configured default locality applied to fields that are
// absent from the input.
type Defaults struct {
	City     string
	Province string
}

// Structured is the canonical field-decomposed address representation.
type Structured struct {
	Street     string `json:"street"`
	Barangay   string `json:"barangay"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// RawAddress is the discriminated union of address inputs accepted by Parse:
// a free-form display string, a provider address breakdown, or an already
// structured address.
type RawAddress interface {
	isRawAddress()
}

// DisplayString is a free-form, single-line address.
type DisplayString string

func (DisplayString) isRawAddress() {}

// ProviderBreakdown is the partial structured bag produced by the geocoding
// client from a provider response. Absent fields are empty strings.
type ProviderBreakdown struct {
	Street     string
	Barangay   string
	City       string
	Province   string
	PostalCode string
}

func (ProviderBreakdown) isRawAddress() {}

func (Structured) isRawAddress() {}

// Parse normalizes any raw address input into the canonical structured form.
// A free-form string becomes Street in its entirety; City and Province default
// from the configured locality when empty. A nil input yields the all-default
// address.
func Parse(raw RawAddress, d Defaults) Structured {
	var s Structured

	switch typed := raw.(type) {
	case Structured:
		s = typed
	case ProviderBreakdown:
		s = Structured{
			Street:     typed.Street,
			Barangay:   typed.Barangay,
			City:       typed.City,
			Province:   typed.Province,
			PostalCode: typed.PostalCode,
		}
	case DisplayString:
		s.Street = strings.TrimSpace(string(typed))
	}

	if s.City == "" {
		s.City = d.City
	}
	if s.Province == "" {
		s.Province = d.Province
	}

	return s
}

// FormatString joins the non-empty fields in postal order with a
// comma-and-space separator. The street, barangay, city, province, postalCode
// ordering mirrors local convention and is relied on for display consistency.
func FormatString(s Structured) string {
	parts := make([]string, 0, 5)
	for _, field := range []string{s.Street, s.Barangay, s.City, s.Province, s.PostalCode} {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

var subdomainSuffix = regexp.MustCompile(`-\d+$`)

// NormalizeSubdomain lowercases a property subdomain and strips the trailing
// -<digits> disambiguation suffix. Empty input yields the NoSubdomain sentinel.
func NormalizeSubdomain(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return NoSubdomain
	}
	return strings.ToLower(subdomainSuffix.ReplaceAllString(trimmed, ""))
}
