package address

import "testing"

var testDefaults = Defaults{City: "Cebu City", Province: "Cebu"}

func TestParse_FreeTextBecomesStreet(t *testing.T) {
	got := Parse(DisplayString("  123 Main St  "), testDefaults)

	if got.Street != "123 Main St" {
		t.Fatalf("expected street %q, got %q", "123 Main St", got.Street)
	}
	if got.Barangay != "" {
		t.Fatalf("expected empty barangay, got %q", got.Barangay)
	}
	if got.City != "Cebu City" || got.Province != "Cebu" {
		t.Fatalf("expected default locality, got %q / %q", got.City, got.Province)
	}
}

func TestParse_NilYieldsAllDefaults(t *testing.T) {
	got := Parse(nil, testDefaults)

	want := Structured{City: "Cebu City", Province: "Cebu"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParse_StructuredCopiesFieldForField(t *testing.T) {
	in := Structured{
		Street:     "123 Main St",
		Barangay:   "Lahug",
		City:       "Mandaue City",
		Province:   "Cebu",
		PostalCode: "6014",
	}

	if got := Parse(in, testDefaults); got != in {
		t.Fatalf("expected %+v, got %+v", in, got)
	}
}

func TestParse_ProviderBreakdownDefaultsMissingLocality(t *testing.T) {
	got := Parse(ProviderBreakdown{Street: "Osmena Blvd", PostalCode: "6000"}, testDefaults)

	if got.Street != "Osmena Blvd" || got.PostalCode != "6000" {
		t.Fatalf("provider fields not copied: %+v", got)
	}
	if got.City != "Cebu City" || got.Province != "Cebu" {
		t.Fatalf("expected default locality, got %q / %q", got.City, got.Province)
	}
}

func TestFormatString_FullAddress(t *testing.T) {
	s := Structured{
		Street:     "123 Main St",
		Barangay:   "Lahug",
		City:       "Cebu City",
		Province:   "Cebu",
		PostalCode: "6000",
	}

	want := "123 Main St, Lahug, Cebu City, Cebu, 6000"
	if got := FormatString(s); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatString_OmitsEmptyFields(t *testing.T) {
	s := Structured{City: "Cebu City", Province: "Cebu"}

	if got := FormatString(s); got != "Cebu City, Cebu" {
		t.Fatalf("expected %q, got %q", "Cebu City, Cebu", got)
	}
}

func TestFormatString_IdempotentThroughParse(t *testing.T) {
	s := Structured{
		Street:     "123 Main St",
		Barangay:   "Lahug",
		City:       "Cebu City",
		Province:   "Cebu",
		PostalCode: "6000",
	}

	first := FormatString(Parse(s, testDefaults))
	second := FormatString(Parse(Parse(s, testDefaults), testDefaults))
	if first != second {
		t.Fatalf("format not stable: %q vs %q", first, second)
	}
}

func TestNormalizeSubdomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"myproperty-42", "myproperty"},
		{"MyProperty", "myproperty"},
		{"casa-verde-7", "casa-verde"},
		{"tower-1-203", "tower-1"},
		{"", NoSubdomain},
		{"   ", NoSubdomain},
	}

	for _, tc := range cases {
		if got := NormalizeSubdomain(tc.in); got != tc.want {
			t.Errorf("NormalizeSubdomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
