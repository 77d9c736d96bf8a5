package money

import (
	"math"
	"testing"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{7, "₹7"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{12345, "₹12,345"},
		{588000, "₹5,88,000"},
		{5880000, "₹58,80,000"},
		{123456789, "₹12,34,56,789"},
		{2940000.4, "₹29,40,000"},
		{2940000.5, "₹29,40,001"},
		{-500, "-₹500"},
		{-1176000, "-₹11,76,000"},
		{-0.4, "₹0"},
	}

	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Fatalf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatINR_NonFinite(t *testing.T) {
	if got := FormatINR(math.Inf(1)); got != "₹∞" {
		t.Fatalf("FormatINR(+Inf) = %q", got)
	}
	if got := FormatINR(math.NaN()); got != "₹NaN" {
		t.Fatalf("FormatINR(NaN) = %q", got)
	}
}

func TestGroupIndian(t *testing.T) {
	for in, want := range map[string]string{
		"1":        "1",
		"1234":     "1,234",
		"12345":    "12,345",
		"123456":   "1,23,456",
		"1234567":  "12,34,567",
		"12345678": "1,23,45,678",
	} {
		if got := GroupIndian(in); got != want {
			t.Fatalf("GroupIndian(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(4900); got != "4900" {
		t.Fatalf("FormatNumber(4900) = %q", got)
	}
	if got := FormatNumber(12.5); got != "12.5" {
		t.Fatalf("FormatNumber(12.5) = %q", got)
	}
}
