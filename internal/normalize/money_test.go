package normalize

import (
	"math"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"-", 0},
		{" - ", 0},
		{"0", 0},
		{"R$ 100,00", 100},
		{"R$ 1.234,56", 1234.56},
		{"R$1.234.567,89", 1234567.89},
		{"  350,5 ", 350.5},
		{"200", 200},
		{"R$ -12,30", -12.3},
		{"abc", 0},
		{"R$", 0},
		{"R$ -", 0},
		{"1,2,3", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"nan", 0},
	}
	for _, tt := range tests {
		got := ParseCurrency(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseCurrency(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCurrency_AlwaysFinite(t *testing.T) {
	for _, in := range []string{"1e400", "-1e400", "R$ 9e999", "∞", "0x10", "1.000.000,00,00"} {
		got := ParseCurrency(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseCurrency(%q) = %v, want finite", in, got)
		}
	}
}

func TestParseCurrencyValue(t *testing.T) {
	s := "R$ 10,00"
	f := 12.5
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"string", "R$ 2.000,00", 2000},
		{"string ptr", &s, 10},
		{"nil string ptr", (*string)(nil), 0},
		{"float", 99.9, 99.9},
		{"float ptr", &f, 12.5},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"int", 7, 7},
		{"int64", int64(300), 300},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCurrencyValue(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseCurrencyValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{999.999, "R$ 1.000,00"},
		{1234.5, "R$ 1.234,50"},
		{1234567.891, "R$ 1.234.567,89"},
		{133.3333, "R$ 133,33"},
		{-2500, "R$ -2.500,00"},
		{math.NaN(), "R$ 0,00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(42.46); got != "42.5%" {
		t.Errorf("FormatPercent = %q, want 42.5%%", got)
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("FormatPercent = %q, want 0.0%%", got)
	}
}

func TestToCents(t *testing.T) {
	if got := ToCents(133.335); got != 13334 && got != 13333 {
		t.Errorf("ToCents(133.335) = %d", got)
	}
	if got := ToCents(200); got != 20000 {
		t.Errorf("ToCents(200) = %d, want 20000", got)
	}
	if got := ToCentsPtr(nil); got != nil {
		t.Errorf("ToCentsPtr(nil) = %v, want nil", *got)
	}
	if got := PercentToBasisPoints(12.34); got != 1234 {
		t.Errorf("PercentToBasisPoints(12.34) = %d, want 1234", got)
	}
}
