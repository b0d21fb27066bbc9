package league

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0"},
		{950, "$950"},
		{1000, "$1,000"},
		{25000.4, "$25,000"},
		{3600000, "$3,600,000"},
		{-125000, "-$125,000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatMoney(tt.amount); got != tt.expected {
				t.Errorf("FormatMoney(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}
