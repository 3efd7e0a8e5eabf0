package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "small number no separators", n: 123, want: "123"},
		{name: "four digits with separator", n: 3283, want: "3,283"},
		{name: "millions", n: 1234567, want: "1,234,567"},
		{name: "zero", n: 0, want: "0"},
		{name: "negative number", n: -1234, want: "-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "round to integer", f: 3283.277, precision: 0, want: "3,283"},
		{name: "one decimal place", f: 235.8, precision: 1, want: "235.8"},
		{name: "two decimal places", f: 1234.5678, precision: 2, want: "1,234.57"},
		{name: "zero", f: 0, precision: 2, want: "0.00"},
		{name: "negative with separator", f: -1234.56, precision: 1, want: "-1,234.6"},
		{name: "negative below one keeps sign", f: -0.4, precision: 1, want: "-0.4"},
		{name: "negative integer", f: -12.6, precision: 0, want: "-13"},
		{name: "round up at boundary", f: 999.999, precision: 2, want: "1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "420.70 ppm", FormatPPM(420.7))
	assert.Equal(t, "3,283 GtCO₂", FormatGt(3283.277, 0))
	assert.Equal(t, "-15.3 GtCO₂", FormatGt(-15.25, 1))
}

func BenchmarkFormatFloat(b *testing.B) {
	for b.Loop() {
		FormatFloat(1234.5678, 2)
	}
}
