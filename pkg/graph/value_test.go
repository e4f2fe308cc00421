package graph

import (
	"math"
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"Int", 42, "42"},
		{"Int64", int64(-13), "-13"},
		{"Int32", int32(7), "7"},
		{"FloatIntegral", 42.0, "42.0"},
		{"FloatFraction", 13.37, "13.37"},
		{"FloatNegative", -0.5, "-0.5"},
		{"FloatExponent", 1e21, "1e+21"},
		{"Float32", float32(2.5), "2.5"},
		{"BoolTrue", true, "true"},
		{"BoolFalse", false, "false"},
		{"String", "hello", "hello"},
		{"Nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.in); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Integer-valued floats must stay distinguishable from integers, and the
// non-finite values must not grow a bogus decimal suffix.
func TestFormatValueEdges(t *testing.T) {
	if got := FormatValue(42.0); got == FormatValue(int64(42)) {
		t.Errorf("float 42.0 and int 42 render identically (%q)", got)
	}
	if got := FormatValue(math.NaN()); got != "NaN" {
		t.Errorf("NaN = %q, want NaN", got)
	}
	if got := FormatValue(math.Inf(1)); got != "+Inf" {
		t.Errorf("+Inf = %q, want +Inf", got)
	}
}

// FormatValue must be a pure function: the same value always renders to
// the same string.
func TestFormatValueDeterministic(t *testing.T) {
	values := []Value{42, 13.37, "x", true, nil}
	for _, v := range values {
		if FormatValue(v) != FormatValue(v) {
			t.Errorf("FormatValue(%v) is not deterministic", v)
		}
	}
}
