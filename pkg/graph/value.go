package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders a property value to its canonical string form.
// The rendering is total and deterministic: equal semantic values always
// produce the same string, and no value may fail to format. Integers and
// floats stay distinguishable (the float 42 renders as "42.0", the
// integer as "42") so a graph that stores 42.0 never compares equal to
// one that stores 42.
func FormatValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatFloat uses the shortest representation that round-trips, keeping
// a decimal point for integral values.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.ContainsAny(s, "NI") {
		s += ".0"
	}
	return s
}
