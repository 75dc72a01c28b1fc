package stockbit

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Number is a JSON numeric field that the API sends either as a number or as
// a formatted string ("1,234"). Anything unparseable decodes to 0.
type Number float64

// UnmarshalJSON never fails; malformed input becomes 0.
func (n *Number) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		*n = 0
		return nil
	}
	*n = Number(ParseNumber(v))
	return nil
}

// Float64 returns the value as float64
func (n Number) Float64() float64 {
	return float64(n)
}

// ParseNumber converts a loosely typed value to a finite float64 (0 on failure).
func ParseNumber(v interface{}) float64 {
	if s, ok := v.(string); ok {
		v = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
