package carbon

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// Estimate computes the kg CO2e of an activity from its category-specific
// details as quantity × factor.
//
// Unknown categories, missing or unknown sub-types and quantities that are
// not numeric all contribute 0. The result is never negative.
func Estimate(category domain.Category, details map[string]any) float64 {
	t, ok := factorTables[category]
	if !ok || details == nil {
		return 0
	}

	factor := t.Factors[subTypeOf(details[t.SubTypeKey])]
	emission := parseQuantity(details[t.QuantityKey]) * factor

	return math.Max(0, emission)
}

func subTypeOf(v any) SubType {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return SubType(strings.ToLower(strings.TrimSpace(s)))
}

// parseQuantity accepts JSON numbers, Go numeric types and numeric strings.
// Anything else, NaN and infinities yield 0.
func parseQuantity(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
