package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"power-wizard/internal/model"
)

// QuantityPolicy decides what happens to quantity text that is not a
// non-negative number.
type QuantityPolicy string

const (
	// PolicyStrict rejects the input and leaves the state unchanged.
	PolicyStrict QuantityPolicy = "strict"
	// PolicyLenient stores zero for anything unparseable.
	PolicyLenient QuantityPolicy = "lenient"
)

// MaxQuantity is the largest count accepted for one installation type.
// Report totals are shown as whole int64 units and must stay in range.
const MaxQuantity = 1e9

// ValidQuantity reports whether q is a count the wizard will store.
func ValidQuantity(q float64) bool {
	return !math.IsNaN(q) && q >= 0 && q <= MaxQuantity
}

func ParsePolicy(s string) (QuantityPolicy, error) {
	switch QuantityPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyLenient:
		return PolicyLenient, nil
	default:
		return "", fmt.Errorf("unsupported quantity policy: %q", s)
	}
}

// ParseQuantity converts raw form text into a quantity.
// Blank text is a cleared field and parses as zero under either policy.
// Values above MaxQuantity count as invalid.
func ParseQuantity(raw string, policy QuantityPolicy) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || !ValidQuantity(q) {
		if policy == PolicyLenient {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidQuantity, raw)
	}
	return q, nil
}
