package surface

import (
	"math"
	"strconv"
	"strings"
)

// NoValue is shown in place of a missing amount.
const NoValue = "—"

// FormatINR formats a rupee amount with Indian digit grouping and no
// fractional part, e.g. 150000 becomes "₹1,50,000".
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NoValue
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + "₹" + groupIndian(strconv.FormatFloat(rounded, 'f', 0, 64))
}

// FormatINRRange formats a min-max repair estimate.
func FormatINRRange(min, max int) string {
	return FormatINR(float64(min)) + " - " + FormatINR(float64(max))
}

// groupIndian inserts separators after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}
