package estimator

import (
	"math"
	"strconv"
	"strings"
)

// FormatRupees renders a premium with the Indian digit grouping the
// service's users expect: ₹12,34,567 (last three digits, then pairs).
// Fractional amounts keep up to two decimals.
func FormatRupees(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)

	whole := math.Floor(amount)
	frac := math.Round((amount - whole) * 100)
	if frac >= 100 {
		whole++
		frac = 0
	}

	s := groupIndian(strconv.FormatFloat(whole, 'f', 0, 64))
	if frac > 0 {
		f := strconv.Itoa(int(frac))
		if len(f) == 1 {
			f = "0" + f
		}
		s += "." + strings.TrimRight(f, "0")
	}
	if neg {
		s = "-" + s
	}
	return "₹" + s
}

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
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
