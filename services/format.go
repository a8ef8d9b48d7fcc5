package services

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR renders amount in Indian Rupee notation with two decimals: the
// last three integer digits form one group and the rest are paired, as in
// ₹1,23,45,678.90.
func FormatINR(amount float64) string {
	amount = finiteOrZero(amount)
	sign := ""
	if amount < 0 && math.Abs(amount) >= 0.005 {
		sign = "-"
	}

	fixed := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	// An odd-length head starts with a single digit group.
	first := len(head) % 2
	if first == 1 {
		b.WriteString(head[:1])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// DisplayOutput formats an output row for tables: currency outputs in Indian
// Rupee notation, everything else with the row's format policy.
func DisplayOutput(r OutputRow) string {
	if r.Unit == currencyUnit {
		return FormatINR(r.Value)
	}
	return r.Display()
}
