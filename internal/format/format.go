package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats an amount in minor units.
// Example: Currency(2550, "USD") => "$25.50"
func Currency(minor int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	switch currency {
	case "", "USD":
		neg := minor < 0
		if neg {
			minor = -minor
		}
		major := minor / 100
		cents := minor % 100
		out := "$" + thousandSep(major) + "." + fmt.Sprintf("%02d", cents)
		if neg {
			return "-" + out
		}
		return out
	case "JPY":
		return "¥" + thousandSep(minor)
	default:
		// generic minor units
		return fmt.Sprintf("%s %s", currency, thousandSep(minor))
	}
}

// USD formats cents as dollars, the storefront default.
func USD(minor int64) string { return Currency(minor, "USD") }

// Amount renders minor units as a bare decimal for form inputs.
// Example: Amount(2550) => "25.50"
func Amount(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	out := fmt.Sprintf("%d.%02d", minor/100, minor%100)
	if neg {
		return "-" + out
	}
	return out
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}

// Date formats a timestamp for the orders table. Zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
