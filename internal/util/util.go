// Package util holds small presentation helpers shared across deliveries.
package util

import (
	"math"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frPrinter = message.NewPrinter(language.French)

// FormatAmount renders a fractional F CFA amount the way the storefront always
// has: rounded to the whole unit, French digit grouping, "F" suffix.
func FormatAmount(amount float64) string {
	return frPrinter.Sprintf("%d F", int64(math.Round(amount)))
}

// FormatPhone groups a local ten-digit mobile number in pairs for display,
// e.g. "0512345678" -> "05 12 34 56 78". Anything else is returned unchanged.
func FormatPhone(phone string) string {
	digits := strings.TrimSpace(phone)
	if len(digits) != 10 || !strings.HasPrefix(digits, "0") {
		return phone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return phone
		}
	}

	var b strings.Builder
	for i := 0; i < len(digits); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+2])
	}

	return b.String()
}

// MapsSearchURL builds the Google Maps search link shown alongside the
// delivery address. The commune alone is used when no address is known.
func MapsSearchURL(address, commune string) string {
	parts := make([]string, 0, 3)
	if address != "" {
		parts = append(parts, address)
	}
	if commune != "" {
		parts = append(parts, commune)
	}
	parts = append(parts, "Côte d'Ivoire")

	query := url.QueryEscape(strings.Join(parts, ", "))

	return "https://www.google.com/maps/search/?api=1&query=" + query
}
