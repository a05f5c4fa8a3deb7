package domain

import (
	"net/url"
	"strings"
)

// countryCallingCode is prefixed onto national numbers for WhatsApp links.
const countryCallingCode = "55"

// FormatPhoneForWhatsApp normalizes a phone number for wa.me links:
// non-digits stripped, a leading trunk zero dropped, and the Brazilian
// country code prefixed when missing. Returns empty unless the result
// lands on 12-13 digits (country code + area code + number).
func FormatPhoneForWhatsApp(phone string) string {
	var cleaned strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}

	digits := cleaned.String()
	digits = strings.TrimPrefix(digits, "0")

	if !strings.HasPrefix(digits, countryCallingCode) && len(digits) <= 11 {
		digits = countryCallingCode + digits
	}

	if len(digits) < 12 || len(digits) > 13 {
		return ""
	}
	return digits
}

// WhatsAppLink builds a wa.me deep link for the phone, optionally with
// a prefilled message. Returns empty when the phone cannot be
// normalized to a valid number.
func WhatsAppLink(phone, message string) string {
	formatted := FormatPhoneForWhatsApp(phone)
	if formatted == "" {
		return ""
	}

	link := "https://wa.me/" + formatted
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// AggregatorLink builds the public tracking-view deep link for a
// tracking number; empty input yields an empty link.
func AggregatorLink(trackingNumber string) string {
	if trackingNumber == "" {
		return ""
	}
	return "https://t.17track.net/en#nums=" + url.PathEscape(trackingNumber)
}
