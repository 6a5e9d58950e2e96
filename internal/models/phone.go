package models

import "strings"

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone accepts 10 or 11 digit numbers after normalization.
func ValidPhone(phone string) bool {
	p := NormalizePhone(phone)
	return len(p) == 10 || len(p) == 11
}

// MaskPhone renders a number in the 010-1234-5678 display form used in
// status text and logs. Raw phone digits never reach either.
func MaskPhone(phone string) string {
	p := NormalizePhone(phone)
	switch len(p) {
	case 11:
		return p[:3] + "-" + p[3:7] + "-" + p[7:]
	case 10:
		return p[:3] + "-" + p[3:6] + "-" + p[6:]
	}
	return phone
}
