// Package cpf normalizes and validates Brazilian CPF numbers.
package cpf

import "strings"

// Normalize strips every non-digit character from raw.
// It returns an empty string for empty input.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid reports whether raw is a valid CPF. The input may be formatted
// ("529.982.247-25") or bare digits; both check digits are verified
// independently and repdigit sequences like "11111111111" are rejected.
func IsValid(raw string) bool {
	digits := Normalize(raw)
	if len(digits) != 11 {
		return false
	}

	allSame := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	for _, pos := range []int{9, 10} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(digits[i]-'0') * (pos + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != int(digits[pos]-'0') {
			return false
		}
	}
	return true
}

// Format renders a valid CPF as "XXX.XXX.XXX-XX".
// It returns an empty string when raw does not hold a valid CPF.
func Format(raw string) string {
	digits := Normalize(raw)
	if len(digits) != 11 || !IsValid(digits) {
		return ""
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}
