// Package rut validates and normalizes Chilean national identification
// numbers (RUT). A RUT is written as a 7 or 8 digit body, a hyphen and a
// check character computed with a weighted modulo 11 sum over the body.
package rut

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid is returned by Parse when the input is not a well formed RUT
// or its check character does not match the body.
var ErrInvalid = errors.New("rut: invalid")

// ErrMalformed is returned by Parse when the input does not have the shape
// of a RUT at all.
var ErrMalformed = errors.New("rut: malformed")

var shape = regexp.MustCompile(`^[0-9]{7,8}-[0-9Kk]$`)

// Normalize strips thousands separators and surrounding whitespace and
// upper-cases the check character. It does not validate.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, ".", "")
	return strings.ToUpper(s)
}

// Valid reports whether input is a well formed RUT whose check character
// matches its body. Empty or garbage input is simply invalid.
func Valid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

// Parse normalizes input and validates it, returning the canonical
// "digits-CHECK" form.
func Parse(input string) (string, error) {
	s := Normalize(input)
	if !shape.MatchString(s) {
		return "", ErrMalformed
	}

	body, dv, _ := strings.Cut(s, "-")
	if CheckDigit(body) != dv[0] {
		return "", ErrInvalid
	}
	return s, nil
}

// CheckDigit computes the check character for a string of decimal digits.
// It returns 0 if body contains anything other than digits or is empty.
func CheckDigit(body string) byte {
	if body == "" {
		return 0
	}

	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0
		}
		sum += int(c-'0') * weight

		weight++
		if weight > 7 {
			weight = 2
		}
	}

	switch r := 11 - sum%11; r {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + r)
	}
}

// Format renders a canonical RUT with thousands separators, e.g.
// "12345678-5" becomes "12.345.678-5". Input that does not parse is returned
// unchanged.
func Format(input string) string {
	s, err := Parse(input)
	if err != nil {
		return input
	}

	body, dv, _ := strings.Cut(s, "-")

	var b strings.Builder
	lead := len(body) % 3
	if lead > 0 {
		b.WriteString(body[:lead])
	}
	for i := lead; i < len(body); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(body[i : i+3])
	}
	b.WriteByte('-')
	b.WriteString(dv)
	return b.String()
}
