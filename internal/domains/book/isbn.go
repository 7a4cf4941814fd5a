package book

import (
	"fmt"
	"math/rand/v2"
)

var isbnPrefixes = [2]string{"978", "979"}

// GenerateISBN13 synthesizes a random ISBN-13: a 978/979 prefix, a
// 10-digit uniformly drawn body and the mod-10 check digit.
func GenerateISBN13() string {
	prefix := isbnPrefixes[rand.IntN(len(isbnPrefixes))]
	body := fmt.Sprintf("%010d", rand.Int64N(10_000_000_000))
	first12 := prefix + body
	return first12 + string(rune('0'+checkDigit(first12)))
}

// checkDigit computes the ISBN-13 check digit over the first 12 digits,
// alternating weights 1 and 3.
func checkDigit(first12 string) int {
	sum := 0
	for i, r := range first12 {
		digit := int(r - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	return (10 - sum%10) % 10
}

// ValidISBN13 reports whether s is 13 digits with a correct checksum.
func ValidISBN13(s string) bool {
	if len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return checkDigit(s[:12]) == int(s[12]-'0')
}
