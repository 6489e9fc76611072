package validator

import (
	"net/mail"
	"regexp"
	"unicode"
)

// usernameRe allows alphanumeric runs separated by single dashes or
// underscores, e.g. "alice", "alice-01", "a_b-c".
var usernameRe = regexp.MustCompile(`^([a-zA-Z0-9]+[-_])*[a-zA-Z0-9*]+$`)

func Username(username string) bool {
	return usernameRe.MatchString(username)
}

func Email(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// Password enforces the registration policy: at least 8 characters
// with at least one uppercase letter, one lowercase letter and one
// digit.
func Password(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
