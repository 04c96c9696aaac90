package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phoneNumberMessage is the fixed error message for malformed phone numbers.
const phoneNumberMessage = "Enter a valid phone number with country code (e.g., +1234567890)."

// phoneNumberPattern accepts E.164-style phone numbers: an optional leading
// '+', a non-zero first digit, and 2 to 15 digits in total.
var phoneNumberPattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// validate checks struct-independent field formats such as email addresses.
var validate = validator.New()

// validPhoneNumber returns true if the string is an E.164-style phone number.
func validPhoneNumber(phone string) bool {
	return phoneNumberPattern.MatchString(phone)
}

// validEmail returns true if the string is a well-formed email address.
func validEmail(email string) bool {
	return validate.Var(email, "email") == nil
}
