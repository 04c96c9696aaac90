package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidPhoneNumber checks the E.164 phone number validation against valid and invalid
// inputs.
func TestValidPhoneNumber(t *testing.T) {
	valid := []string{
		"+1234567890",
		"1234567890",
		"+491711234567",
		"98",
		"+123456789012345",
	}
	for _, phone := range valid {
		assert.True(t, validPhoneNumber(phone), "phone number: "+phone)
	}
	invalid := []string{
		"",
		"9",
		"+",
		"0123456789",
		"+0123456789",
		"98765432100000000",
		"+1234567890123456",
		"phone",
		"+49 171 1234567",
		"123-456-7890",
	}
	for _, phone := range invalid {
		assert.False(t, validPhoneNumber(phone), "phone number: "+phone)
	}
}

// TestValidEmail checks the email validation against valid and invalid inputs.
func TestValidEmail(t *testing.T) {
	valid := []string{
		"erika@example.com",
		"erika.mustermann@mail.example.org",
	}
	for _, email := range valid {
		assert.True(t, validEmail(email), "email: "+email)
	}
	invalid := []string{
		"",
		"invalidemail",
		"@example.com",
		"erika@",
	}
	for _, email := range invalid {
		assert.False(t, validEmail(email), "email: "+email)
	}
}
