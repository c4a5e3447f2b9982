package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUser_Valid(t *testing.T) {
	errs := ValidateUser(UserInput{
		Email:                "jane@example.com",
		Password:             "testpass",
		PasswordConfirmation: "testpass",
		PasswordRequired:     true,
	})
	assert.True(t, errs.Empty(), "unexpected errors: %v", errs)
}

func TestValidateUser_BlankEmail(t *testing.T) {
	errs := ValidateUser(UserInput{Password: "testpass", PasswordConfirmation: "testpass", PasswordRequired: true})
	require.Contains(t, errs, "email")
	assert.Contains(t, errs["email"], MsgBlank)
}

func TestValidateUser_MalformedEmail(t *testing.T) {
	errs := ValidateUser(UserInput{Email: "bademail.com"})
	require.Contains(t, errs, "email")
	assert.Equal(t, []string{MsgInvalid}, errs["email"])
}

func TestValidateUser_PasswordRequiredOnCreate(t *testing.T) {
	errs := ValidateUser(UserInput{Email: "jane@example.com", PasswordRequired: true})
	assert.Equal(t, []string{MsgBlank}, errs["password"])
}

func TestValidateUser_PasswordOptionalOnUpdate(t *testing.T) {
	errs := ValidateUser(UserInput{Email: "jane@example.com"})
	assert.True(t, errs.Empty())
}

func TestValidateUser_ConfirmationMismatch(t *testing.T) {
	cases := map[string]UserInput{
		"differs":               {Email: "jane@example.com", Password: "a-secret", PasswordConfirmation: "other"},
		"confirmation missing":  {Email: "jane@example.com", Password: "a-secret"},
		"only confirmation set": {Email: "jane@example.com", PasswordConfirmation: "a-secret"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			errs := ValidateUser(in)
			assert.Equal(t, []string{MsgNoMatch}, errs["password_confirmation"])
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("someone@example.org"))
	assert.False(t, IsEmail("bademail.com"))
	assert.False(t, IsEmail(""))
}

func TestValidateUser_PasswordTooLong(t *testing.T) {
	long := strings.Repeat("a", MaxPasswordBytes+1)
	errs := ValidateUser(UserInput{Email: "jane@example.com", Password: long, PasswordConfirmation: long, PasswordRequired: true})
	assert.Equal(t, []string{MsgTooLong}, errs["password"])

	exact := strings.Repeat("a", MaxPasswordBytes)
	errs = ValidateUser(UserInput{Email: "jane@example.com", Password: exact, PasswordConfirmation: exact, PasswordRequired: true})
	assert.True(t, errs.Empty(), "unexpected errors: %v", errs)
}

func TestValidateUser_PasswordLimitCountsBytes(t *testing.T) {
	// 30 runes, 90 bytes
	multibyte := strings.Repeat("€", 30)
	errs := ValidateUser(UserInput{Email: "jane@example.com", Password: multibyte, PasswordConfirmation: multibyte})
	assert.Equal(t, []string{MsgTooLong}, errs["password"])
}
