// Package validation checks user records before they reach the store and
// reports violations per field, the way API clients receive them.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mcnijman/go-emailaddress"

	"users-api/internal/domain"
)

const (
	MsgBlank       = "can't be blank"
	MsgInvalid     = "is invalid"
	MsgTaken       = "has already been taken"
	MsgNoMatch     = "doesn't match Password"
	MsgTooLong     = "is too long (maximum is 72 bytes)"
	tagEmailShape  = "email_shape"
	tagMaxBytes    = "max_bytes"
	fallbackReason = "is not valid"

	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72
)

// UserInput is the state of a user record as it would be saved.
// Password and PasswordConfirmation carry only what the caller supplied in
// this request; an unchanged password leaves both empty.
type UserInput struct {
	Email                string `json:"email" validate:"required,email_shape"`
	Password             string `json:"password" validate:"required_if=PasswordRequired true,max_bytes"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
	PasswordRequired     bool   `json:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(tagEmailShape, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(tagMaxBytes, func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// IsEmail reports whether s has the shape of an email address.
func IsEmail(s string) bool {
	_, err := emailaddress.Parse(strings.TrimSpace(s))
	return err == nil
}

// ValidateUser returns the violations found in in. The result is empty when
// the record may be saved.
func ValidateUser(in UserInput) domain.FieldErrors {
	fields := domain.FieldErrors{}

	err := validate.Struct(in)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields.Add("base", err.Error())
		return fields
	}

	for _, fe := range verrs {
		fields.Add(fe.Field(), message(fe.Tag()))
	}
	return fields
}

func message(tag string) string {
	switch tag {
	case "required", "required_if":
		return MsgBlank
	case tagEmailShape:
		return MsgInvalid
	case "eqfield":
		return MsgNoMatch
	case tagMaxBytes:
		return MsgTooLong
	default:
		return fallbackReason
	}
}
