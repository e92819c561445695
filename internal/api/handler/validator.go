package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern matches a normalized Russian telephone: +7 or 8 followed by
// exactly ten digits.
var phonePattern = regexp.MustCompile(`^(\+7|8)\d{10}$`)

// nonPhoneChars strips everything that is not a digit or a leading plus.
var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// NormalizePhone removes separators and decoration from a submitted
// telephone. Validation runs against the normalized form.
func NormalizePhone(s string) string {
	return nonPhoneChars.ReplaceAllString(s, "")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator. It registers the custom phone_ru rule used by the
// feedback endpoint.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("phone_ru", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "phone_ru":
		// The feedback endpoint translates these into its own user-facing
		// message; keep the internal text terse.
		return field + " is invalid"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
