package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// A deliberately loose local@domain.tld shape: non-whitespace
	// segments around one @ with at least one dot in the domain part.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("email_basic", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldRule pairs the human-readable label of a field with its
// validator tag expression.
type fieldRule struct {
	label string
	tags  string
}

// fieldRules holds the per-field rules. Fields absent from this map
// have no validation rule and are always valid.
var fieldRules = map[string]fieldRule{
	FieldName:        {label: "Name", tags: "required,min=2,max=50"},
	FieldUsername:    {label: "Username", tags: "required,min=3,max=20,username_chars"},
	FieldEmail:       {label: "Email", tags: "required,email_basic"},
	FieldCompanyName: {label: "Company name", tags: "omitempty,max=50"},
}

// ValidateField validates a single raw input value against the rule
// for the named field. It returns an empty string when the value is
// valid, or a human-readable error message otherwise. Values are
// trimmed before validation.
func ValidateField(name, raw string) string {
	rule, ok := fieldRules[name]
	if !ok {
		return ""
	}

	err := validate.Var(strings.TrimSpace(raw), rule.tags)
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Sprintf("%s is invalid", rule.label)
	}
	return formatFieldError(rule.label, validationErrors[0])
}

// formatFieldError converts a validator.FieldError into the message
// shown inline next to the field.
func formatFieldError(label string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, e.Param())
	case "username_chars":
		return "Username can only contain letters, numbers, dots, hyphens, and underscores"
	case "email_basic":
		return "Please enter a valid email address"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// ValidateForm runs every field rule against the draft. The form is
// valid iff no entry of the returned map is non-empty.
func ValidateForm(d Draft) map[string]string {
	result := make(map[string]string, len(fieldRules))
	for name := range fieldRules {
		result[name] = ValidateField(name, d.get(name))
	}
	return result
}
