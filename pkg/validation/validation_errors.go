package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Auth fields
	"Email":           "Email",
	"Username":        "Username",
	"FirstName":       "First name",
	"LastName":        "Last name",
	"Password":        "Password",
	"ConfirmPassword": "Confirm password",
	"AccountType":     "Account type",
	"OTP":             "OTP",

	// Profile fields
	"DOB":       "Date of birth",
	"Gender":    "Gender",
	"ContactNo": "Contact number",
	"About":     "About",
	"City":      "City",
	"State":     "State",
	"Country":   "Country",
	"College":   "College",

	// Job fields
	"Title":       "Title",
	"Description": "Description",
	"Company":     "Company",
	"Location":    "Location",
	"Salary":      "Salary",
	"Skills":      "Skills",
	"CategoryID":  "Category",

	// Application fields
	"CoverLetter": "Cover letter",
	"Resume":      "Resume",

	// Category / feed fields
	"Name":    "Name",
	"Content": "Content",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins the formatted errors into one response message
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s item(s)", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, param)
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, getFieldLabel(param))
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' -", label)
	case "valid_phone":
		return fmt.Sprintf("%s must be 7-15 digits, optionally starting with +", label)
	case "valid_username":
		return fmt.Sprintf("%s must be 3-30 letters, digits, dots, underscores or dashes", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
