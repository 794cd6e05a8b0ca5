package core

import (
	"regexp"
	"strings"
)

// FieldRule is one declarative payload constraint: the predicate returns true
// when the value is acceptable. Rules are evaluated eagerly and in order so
// all violations come back in a single response.
type FieldRule struct {
	Field   string
	Valid   func(string) bool
	Message string
}

// ValidationError is one violated constraint.
type ValidationError struct {
	Field   string
	Message string
}

// emailPattern accepts the usual local@domain.tld shape. Not a full RFC 5322
// parser; it matches what the account form should accept.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func notBlank(v string) bool { return strings.TrimSpace(v) != "" }

func emailShaped(v string) bool { return emailPattern.MatchString(v) }

// accountRules are the constraints for account create/update payloads.
var accountRules = []FieldRule{
	{Field: "firstName", Valid: notBlank, Message: "First name is required"},
	{Field: "lastName", Valid: notBlank, Message: "Last name is required"},
	{Field: "email", Valid: notBlank, Message: "Email is required"},
	{Field: "email", Valid: emailShaped, Message: "Email must be valid"},
}

// ValidateAccountRequest applies every account rule and collects all
// violations; an empty result means the payload is valid. A blank email
// reports only the required-message, not the shape-message on top.
func ValidateAccountRequest(req AccountRequest) []ValidationError {
	values := map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
	}

	var violations []ValidationError
	reported := map[string]struct{}{}
	for _, rule := range accountRules {
		if _, already := reported[rule.Field]; already {
			continue
		}
		if rule.Valid(values[rule.Field]) {
			continue
		}
		violations = append(violations, ValidationError{Field: rule.Field, Message: rule.Message})
		reported[rule.Field] = struct{}{}
	}
	return violations
}

// validationDetails flattens violations into the envelope's details mapping.
func validationDetails(violations []ValidationError) map[string]string {
	details := make(map[string]string, len(violations))
	for _, v := range violations {
		details[v.Field] = v.Message
	}
	return details
}
