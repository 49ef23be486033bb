package v1

import (
	"fmt"
	"regexp"

	"github.com/duynhne/account-sdk/internal/core/domain"
	"github.com/duynhne/account-sdk/internal/core/schema"
)

// emailPattern is intentionally loose: the account service is the authority
// on deliverability, the form only catches obvious typos.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate evaluates every constraint of the schema against the record and
// collects every violation. It never stops at the first failure, so a single
// pass can surface all field problems to the user at once.
//
// Violations are returned in schema order. A schema referencing a field name
// the record does not have is a programming error and panics; user input can
// never trigger a panic here.
func Validate(record domain.AccountRecord, s schema.Schema) []domain.ValidationError {
	var violations []domain.ValidationError

	for _, field := range s.Describe() {
		value := fieldValue(record, field.Name)

		for _, c := range field.Constraints {
			if c.When != nil && fieldValue(record, c.When.Field) == "" {
				// Conditional constraint with an inactive trigger:
				// vacuously satisfied regardless of the field's content.
				continue
			}

			switch c.Kind {
			case schema.Required:
				if value == "" {
					violations = append(violations, domain.ValidationError{Field: field.Name, Message: c.Message})
				}
			case schema.Email:
				// Emptiness is Required's job; only check shape on content.
				if value != "" && !emailPattern.MatchString(value) {
					violations = append(violations, domain.ValidationError{Field: field.Name, Message: c.Message})
				}
			case schema.MinLen:
				if len(value) < c.Min {
					violations = append(violations, domain.ValidationError{Field: field.Name, Message: c.Message})
				}
			case schema.EqualsField:
				// Raw string equality once a value was entered.
				if value != "" && value != fieldValue(record, c.OtherField) {
					violations = append(violations, domain.ValidationError{Field: field.Name, Message: c.Message})
				}
			default:
				panic(fmt.Sprintf("schema misuse: unknown constraint kind %d on field %q", c.Kind, field.Name))
			}
		}
	}

	return violations
}

// ToFieldErrors converts a validator result into the per-field error map the
// form displays. When several violations target the same field, the first one
// in validator output order wins.
func ToFieldErrors(violations []domain.ValidationError) domain.FieldErrorMap {
	fieldErrors := make(domain.FieldErrorMap, len(violations))
	for _, v := range violations {
		if _, ok := fieldErrors[v.Field]; ok {
			continue
		}
		fieldErrors[v.Field] = v.Message
	}
	return fieldErrors
}

// fieldValue resolves a schema field reference against the record.
// An unknown field name means the schema itself is broken.
func fieldValue(record domain.AccountRecord, field string) string {
	value, ok := record.Value(field)
	if !ok {
		panic(fmt.Sprintf("schema misuse: unknown field %q", field))
	}
	return value
}
