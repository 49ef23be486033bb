// Package schema holds the declarative field schemas used by the account
// forms. A schema is plain data: an ordered list of fields, each with base
// constraints and optional conditional constraints keyed on a sibling field.
// The validator in internal/logic evaluates schemas; nothing here has side
// effects.
package schema

import "github.com/duynhne/account-sdk/internal/core/domain"

// Kind identifies what a constraint checks.
type Kind int

const (
	// Required fails when the field value is empty.
	Required Kind = iota
	// Email fails when the field value does not look like an e-mail address.
	Email
	// MinLen fails when the field value is shorter than Min characters.
	MinLen
	// EqualsField fails when the field value differs from OtherField's value.
	EqualsField
)

// Condition activates a constraint only when the referenced sibling field is
// non-empty. A nil Condition means the constraint always applies.
type Condition struct {
	Field string // activates when this field's value is non-empty
}

// Constraint is a single rule on a field. Min is set for MinLen, OtherField
// for EqualsField. When is nil for unconditional constraints.
type Constraint struct {
	Kind       Kind
	Min        int
	OtherField string
	Message    string
	When       *Condition
}

// Field is an ordered set of constraints on one form field.
type Field struct {
	Name        string
	Constraints []Constraint
}

// Schema is an ordered sequence of field constraints.
type Schema struct {
	fields []Field
}

// New builds a schema from ordered fields.
func New(fields ...Field) Schema {
	return Schema{fields: fields}
}

// Describe returns the ordered field constraints.
func (s Schema) Describe() []Field {
	return s.fields
}

// Messages shown next to form fields. English renditions of the product copy.
const (
	msgNameRequired     = "Name is required"
	msgEmailRequired    = "E-mail is required"
	msgEmailInvalid     = "Enter a valid e-mail"
	msgPasswordMin      = "At least 6 characters"
	msgFieldRequired    = "Field is required"
	msgConfirmationDiff = "Confirmation does not match"
)

// Creation is the schema for the account creation screen: name and e-mail
// required, password at least 6 characters.
func Creation() Schema {
	return New(
		Field{Name: domain.FieldName, Constraints: []Constraint{
			{Kind: Required, Message: msgNameRequired},
		}},
		Field{Name: domain.FieldEmail, Constraints: []Constraint{
			{Kind: Required, Message: msgEmailRequired},
			{Kind: Email, Message: msgEmailInvalid},
		}},
		Field{Name: domain.FieldPassword, Constraints: []Constraint{
			{Kind: MinLen, Min: 6, Message: msgPasswordMin},
		}},
	)
}

// Update is the schema for the profile screen. The old password is optional;
// entering it activates the new password and confirmation constraints.
// Leaving all three blank means "no password change" and is always valid.
func Update() Schema {
	changingPassword := &Condition{Field: domain.FieldOldPassword}

	return New(
		Field{Name: domain.FieldName, Constraints: []Constraint{
			{Kind: Required, Message: msgNameRequired},
		}},
		Field{Name: domain.FieldEmail, Constraints: []Constraint{
			{Kind: Required, Message: msgEmailRequired},
			{Kind: Email, Message: msgEmailInvalid},
		}},
		Field{Name: domain.FieldOldPassword},
		Field{Name: domain.FieldPassword, Constraints: []Constraint{
			{Kind: Required, Message: msgFieldRequired, When: changingPassword},
		}},
		Field{Name: domain.FieldPasswordConfirmation, Constraints: []Constraint{
			{Kind: Required, Message: msgFieldRequired, When: changingPassword},
			{Kind: EqualsField, OtherField: domain.FieldPassword, Message: msgConfirmationDiff, When: changingPassword},
		}},
	)
}
