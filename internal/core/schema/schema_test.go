package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/account-sdk/internal/core/domain"
)

func TestCreation(t *testing.T) {
	fields := Creation().Describe()
	require.Len(t, fields, 3)

	assert.Equal(t, domain.FieldName, fields[0].Name)
	assert.Equal(t, domain.FieldEmail, fields[1].Name)
	assert.Equal(t, domain.FieldPassword, fields[2].Name)

	// Creation has no conditional constraints.
	for _, field := range fields {
		for _, c := range field.Constraints {
			assert.Nil(t, c.When)
		}
	}
}

func TestUpdate(t *testing.T) {
	fields := Update().Describe()
	require.Len(t, fields, 5)

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	// Old password itself is unconstrained.
	assert.Empty(t, byName[domain.FieldOldPassword].Constraints)

	// New password and confirmation are keyed on old password presence.
	for _, name := range []string{domain.FieldPassword, domain.FieldPasswordConfirmation} {
		field := byName[name]
		require.NotEmpty(t, field.Constraints)
		for _, c := range field.Constraints {
			require.NotNil(t, c.When, "constraint on %s must be conditional", name)
			assert.Equal(t, domain.FieldOldPassword, c.When.Field)
		}
	}

	confirmation := byName[domain.FieldPasswordConfirmation]
	require.Len(t, confirmation.Constraints, 2)
	assert.Equal(t, EqualsField, confirmation.Constraints[1].Kind)
	assert.Equal(t, domain.FieldPassword, confirmation.Constraints[1].OtherField)
}
