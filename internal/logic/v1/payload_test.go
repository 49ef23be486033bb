package v1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/account-sdk/internal/core/domain"
)

func TestNewSubmissionPayload(t *testing.T) {
	t.Run("password group attached when old password present", func(t *testing.T) {
		payload := NewSubmissionPayload(domain.AccountRecord{
			Name:                 "Ana",
			Email:                "ana@x.com",
			OldPassword:          "abc123",
			Password:             "newpass1",
			PasswordConfirmation: "newpass1",
		})

		require.NotNil(t, payload.Change)

		body, err := json.Marshal(payload)
		require.NoError(t, err)

		var wire map[string]string
		require.NoError(t, json.Unmarshal(body, &wire))
		assert.Equal(t, map[string]string{
			"name":                  "Ana",
			"email":                 "ana@x.com",
			"old_password":          "abc123",
			"password":              "newpass1",
			"password_confirmation": "newpass1",
		}, wire)
	})

	t.Run("password group omitted entirely without old password", func(t *testing.T) {
		payload := NewSubmissionPayload(domain.AccountRecord{
			Name:  "Ana",
			Email: "ana@x.com",
			// A stray confirmation must not leak into the payload.
			PasswordConfirmation: "left-over",
		})

		assert.Nil(t, payload.Change)

		body, err := json.Marshal(payload)
		require.NoError(t, err)

		var wire map[string]any
		require.NoError(t, json.Unmarshal(body, &wire))
		assert.Equal(t, map[string]any{
			"name":  "Ana",
			"email": "ana@x.com",
		}, wire)
	})
}

func TestNewCreationPayload(t *testing.T) {
	payload := NewCreationPayload(domain.AccountRecord{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret7",
	})
	assert.Equal(t, domain.CreationPayload{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret7",
	}, payload)
}
