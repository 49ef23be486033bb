package v1

import "github.com/duynhne/account-sdk/internal/core/domain"

// NewCreationPayload projects a validated creation record onto the POST /users
// request body.
func NewCreationPayload(record domain.AccountRecord) domain.CreationPayload {
	return domain.CreationPayload{
		Name:     record.Name,
		Email:    record.Email,
		Password: record.Password,
	}
}

// NewSubmissionPayload projects a validated update record onto the PUT /profile
// request body. The password group is all-or-nothing: it is attached only when
// the user entered their current password, and never field by field.
func NewSubmissionPayload(record domain.AccountRecord) domain.SubmissionPayload {
	payload := domain.SubmissionPayload{
		Name:  record.Name,
		Email: record.Email,
	}
	if record.OldPassword != "" {
		payload.Change = &domain.PasswordChange{
			Old:          record.OldPassword,
			New:          record.Password,
			Confirmation: record.PasswordConfirmation,
		}
	}
	return payload
}
