package domain

import "encoding/json"

// User is the account representation returned by the account service.
// It is also the shape of the process-wide session identity.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// AccountRecord is a raw form record as captured by an account screen.
// Password fields are only meaningful on the update screen; the creation
// screen fills Password and leaves the rest empty.
type AccountRecord struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"old_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Form field names as they appear on the wire and in field error maps.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldOldPassword          = "old_password"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
)

// Value returns the record value for a form field name.
// The second return reports whether the field name is known.
func (r AccountRecord) Value(field string) (string, bool) {
	switch field {
	case FieldName:
		return r.Name, true
	case FieldEmail:
		return r.Email, true
	case FieldOldPassword:
		return r.OldPassword, true
	case FieldPassword:
		return r.Password, true
	case FieldPasswordConfirmation:
		return r.PasswordConfirmation, true
	}
	return "", false
}

// ValidationError is a single violated constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrorMap maps a form field name to the message displayed next to it.
// It is ephemeral: the owning screen discards it wholesale before every
// validation pass.
type FieldErrorMap map[string]string

// CreationPayload is the request body for account creation (POST /users).
type CreationPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChange groups the three password fields of a profile update.
// The group is all-or-nothing on the wire: the fields are never sent
// individually.
type PasswordChange struct {
	Old          string `json:"old_password"`
	New          string `json:"password"`
	Confirmation string `json:"password_confirmation"`
}

// SubmissionPayload is the request body for a profile update (PUT /profile).
// Change is nil when the user is not changing their password; MarshalJSON
// flattens the group into the wire shape expected by the account service.
type SubmissionPayload struct {
	Name   string
	Email  string
	Change *PasswordChange
}

// MarshalJSON flattens the payload into the service's flat wire shape,
// omitting the password group entirely when no change was requested.
func (p SubmissionPayload) MarshalJSON() ([]byte, error) {
	if p.Change == nil {
		return json.Marshal(struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}{p.Name, p.Email})
	}
	return json.Marshal(struct {
		Name                 string `json:"name"`
		Email                string `json:"email"`
		OldPassword          string `json:"old_password"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}{p.Name, p.Email, p.Change.Old, p.Change.New, p.Change.Confirmation})
}
