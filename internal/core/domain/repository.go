package domain

import "io"

// Accounts defines the interface for account storage used by the stub
// account service.
type Accounts interface {
	Create(name, email, password string) (*User, error)
	Get(id string) (*User, error)
	UpdateProfile(id string, record AccountRecord) (*User, error)
	SetAvatar(id string, filename string, data io.Reader) (*User, error)
}
