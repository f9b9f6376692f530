package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer (or staff member) owning a virtual mailbox.
type User struct {
	ID uuid.UUID

	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	PasswordHashed string
	IsAdmin        bool

	// CasilleroCode is the customer's virtual mailbox code, printed on
	// every inbound box so the warehouse can match it to the account.
	CasilleroCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
