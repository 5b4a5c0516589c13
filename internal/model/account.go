package model

import "time"

const (
	AccountTypeClient   = "Client"
	AccountTypeEmployee = "Employee"
	AccountTypeAdmin    = "Admin"
)

// Account is the full stored record, including the password hash. It is
// loaded with the hash only on the login path; every other lookup returns
// an AccountIdentity.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Type         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity strips the account down to the payload that is safe to embed in
// a session token.
func (a Account) Identity() AccountIdentity {
	return AccountIdentity{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Type:      a.Type,
	}
}

// AccountIdentity is the identity payload carried by a session token and
// threaded through the request context. It never contains the password hash.
type AccountIdentity struct {
	AccountID int64  `json:"account_id"`
	FirstName string `json:"account_firstname"`
	LastName  string `json:"account_lastname"`
	Email     string `json:"account_email"`
	Type      string `json:"account_type"`
}

// IsStaff reports whether the account may use the inventory management
// screens.
func (i AccountIdentity) IsStaff() bool {
	return i.Type == AccountTypeEmployee || i.Type == AccountTypeAdmin
}

// ScreenName renders the public reviewer name, e.g. "JSmith".
func (i AccountIdentity) ScreenName() string {
	if i.FirstName == "" {
		return i.LastName
	}
	return i.FirstName[:1] + i.LastName
}
