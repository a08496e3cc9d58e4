package invitation

import "time"

// Invitation is a pending offer of a role to an email address, scoped to a
// company. Accepting it converts the offer into a member record.
type Invitation struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	RoleID    string    `json:"roleId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AcceptedMember is the member record created when an invitation is accepted.
type AcceptedMember struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
	RoleID    string `json:"roleId"`
}
