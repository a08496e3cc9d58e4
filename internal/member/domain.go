package member

// Member associates a user with a company through exactly one role.
type Member struct {
	ID        string   `json:"id"`
	CompanyID string   `json:"companyId"`
	UserID    string   `json:"userId"`
	RoleID    string   `json:"roleId"`
	User      UserInfo `json:"user"`
	Role      RoleInfo `json:"companyRole"`
}

// UserInfo is the embedded user summary listings carry.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RoleInfo is the embedded role summary listings carry.
type RoleInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}
