package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null;default:'user'" json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID uint     `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// HasRole reports whether the identity satisfies required. Admin satisfies every role.
func (i Identity) HasRole(required UserRole) bool {
	return i.Role == required || i.IsAdmin()
}

// CanAccess reports whether the identity owns a resource of ownerID or is an admin.
func (i Identity) CanAccess(ownerID uint) bool {
	return i.UserID == ownerID || i.IsAdmin()
}
