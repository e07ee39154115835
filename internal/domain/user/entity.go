package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access
	RoleAccountant Role = "accountant" // Finance, payroll and reports
	RoleOperator   Role = "operator"   // Fleet, jobs and attendance
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAccountant || r == RoleOperator
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
