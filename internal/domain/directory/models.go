package directory

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// DefaultAnnualLeave is the yearly allowance granted to a user unless the
// registration call says otherwise.
const DefaultAnnualLeave = 30

type User struct {
	EmpID        int        `json:"empId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	LeaveBalance int        `json:"leaveBalance"`
	TotalAllowed int        `json:"totalAllowed"`
	Badges       int        `json:"badges"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// LeavesUsed is the portion of the allowance currently held or spent.
func (u User) LeavesUsed() int {
	return u.TotalAllowed - u.LeaveBalance
}
