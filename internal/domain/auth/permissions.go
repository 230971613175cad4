package auth

// Role names mirror the directory's closed role set. They are plain strings
// here so the token claims and the permission table stay free of a
// directory dependency.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const (
	PermLeaveRead     = "leave.read"
	PermLeaveWrite    = "leave.write"
	PermLeaveApprove  = "leave.approve"
	PermReportsRead   = "reports.read"
	PermExportsWrite  = "exports.write"
	PermFeedbackWrite = "feedback.write"
	PermFeedbackRead  = "feedback.read"
	PermAuditRead     = "audit.read"
	PermOrgAdmin      = "admin.org"
)

// RolePermissions is the static permission table. There is no open-ended
// role registry: the three variants are the whole universe, and the session
// router dispatches by explicit match on them.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermLeaveRead,
		PermLeaveWrite,
		PermFeedbackWrite,
	},
	RoleManager: {
		PermLeaveRead,
		PermLeaveApprove,
		PermReportsRead,
		PermExportsWrite,
	},
	RoleAdmin: {
		PermLeaveRead,
		PermReportsRead,
		PermExportsWrite,
		PermFeedbackRead,
		PermAuditRead,
		PermOrgAdmin,
	},
}

// RoleHas reports whether the role grants the permission.
func RoleHas(role, permission string) bool {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}
