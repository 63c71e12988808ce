package domain

// CanManageUser decides whether a caller may update or delete the target
// user account: owners always may, and callers holding the admin role may
// manage any account. The admin override exists only for user targets;
// products and orders use the strict OwnedBy checks on their types.
func CanManageUser(callerID int64, callerRole Role, targetID int64) bool {
	return callerID == targetID || callerRole == RoleAdmin
}
