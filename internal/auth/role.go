package auth

// Role is the closed set of caller roles. Every protected endpoint declares
// an explicit allow-list of these values — no ad-hoc string comparisons.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleSuperAdmin    Role = "super_admin"
	RoleManager       Role = "manager"
	RoleBranchManager Role = "branch_manager"
	RoleTechnician    Role = "technician"
)

var knownRoles = map[Role]bool{
	RoleAdmin:         true,
	RoleSuperAdmin:    true,
	RoleManager:       true,
	RoleBranchManager: true,
	RoleTechnician:    true,
}

// ParseRole maps a raw role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, knownRoles[r]
}

// Identity is the resolved caller for one request: an id plus a role drawn
// from the known set. An unresolvable request has no Identity at all, never
// an Identity with an empty role. BranchID scopes branch_manager reads.
type Identity struct {
	ID       string
	Role     Role
	BranchID *string
}
