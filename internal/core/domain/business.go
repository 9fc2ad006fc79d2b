package domain

// Business is a tenant. Every ledger record belongs to exactly one business.
type Business struct {
	BusinessID   string `json:"businessID"`
	Name         string `json:"name"`
	OwnerUserID  string `json:"ownerUserID"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// StaffRole is the role a user holds inside a business.
type StaffRole string

const (
	RoleOwner      StaffRole = "OWNER"
	RoleAccountant StaffRole = "ACCOUNTANT"
	RoleViewer     StaffRole = "VIEWER"
)

// IsValid reports whether r is one of the known roles.
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

func (r StaffRole) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAccountant:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}

// AtLeast reports whether r grants at least the privileges of min.
func (r StaffRole) AtLeast(min StaffRole) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

// MutationAction is an attempted change to an existing cash entry.
type MutationAction string

const (
	ActionEdit   MutationAction = "EDIT"
	ActionDelete MutationAction = "DELETE"
)

// BusinessUser is a user's membership (staff record) in a business.
type BusinessUser struct {
	BusinessUserID   string    `json:"businessUserID"`
	BusinessID       string    `json:"businessID"`
	UserID           string    `json:"userID"`
	UserName         string    `json:"userName,omitempty"`
	UserEmail        string    `json:"userEmail,omitempty"`
	Role             StaffRole `json:"role"`
	CanDeleteEntries bool      `json:"canDeleteEntries"`
	IsActive         bool      `json:"isActive"`
	AuditFields
}

// CanDirectlyMutate decides whether the staff member may apply action to an entry
// without going through a change request.
//
// Owners always may. Everybody else must request approval for edits, and may delete
// directly only when CanDeleteEntries is set. The flag never covers edits.
func (u BusinessUser) CanDirectlyMutate(action MutationAction) bool {
	if u.Role == RoleOwner {
		return true
	}
	switch action {
	case ActionDelete:
		return u.CanDeleteEntries
	default:
		return false
	}
}

// BusinessMembership is a business seen from one member's side.
type BusinessMembership struct {
	Business
	Role             StaffRole `json:"role"`
	CanDeleteEntries bool      `json:"canDeleteEntries"`
}
