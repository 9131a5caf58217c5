package entity

// Role is the marketplace persona an account signs in as.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleReseller Role = "reseller"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleReseller, RoleAdmin:
		return true
	}
	return false
}

// SelfService reports whether accounts of this role may register themselves.
// Admins are provisioned out of band.
func (r Role) SelfService() bool {
	return r == RoleCustomer || r == RoleSeller || r == RoleReseller
}

func (r Role) String() string { return string(r) }
