package auth

type Role int

const (
	RoleAdmin Role = iota + 1
	RoleEmployee
	RoleClient
)

func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleClient
}

// IsStaff reports whether the role sees every reservation.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEmployee:
		return "employee"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}
