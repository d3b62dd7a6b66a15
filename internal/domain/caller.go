package domain

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Caller is the authenticated identity supplied by the session layer.
// The engine trusts it completely and only performs ownership checks
// against it. Name, phone and email are cached onto rental rows at
// submission time.
type Caller struct {
	UserID int32
	Name   string
	Phone  string
	Email  string
	Role   Role
}
