package models

// Role is one of the fixed identity roles.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployer Role = "Employer"
	RoleEmployee Role = "Employee"
)

// AllRoles lists every role seeded at startup.
var AllRoles = []Role{RoleAdmin, RoleEmployer, RoleEmployee}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleEmployee:
		return true
	}
	return false
}

// RoleRecord is the persisted form of a Role.
type RoleRecord struct {
	ID   uint `gorm:"primaryKey" json:"id"`
	Name Role `gorm:"size:32;uniqueIndex;not null" json:"name"`
}

func (RoleRecord) TableName() string {
	return "roles"
}
