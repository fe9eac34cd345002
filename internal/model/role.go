package model

const (
	RoleAdmin  = "Admin"
	RoleEditor = "Editor"
	RoleUser   = "User"
)

// swagger:model Role
type Role struct {
	UUIDBase
	Name        string `gorm:"size:50;unique;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Role) TableName() string {
	return "roles"
}
