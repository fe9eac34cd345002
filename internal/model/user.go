package model

import (
	"time"
)

// swagger:model User
type User struct {
	UUIDBase
	FirstName   string    `gorm:"size:50;not null" json:"firstName"`
	LastName    string    `gorm:"size:50;not null" json:"lastName"`
	UserName    string    `gorm:"size:100;unique;not null" json:"userName"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	PhoneNumber string    `gorm:"size:20" json:"phoneNumber"`
	Avatar      string    `gorm:"size:500" json:"avatar"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	Roles       []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName 姓名拼接，仅用于展示
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
