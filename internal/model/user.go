package model

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User 登录主体，员工通过 Employee.UserID 绑定
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(64);uniqueIndex:idx_username;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(16);not null;default:'employee'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
