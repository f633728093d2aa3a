package model

import "time"

type Employee struct {
	ID           uint64 `gorm:"primaryKey"`
	UserID       uint64 `gorm:"uniqueIndex:idx_employee_user;not null"`
	FullName     string `gorm:"type:varchar(100);not null"`
	AccountQuota int    `gorm:"type:int;not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Employee) TableName() string {
	return "employees"
}
