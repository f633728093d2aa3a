package model

import "time"

// Account 托管的第三方账号，AssignedEmployeeID 为空表示处于未分配池
type Account struct {
	ID                 uint64  `gorm:"primaryKey"`
	Username           string  `gorm:"type:varchar(100);uniqueIndex:idx_account_username;not null"`
	Password           string  `gorm:"type:varchar(255);not null;default:''"`
	AssignedEmployeeID *uint64 `gorm:"index:idx_account_employee"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Account) TableName() string {
	return "instagram_accounts"
}
