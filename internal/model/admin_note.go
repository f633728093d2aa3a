package model

import "time"

type AdminNote struct {
	ID        uint64 `gorm:"primaryKey"`
	Content   string `gorm:"type:text"`
	Author    string `gorm:"type:varchar(64);default:''"`
	UpdatedAt time.Time
}

func (AdminNote) TableName() string {
	return "admin_notes"
}
