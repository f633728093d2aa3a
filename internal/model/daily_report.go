package model

import "time"

// DailyReport 每个 (员工, 账号, 日期) 至多一条；Locked 只能由 false 变为 true
type DailyReport struct {
	ID            uint64 `gorm:"primaryKey"`
	EmployeeID    uint64 `gorm:"not null;uniqueIndex:idx_report_key,priority:1"`
	AccountID     uint64 `gorm:"column:instagram_account_id;not null;uniqueIndex:idx_report_key,priority:2"`
	Date          string `gorm:"type:varchar(10);not null;uniqueIndex:idx_report_key,priority:3;index:idx_report_date"`
	FollowerCount int    `gorm:"type:int;not null;default:0"`
	Locked        bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DailyReport) TableName() string {
	return "daily_reports"
}
