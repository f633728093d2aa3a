package model

import "time"

// DownloadRecord 只追加，区间 [StartDate, EndDate] 闭区间，同一员工的记录相互叠加
type DownloadRecord struct {
	ID         uint64 `gorm:"primaryKey"`
	EmployeeID uint64 `gorm:"not null;index:idx_download_employee"`
	StartDate  string `gorm:"type:varchar(10);not null;index:idx_download_start"`
	EndDate    string `gorm:"type:varchar(10);not null"`
	Count      int    `gorm:"type:int;not null;default:0"`
	CreatedAt  time.Time
}

func (DownloadRecord) TableName() string {
	return "download_records"
}
