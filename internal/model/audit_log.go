package model

import "time"

const (
	ActionLogin         = "LOGIN"
	ActionSubmitReport  = "SUBMIT_REPORT"
	ActionUpdateReport  = "UPDATE_REPORT"
	ActionUpdateAccount = "UPDATE_ACCOUNT"
	ActionCreateAccount = "CREATE_ACCOUNTS"
)

type AuditLog struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_audit_user" json:"user_id"`
	Action    string    `gorm:"type:varchar(32);not null" json:"action"`
	Details   string    `gorm:"type:varchar(512)" json:"details"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address"`
	Timestamp time.Time `gorm:"not null;index:idx_audit_time" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
