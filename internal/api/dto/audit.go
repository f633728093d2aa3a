package dto

type AuditLogDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	IPAddress string `json:"ip_address"`
	Timestamp string `json:"timestamp"`
}
