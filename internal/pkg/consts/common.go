package consts

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

const (
	DateLayout           = "2006-01-02"
	UnknownDisplayName   = "Unknown/Deleted"
	UnknownAuditUsername = "Unknown"
)

const (
	AuditLogDefaultLimit = 50
	AuditLogMaxLimit     = 500
	RecentDownloadsLimit = 5
	DownloadWindowDays   = 7
)
