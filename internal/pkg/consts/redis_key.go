package consts

const (
	TokenBlacklistKey = "auth:blacklist:"
)

const (
	ReportLockSweepLock = "lock:report:sweep"
)
