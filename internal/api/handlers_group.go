package api

import (
	"Followdesk/internal/api/handler"
	"Followdesk/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler          *handler.AuthHandler
	EmployeeAdminHandler *handler.EmployeeAdminHandler
	AccountHandler       *handler.AccountHandler
	ReportHandler        *handler.ReportHandler
	DownloadHandler      *handler.DownloadHandler
	AuditHandler         *handler.AuditHandler
	NoteHandler          *handler.NoteHandler

	// 中间件依赖
	AuthService     service.AuthService
	EmployeeService service.EmployeeService
}
