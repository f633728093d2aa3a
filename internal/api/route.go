package api

import (
	"Followdesk/internal/api/config"
	"Followdesk/internal/api/middleware"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))
	logger.SetupGin(r, cfg.Logstash.Index)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		// 无需登录
		apiGroup.POST("/login", group.AuthHandler.Login)

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware(group.AuthService))
		{
			authGroup.POST("/logout", group.AuthHandler.Logout)
			authGroup.GET("/note", group.NoteHandler.GetNote)
		}

		adminGroup := authGroup.Group("/admin")
		adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.PUT("/note", group.NoteHandler.UpdateNote)
			adminGroup.POST("/users", group.EmployeeAdminHandler.CreateUser)

			adminGroup.GET("/employees", group.EmployeeAdminHandler.ListEmployees)
			adminGroup.GET("/employees/:id", group.EmployeeAdminHandler.GetEmployee)
			adminGroup.DELETE("/employees/:id", group.EmployeeAdminHandler.DeleteEmployee)
			adminGroup.PUT("/employees/:id/password", group.EmployeeAdminHandler.ResetPassword)
			adminGroup.POST("/employees/:id/quota/add", group.EmployeeAdminHandler.AddQuota)
			adminGroup.PUT("/employees/:id/quota", group.EmployeeAdminHandler.SetQuota)

			adminGroup.POST("/accounts", group.EmployeeAdminHandler.CreateAccount)
			adminGroup.POST("/accounts/assign", group.EmployeeAdminHandler.AssignAccounts)
			adminGroup.DELETE("/accounts/:id", group.EmployeeAdminHandler.DeleteAccount)

			adminGroup.GET("/reports", group.ReportHandler.ListAll)
			adminGroup.GET("/reports/daily-summary", group.ReportHandler.DailySummary)

			adminGroup.POST("/downloads", group.DownloadHandler.AddRecord)
			adminGroup.GET("/downloads/stats", group.DownloadHandler.Stats)
			adminGroup.GET("/downloads/chart", group.DownloadHandler.AdminChart)

			adminGroup.GET("/audit-logs", group.AuditHandler.ListLogs)
		}

		// 需要登录 & 拥有员工档案
		employeeGroup := authGroup.Group("/employee")
		employeeGroup.Use(middleware.CheckRoles(consts.RoleEmployee), middleware.RequireEmployee(group.EmployeeService))
		{
			employeeGroup.GET("/dashboard", group.AccountHandler.Dashboard)
			employeeGroup.GET("/accounts", group.AccountHandler.ListMine)
			employeeGroup.POST("/accounts/bulk", group.AccountHandler.BulkCreate)
			employeeGroup.PUT("/accounts/:id", group.AccountHandler.UpdateMine)

			employeeGroup.POST("/reports", group.ReportHandler.Submit)
			employeeGroup.GET("/reports/today", group.ReportHandler.ListToday)

			employeeGroup.GET("/downloads", group.DownloadHandler.MyDownloads)
			employeeGroup.GET("/downloads/chart", group.DownloadHandler.MyChart)
		}
	}

	return r
}
