package wire

import (
	"Followdesk/internal/api"
	"Followdesk/internal/api/config"
	"Followdesk/internal/api/handler"
	"Followdesk/internal/job"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/cron"
	"Followdesk/internal/pkg/redis"
	"Followdesk/internal/pkg/security"
	"Followdesk/internal/repository"
	"Followdesk/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	CronMgr  *cron.Manager
	AuthSvc  service.AuthService
	AuditSvc service.AuditService
}

// BuildApplication mirrors 为已连接的审计镜像，可以为空
func BuildApplication(db *gorm.DB, cfg *config.Config, clk clock.Clock, mirrors ...service.AuditMirror) *ApplicationContainer {
	tx := repository.NewTransactor(db)

	userRepo := repository.NewUserRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	reportRepo := repository.NewReportRepo(db)
	downloadRepo := repository.NewDownloadRepo(db)
	auditLogRepo := repository.NewAuditLogRepo(db)
	noteRepo := repository.NewNoteRepo(db)

	var blacklist service.TokenBlacklist
	if redis.Enabled() {
		blacklist = redis.NewTokenBlacklist()
	} else {
		log.Warn("redis unavailable, token blacklist kept in memory")
		blacklist = security.NewMemoryBlacklist()
	}

	sweeper := service.NewLockSweeper(reportRepo)
	auditService := service.NewAuditService(auditLogRepo, userRepo, clk, mirrors...)
	authService := service.NewAuthService(userRepo, blacklist, auditService)
	employeeService := service.NewEmployeeService(tx, userRepo, employeeRepo, accountRepo)
	accountService := service.NewAccountService(tx, accountRepo, auditService)
	quotaService := service.NewQuotaService(tx, employeeRepo, accountRepo, sweeper, auditService, clk)
	assignmentService := service.NewAssignmentService(tx, employeeRepo, accountRepo, sweeper, clk)
	reportService := service.NewReportService(tx, reportRepo, accountRepo, employeeRepo, sweeper, auditService, clk)
	statsService := service.NewStatsService(reportRepo, downloadRepo, employeeRepo, accountRepo, userRepo, sweeper, clk)
	downloadService := service.NewDownloadService(downloadRepo, employeeRepo, sweeper, clk)
	noteService := service.NewNoteService(noteRepo)

	handlers := &api.HandlersGroup{
		AuthHandler:          handler.NewAuthHandler(authService),
		EmployeeAdminHandler: handler.NewEmployeeAdminHandler(employeeService, quotaService, accountService, assignmentService),
		AccountHandler:       handler.NewAccountHandler(accountService, quotaService),
		ReportHandler:        handler.NewReportHandler(reportService, statsService),
		DownloadHandler:      handler.NewDownloadHandler(downloadService, statsService),
		AuditHandler:         handler.NewAuditHandler(auditService),
		NoteHandler:          handler.NewNoteHandler(noteService),
		AuthService:          authService,
		EmployeeService:      employeeService,
	}

	router := api.SetupRouter(handlers, cfg)

	cronMgr := cron.NewCronManager(job.NewReportLockJob(sweeper, clk), cfg.Cron.LockSweep)

	return &ApplicationContainer{
		Router:   router,
		DB:       db,
		CronMgr:  cronMgr,
		AuthSvc:  authService,
		AuditSvc: auditService,
	}
}
