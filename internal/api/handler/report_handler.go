package handler

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/api/middleware"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportSvc service.ReportService
	statsSvc  service.StatsService
}

func NewReportHandler(reportSvc service.ReportService, statsSvc service.StatsService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, statsSvc: statsSvc}
}

// Submit 员工提交当日粉丝数，已存在且未锁定时覆盖
func (s *ReportHandler) Submit(c *gin.Context) {
	var req dto.ReportSubmitDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	emp := middleware.CurrentEmployee(c)
	res, err := s.reportSvc.Submit(c.Request.Context(), util.GetUserID(c), emp.ID, &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ReportHandler) ListToday(c *gin.Context) {
	emp := middleware.CurrentEmployee(c)
	list, err := s.reportSvc.ListToday(c.Request.Context(), emp.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ReportHandler) ListAll(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := util.BindAndValidate(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.reportSvc.ListAll(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ReportHandler) DailySummary(c *gin.Context) {
	summary, err := s.statsSvc.DailySummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
