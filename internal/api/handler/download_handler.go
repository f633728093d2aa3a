package handler

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/api/middleware"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct {
	downloadSvc service.DownloadService
	statsSvc    service.StatsService
}

func NewDownloadHandler(downloadSvc service.DownloadService, statsSvc service.StatsService) *DownloadHandler {
	return &DownloadHandler{downloadSvc: downloadSvc, statsSvc: statsSvc}
}

func (s *DownloadHandler) AddRecord(c *gin.Context) {
	var req dto.DownloadRecordCreateDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.downloadSvc.AddRecord(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Stats 区间统计只计入完全落在区间内的记录
func (s *DownloadHandler) Stats(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := util.BindAndValidate(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.statsSvc.RangeStats(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *DownloadHandler) AdminChart(c *gin.Context) {
	chart, err := s.statsSvc.AdminChart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, chart)
}

func (s *DownloadHandler) MyDownloads(c *gin.Context) {
	emp := middleware.CurrentEmployee(c)
	res, err := s.downloadSvc.MyDownloads(c.Request.Context(), emp.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *DownloadHandler) MyChart(c *gin.Context) {
	emp := middleware.CurrentEmployee(c)
	chart, err := s.statsSvc.EmployeeChart(c.Request.Context(), emp.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, chart)
}
