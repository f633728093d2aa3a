package handler

import (
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditSvc service.AuditService
}

func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

func (s *AuditHandler) ListLogs(c *gin.Context) {
	limit, err := util.QueryInt(c, "limit", consts.AuditLogDefaultLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	logs, err := s.auditSvc.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}
