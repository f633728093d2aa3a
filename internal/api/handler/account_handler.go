package handler

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/api/middleware"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler 员工侧的账号与工作台
type AccountHandler struct {
	accountSvc service.AccountService
	quotaSvc   service.QuotaService
}

func NewAccountHandler(accountSvc service.AccountService, quotaSvc service.QuotaService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, quotaSvc: quotaSvc}
}

func (s *AccountHandler) Dashboard(c *gin.Context) {
	dash, err := s.accountSvc.Dashboard(c.Request.Context(), middleware.CurrentEmployee(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dash)
}

func (s *AccountHandler) ListMine(c *gin.Context) {
	emp := middleware.CurrentEmployee(c)
	list, err := s.accountSvc.ListMine(c.Request.Context(), emp.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// BulkCreate 批量录入受配额限制，超额时整批拒绝并返回剩余额度
func (s *AccountHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkAccountCreateDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	emp := middleware.CurrentEmployee(c)
	res, err := s.quotaSvc.Admit(c.Request.Context(), util.GetUserID(c), emp.ID, req.Accounts, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AccountHandler) UpdateMine(c *gin.Context) {
	accountID, err := util.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AccountUpdateDTO
	if err = util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	emp := middleware.CurrentEmployee(c)
	if err = s.accountSvc.UpdateMine(c.Request.Context(), util.GetUserID(c), emp.ID, accountID, &req, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
