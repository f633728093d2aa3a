package handler

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

// EmployeeAdminHandler 管理员维护员工、配额与账号池
type EmployeeAdminHandler struct {
	employeeSvc   service.EmployeeService
	quotaSvc      service.QuotaService
	accountSvc    service.AccountService
	assignmentSvc service.AssignmentService
}

func NewEmployeeAdminHandler(
	employeeSvc service.EmployeeService,
	quotaSvc service.QuotaService,
	accountSvc service.AccountService,
	assignmentSvc service.AssignmentService,
) *EmployeeAdminHandler {
	return &EmployeeAdminHandler{
		employeeSvc:   employeeSvc,
		quotaSvc:      quotaSvc,
		accountSvc:    accountSvc,
		assignmentSvc: assignmentSvc,
	}
}

func (s *EmployeeAdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID, err := s.employeeSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{"user_id": userID})
}

func (s *EmployeeAdminHandler) ResetPassword(c *gin.Context) {
	employeeID, err := util.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ResetPasswordDTO
	if err = util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.employeeSvc.ResetPassword(c.Request.Context(), employeeID, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EmployeeAdminHandler) DeleteEmployee(c *gin.Context) {
	employeeID, err := util.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.employeeSvc.DeleteEmployee(c.Request.Context(), employeeID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EmployeeAdminHandler) ListEmployees(c *gin.Context) {
	list, err := s.employeeSvc.ListEmployees(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *EmployeeAdminHandler) GetEmployee(c *gin.Context) {
	employeeID, err := util.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := s.employeeSvc.GetEmployeeDetail(c.Request.Context(), employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *EmployeeAdminHandler) AddQuota(c *gin.Context) {
	s.changeQuota(c, s.quotaSvc.AddQuota)
}

func (s *EmployeeAdminHandler) SetQuota(c *gin.Context) {
	s.changeQuota(c, s.quotaSvc.SetQuota)
}

func (s *EmployeeAdminHandler) changeQuota(c *gin.Context, apply func(ctx context.Context, employeeID uint64, amount int) (*dto.QuotaResultDTO, error)) {
	employeeID, err := util.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.QuotaDTO
	if err = util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := apply(c.Request.Context(), employeeID, *req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *EmployeeAdminHandler) CreateAccount(c *gin.Context) {
	var req dto.AccountCreateDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	acc, err := s.accountSvc.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, acc)
}

func (s *EmployeeAdminHandler) DeleteAccount(c *gin.Context) {
	accountID, err := util.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.accountSvc.DeleteAccount(c.Request.Context(), accountID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AssignAccounts 从未分配池按 id 升序取账号分给员工
func (s *EmployeeAdminHandler) AssignAccounts(c *gin.Context) {
	var req dto.AssignDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.assignmentSvc.Assign(c.Request.Context(), req.EmployeeID, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
