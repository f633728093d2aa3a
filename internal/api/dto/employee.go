package dto

// CreateUserDTO 管理员创建账号，role 为 employee 时同时建员工档案
type CreateUserDTO struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
}

type ResetPasswordDTO struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

// QuotaDTO add 时为增量，set 时为新总量
type QuotaDTO struct {
	Amount *int `json:"amount" validate:"required,min=-1000000,max=1000000"`
}

type QuotaResultDTO struct {
	EmployeeID uint64 `json:"employee_id"`
	NewQuota   int    `json:"new_quota"`
}

type EmployeeDTO struct {
	ID            uint64 `json:"id"`
	FullName      string `json:"full_name"`
	UserName      string `json:"user_name"`
	AccountQuota  int    `json:"account_quota"`
	AssignedCount int64  `json:"assigned_count"`
}

type EmployeeDetailDTO struct {
	ID               uint64        `json:"id"`
	FullName         string        `json:"full_name"`
	UserName         string        `json:"user_name"`
	AccountQuota     int           `json:"account_quota"`
	AssignedAccounts []*AccountDTO `json:"assigned_accounts"`
}

type DashboardDTO struct {
	Quota            int           `json:"quota"`
	AssignedAccounts []*AccountDTO `json:"assigned_accounts"`
}
