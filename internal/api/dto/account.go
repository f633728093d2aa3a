package dto

type AccountCreateDTO struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"max=255"`
}

type BulkAccountCreateDTO struct {
	Accounts []*AccountCreateDTO `json:"accounts" validate:"required,min=1,max=500,dive,required"`
}

type AccountUpdateDTO struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"max=255"`
}

type AccountDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AssignDTO struct {
	EmployeeID uint64 `json:"employee_id" validate:"required"`
	Limit      int    `json:"limit" validate:"required,min=1,max=1000"`
}

// AssignResultDTO Count 为 0 时 Status 为 info
type AssignResultDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Msg    string `json:"msg,omitempty"`
}

type BulkCreateResultDTO struct {
	Created   int `json:"created"`
	Remaining int `json:"remaining"`
}

// QuotaExceededDTO 配额不足时随错误返回的剩余额度
type QuotaExceededDTO struct {
	Remaining int `json:"remaining"`
}
