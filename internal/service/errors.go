package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	QuotaExceeded       = 422
	InternalServerError = 500
)

// 错误类别，具体错误通过 Unwrap 归入其中一类
var (
	ErrNotFound      = errors.New("资源不存在")
	ErrForbidden     = errors.New("权限不足")
	ErrConflict      = errors.New("资源冲突")
	ErrQuotaExceeded = errors.New("账号配额不足")
	ErrValidation    = errors.New("参数错误")
	ErrUnauthorized  = errors.New("未登录或凭据无效")
)

type bizError struct {
	kind error
	msg  string
}

func (e *bizError) Error() string { return e.msg }

func (e *bizError) Unwrap() error { return e.kind }

func newBizError(kind error, msg string) error {
	return &bizError{kind: kind, msg: msg}
}

var (
	ErrParamInvalid        = newBizError(ErrValidation, "参数错误")
	ErrDateRangeInvalid    = newBizError(ErrValidation, "开始日期不能晚于结束日期")
	ErrDateFormatInvalid   = newBizError(ErrValidation, "日期格式应为 YYYY-MM-DD")
	ErrNegativeCount       = newBizError(ErrValidation, "数量不能为负数")
	ErrQuotaNegative       = newBizError(ErrValidation, "配额不能为负数")
	ErrQuotaTooLarge       = newBizError(ErrValidation, "配额超出上限")
	ErrUserNotFound        = newBizError(ErrNotFound, "用户不存在")
	ErrEmployeeNotFound    = newBizError(ErrNotFound, "员工不存在")
	ErrAccountNotFound     = newBizError(ErrNotFound, "账号不存在")
	ErrAccountNotAssigned  = newBizError(ErrForbidden, "该账号未分配给当前员工")
	ErrNotEmployee         = newBizError(ErrForbidden, "当前用户没有员工档案")
	ErrReportLocked        = newBizError(ErrConflict, "report is locked")
	ErrUserUsernameExist   = newBizError(ErrConflict, "用户名已存在")
	ErrPasswordIncorrect   = newBizError(ErrUnauthorized, "用户名或密码错误")
	ErrTokenInvalid        = newBizError(ErrUnauthorized, "token 无效或已过期")
	ErrAdminBootstrapEmpty = errors.New("未配置初始管理员密码")
)

// QuotaExceededError 批量录入超出配额，Remaining 为剩余可录入数量
type QuotaExceededError struct {
	Quota     int
	Assigned  int
	Requested int
}

func (e *QuotaExceededError) Remaining() int {
	r := e.Quota - e.Assigned
	if r < 0 {
		return 0
	}
	return r
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("配额不足，最多还可添加 %d 个账号", e.Remaining())
}

func (e *QuotaExceededError) Unwrap() error { return ErrQuotaExceeded }

// DuplicateUsernameError 账号用户名已被占用
type DuplicateUsernameError struct {
	Username string
}

func (e *DuplicateUsernameError) Error() string {
	return fmt.Sprintf("账号 %s 已存在", e.Username)
}

func (e *DuplicateUsernameError) Unwrap() error { return ErrConflict }

// ErrorMap 错误类别到业务码
var ErrorMap = map[error]int{
	ErrValidation:    BadRequest,
	ErrUnauthorized:  Unauthorized,
	ErrForbidden:     Forbidden,
	ErrNotFound:      NotFound,
	ErrConflict:      Conflict,
	ErrQuotaExceeded: QuotaExceeded,
}

// ErrorCode 按类别解析业务码
func ErrorCode(err error) (int, bool) {
	for kind, code := range ErrorMap {
		if errors.Is(err, kind) {
			return code, true
		}
	}
	return InternalServerError, false
}
