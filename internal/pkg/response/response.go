package response

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = service.BadRequest
	Unauthorized        = service.Unauthorized
	Forbidden           = service.Forbidden
	NotFound            = service.NotFound
	Conflict            = service.Conflict
	QuotaExceeded       = service.QuotaExceeded
	InternalServerError = service.InternalServerError
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	FailWithData(c, businessCode, message, nil)
}

// FailWithData 失败且附带数据，例如配额剩余量
func FailWithData(c *gin.Context, businessCode int, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    data,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "参数错误")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	var quotaErr *service.QuotaExceededError
	if errors.As(err, &quotaErr) {
		FailWithData(c, QuotaExceeded, err.Error(), &dto.QuotaExceededDTO{Remaining: quotaErr.Remaining()})
		return
	}

	code, ok := service.ErrorCode(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, code, "服务器内部错误")
		return
	}
	Fail(c, code, err.Error())
}
