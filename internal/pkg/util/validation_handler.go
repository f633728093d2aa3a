package util

import (
	"Followdesk/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验失败统一归为参数错误
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("%w: 字段 [%s] 校验失败，规则 [%s]",
				service.ErrParamInvalid,
				firstError.Field(),
				firstError.Tag())
		}
		return fmt.Errorf("%w: %v", service.ErrParamInvalid, err)
	}
	return nil
}

// BindAndValidate GET 绑定查询参数，其余按 JSON 请求体绑定，然后校验
func BindAndValidate(c *gin.Context, obj any) error {
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(obj)
	} else {
		err = c.ShouldBindJSON(obj)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrParamInvalid, err)
	}
	return ValidateDTO(obj)
}
