package util

import (
	"Followdesk/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam 解析路径中的正整数 ID
func ParseIDParam(c *gin.Context, key string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

// QueryInt 读取整型查询参数，缺省返回 def
func QueryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return v, nil
}

// GetUserID 取鉴权中间件注入的用户 ID
func GetUserID(c *gin.Context) uint64 {
	return c.GetUint64("user_id")
}

// GetUsername 取鉴权中间件注入的用户名
func GetUsername(c *gin.Context) string {
	return c.GetString("username")
}
