package middleware

import (
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/security"
	"Followdesk/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

const employeeKey = "employee"

// CheckRoles 检查当前用户是否拥有至少一个指定的角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.Get(claimsKey)
		userClaims, _ := claims.(*security.UserClaims)
		if !ok || userClaims == nil || !slices.ContainsFunc(requiredRoles, userClaims.HasRole) {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireEmployee 加载当前用户的员工档案，没有档案的账号不能访问员工接口
func RequireEmployee(employeeSvc service.EmployeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		emp, err := employeeSvc.ResolveByUser(c.Request.Context(), c.GetUint64("user_id"))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(employeeKey, emp)
		c.Next()
	}
}

// CurrentEmployee 取 RequireEmployee 注入的员工档案
func CurrentEmployee(c *gin.Context) *model.Employee {
	v, ok := c.Get(employeeKey)
	if !ok {
		return nil
	}
	emp, _ := v.(*model.Employee)
	return emp
}
