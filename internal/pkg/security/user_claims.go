package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中携带的身份信息
type UserClaims struct {
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole 判断是否拥有指定角色
func (c *UserClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
