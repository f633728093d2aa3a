package handler

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/pkg/util"
	"Followdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (s *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := util.BindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.authSvc.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

func (s *AuthHandler) Logout(c *gin.Context) {
	if err := s.authSvc.Logout(c.Request.Context(), c.GetString("token")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
