package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/pkg/security"
	"Followdesk/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"
)

// TokenBlacklist 已注销 Token 的签名集合
type TokenBlacklist interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginDTO, ip string) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	// Authenticate 校验签名、有效期与黑名单
	Authenticate(ctx context.Context, token string) (*security.UserClaims, error)
	// EnsureAdmin 库中没有任何管理员时创建初始管理员，返回是否新建
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepo
	blacklist TokenBlacklist
	auditSvc  AuditService
}

func NewAuthService(userRepo repository.UserRepo, blacklist TokenBlacklist, auditSvc AuditService) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
		auditSvc:  auditSvc,
	}
}

// RoleClaim 库中角色到 Token 角色
func RoleClaim(role string) string {
	if role == model.RoleAdmin {
		return consts.RoleAdmin
	}
	return consts.RoleEmployee
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginDTO, ip string) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Username, []string{RoleClaim(user.Role)})
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, user.ID, model.ActionLogin, "User logged in", ip)

	return &dto.TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrTokenInvalid
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	return s.blacklist.Revoke(ctx, signature, security.RemainingTTL(claims))
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*security.UserClaims, error) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	revoked, err := s.blacklist.IsRevoked(ctx, signature)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenInvalid
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *authServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, ErrAdminBootstrapEmpty
	}

	exist, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if exist != nil {
		return false, ErrUserUsernameExist
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return false, err
	}
	if err = s.userRepo.CreateUser(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}); err != nil {
		return false, err
	}

	log.InfoContext(ctx, "initial admin created", "username", username)
	return true, nil
}
