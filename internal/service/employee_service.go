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

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type EmployeeService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserDTO) (uint64, error)
	ResetPassword(ctx context.Context, employeeID uint64, newPassword string) error
	DeleteEmployee(ctx context.Context, employeeID uint64) error
	ListEmployees(ctx context.Context) ([]*dto.EmployeeDTO, error)
	GetEmployeeDetail(ctx context.Context, employeeID uint64) (*dto.EmployeeDetailDTO, error)
	// ResolveByUser 当前登录用户对应的员工档案
	ResolveByUser(ctx context.Context, userID uint64) (*model.Employee, error)
}

type employeeServiceImpl struct {
	tx           repository.Transactor
	userRepo     repository.UserRepo
	employeeRepo repository.EmployeeRepo
	accountRepo  repository.AccountRepo
}

func NewEmployeeService(
	tx repository.Transactor,
	userRepo repository.UserRepo,
	employeeRepo repository.EmployeeRepo,
	accountRepo repository.AccountRepo,
) EmployeeService {
	return &employeeServiceImpl{
		tx:           tx,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
	}
}

func (s *employeeServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserDTO) (uint64, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return 0, ErrParamInvalid
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         req.Role,
	}
	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		exist, err := userRepo.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exist != nil {
			return ErrUserUsernameExist
		}

		if err = userRepo.CreateUser(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserUsernameExist
			}
			return err
		}

		if user.Role != model.RoleEmployee {
			return nil
		}
		fullName := strings.TrimSpace(req.FullName)
		if fullName == "" {
			fullName = username
		}
		return s.employeeRepo.WithTx(tx).Create(ctx, &model.Employee{
			UserID:       user.ID,
			FullName:     fullName,
			AccountQuota: 0,
		})
	})
	if err != nil {
		return 0, err
	}

	log.InfoContext(ctx, "user created", "username", username, "role", user.Role)
	return user.ID, nil
}

func (s *employeeServiceImpl) ResetPassword(ctx context.Context, employeeID uint64, newPassword string) error {
	emp, err := s.employeeRepo.GetById(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return ErrEmployeeNotFound
	}
	user, err := s.userRepo.GetUserById(ctx, emp.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

// DeleteEmployee 释放账号回未分配池后删除员工及其登录用户，日报保留
func (s *employeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID uint64) error {
	return s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		employeeRepo := s.employeeRepo.WithTx(tx)
		emp, err := employeeRepo.GetById(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrEmployeeNotFound
		}

		released, err := s.accountRepo.WithTx(tx).UnassignByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if err = employeeRepo.Delete(ctx, employeeID); err != nil {
			return err
		}
		if err = s.userRepo.WithTx(tx).DeleteUser(ctx, emp.UserID); err != nil {
			return err
		}

		log.InfoContext(ctx, "employee deleted", "employee_id", employeeID, "released_accounts", released)
		return nil
	})
}

func (s *employeeServiceImpl) ListEmployees(ctx context.Context) ([]*dto.EmployeeDTO, error) {
	emps, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.accountRepo.CountGroupByEmployee(ctx)
	if err != nil {
		return nil, err
	}
	usernames, err := s.usernamesOf(ctx, emps)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.EmployeeDTO, 0, len(emps))
	for _, e := range emps {
		item := &dto.EmployeeDTO{}
		_ = copier.Copy(item, e)
		item.UserName = usernameOr(usernames, e.UserID)
		item.AssignedCount = counts[e.ID]
		res = append(res, item)
	}
	return res, nil
}

func (s *employeeServiceImpl) GetEmployeeDetail(ctx context.Context, employeeID uint64) (*dto.EmployeeDetailDTO, error) {
	emp, err := s.employeeRepo.GetById(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	accounts, err := s.accountRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	usernames, err := s.usernamesOf(ctx, []*model.Employee{emp})
	if err != nil {
		return nil, err
	}

	detail := &dto.EmployeeDetailDTO{}
	_ = copier.Copy(detail, emp)
	detail.UserName = usernameOr(usernames, emp.UserID)
	detail.AssignedAccounts = toAccountDTOs(accounts)
	return detail, nil
}

func (s *employeeServiceImpl) ResolveByUser(ctx context.Context, userID uint64) (*model.Employee, error) {
	emp, err := s.employeeRepo.GetByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrNotEmployee
	}
	return emp, nil
}

func (s *employeeServiceImpl) usernamesOf(ctx context.Context, emps []*model.Employee) (map[uint64]string, error) {
	ids := make([]uint64, 0, len(emps))
	for _, e := range emps {
		ids = append(ids, e.UserID)
	}
	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uint64]string, len(users))
	for _, u := range users {
		m[u.ID] = u.Username
	}
	return m, nil
}

func usernameOr(usernames map[uint64]string, userID uint64) string {
	if name, ok := usernames[userID]; ok {
		return name
	}
	return consts.UnknownDisplayName
}

func toAccountDTOs(accounts []*model.Account) []*dto.AccountDTO {
	res := make([]*dto.AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		item := &dto.AccountDTO{}
		_ = copier.Copy(item, a)
		res = append(res, item)
	}
	return res
}
