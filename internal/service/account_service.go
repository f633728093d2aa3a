package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type AccountService interface {
	// CreateAccount 管理员录入到未分配池
	CreateAccount(ctx context.Context, req *dto.AccountCreateDTO) (*dto.AccountDTO, error)
	DeleteAccount(ctx context.Context, accountID uint64) error
	ListMine(ctx context.Context, employeeID uint64) ([]*dto.AccountDTO, error)
	Dashboard(ctx context.Context, emp *model.Employee) (*dto.DashboardDTO, error)
	UpdateMine(ctx context.Context, userID, employeeID, accountID uint64, req *dto.AccountUpdateDTO, ip string) error
}

type accountServiceImpl struct {
	tx          repository.Transactor
	accountRepo repository.AccountRepo
	auditSvc    AuditService
}

func NewAccountService(tx repository.Transactor, accountRepo repository.AccountRepo, auditSvc AuditService) AccountService {
	return &accountServiceImpl{
		tx:          tx,
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
	}
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req *dto.AccountCreateDTO) (*dto.AccountDTO, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrParamInvalid
	}

	acc := &model.Account{Username: username, Password: req.Password}
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		accountRepo := s.accountRepo.WithTx(tx)
		taken, err := accountRepo.ExistingUsernames(ctx, []string{username}, 0)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return &DuplicateUsernameError{Username: username}
		}
		if err = accountRepo.Create(ctx, acc); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateUsernameError{Username: username}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.AccountDTO{ID: acc.ID, Username: acc.Username, Password: acc.Password}, nil
}

// DeleteAccount 历史日报保留，展示时按已删除处理
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, accountID uint64) error {
	return s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		accountRepo := s.accountRepo.WithTx(tx)
		acc, err := accountRepo.GetById(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		return accountRepo.Delete(ctx, accountID)
	})
}

func (s *accountServiceImpl) ListMine(ctx context.Context, employeeID uint64) ([]*dto.AccountDTO, error) {
	accounts, err := s.accountRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toAccountDTOs(accounts), nil
}

func (s *accountServiceImpl) Dashboard(ctx context.Context, emp *model.Employee) (*dto.DashboardDTO, error) {
	accounts, err := s.ListMine(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardDTO{
		Quota:            emp.AccountQuota,
		AssignedAccounts: accounts,
	}, nil
}

func (s *accountServiceImpl) UpdateMine(ctx context.Context, userID, employeeID, accountID uint64, req *dto.AccountUpdateDTO, ip string) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return ErrParamInvalid
	}

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		accountRepo := s.accountRepo.WithTx(tx)
		acc, err := accountRepo.GetById(ctx, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}
		if acc.AssignedEmployeeID == nil || *acc.AssignedEmployeeID != employeeID {
			return ErrAccountNotAssigned
		}

		taken, err := accountRepo.ExistingUsernames(ctx, []string{username}, accountID)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return &DuplicateUsernameError{Username: username}
		}
		return accountRepo.UpdateCredentials(ctx, accountID, username, req.Password)
	})
	if err != nil {
		return err
	}

	s.auditSvc.Record(ctx, userID, model.ActionUpdateAccount, fmt.Sprintf("Updated account %s", username), ip)
	return nil
}
