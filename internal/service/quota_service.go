package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// MaxAccountQuota 单个员工配额上限
const MaxAccountQuota = 1_000_000

type QuotaService interface {
	// Admit 批量录入账号，要么全部绑定到员工，要么一个都不写
	Admit(ctx context.Context, userID, employeeID uint64, accounts []*dto.AccountCreateDTO, ip string) (*dto.BulkCreateResultDTO, error)
	AddQuota(ctx context.Context, employeeID uint64, amount int) (*dto.QuotaResultDTO, error)
	SetQuota(ctx context.Context, employeeID uint64, quota int) (*dto.QuotaResultDTO, error)
}

type quotaServiceImpl struct {
	tx           repository.Transactor
	employeeRepo repository.EmployeeRepo
	accountRepo  repository.AccountRepo
	sweeper      LockSweeper
	auditSvc     AuditService
	clock        clock.Clock
}

func NewQuotaService(
	tx repository.Transactor,
	employeeRepo repository.EmployeeRepo,
	accountRepo repository.AccountRepo,
	sweeper LockSweeper,
	auditSvc AuditService,
	clk clock.Clock,
) QuotaService {
	return &quotaServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
		sweeper:      sweeper,
		auditSvc:     auditSvc,
		clock:        clk,
	}
}

func (s *quotaServiceImpl) Admit(ctx context.Context, userID, employeeID uint64, accounts []*dto.AccountCreateDTO, ip string) (*dto.BulkCreateResultDTO, error) {
	if len(accounts) == 0 {
		return nil, ErrParamInvalid
	}

	var remaining int
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.sweeper.SweepTx(ctx, tx, s.clock.Today()); err != nil {
			return err
		}

		emp, err := s.employeeRepo.WithTx(tx).GetById(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrEmployeeNotFound
		}

		accountRepo := s.accountRepo.WithTx(tx)
		assigned, err := accountRepo.CountByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if int(assigned)+len(accounts) > emp.AccountQuota {
			return &QuotaExceededError{
				Quota:     emp.AccountQuota,
				Assigned:  int(assigned),
				Requested: len(accounts),
			}
		}

		// 批内重复与库内已存在都算冲突，在任何写入之前完成检查
		usernames := make([]string, 0, len(accounts))
		seen := make(map[string]struct{}, len(accounts))
		for _, a := range accounts {
			name := strings.TrimSpace(a.Username)
			if name == "" {
				return ErrParamInvalid
			}
			if _, dup := seen[name]; dup {
				return &DuplicateUsernameError{Username: name}
			}
			seen[name] = struct{}{}
			usernames = append(usernames, name)
		}

		taken, err := accountRepo.ExistingUsernames(ctx, usernames, 0)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			takenSet := make(map[string]struct{}, len(taken))
			for _, t := range taken {
				takenSet[t] = struct{}{}
			}
			for _, name := range usernames {
				if _, ok := takenSet[name]; ok {
					return &DuplicateUsernameError{Username: name}
				}
			}
		}

		owner := employeeID
		rows := make([]*model.Account, 0, len(accounts))
		for i, a := range accounts {
			rows = append(rows, &model.Account{
				Username:           usernames[i],
				Password:           a.Password,
				AssignedEmployeeID: &owner,
			})
		}
		if err = accountRepo.CreateBatch(ctx, rows); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserUsernameExist
			}
			return err
		}

		remaining = emp.AccountQuota - int(assigned) - len(accounts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, userID, model.ActionCreateAccount, fmt.Sprintf("Created %d accounts", len(accounts)), ip)

	return &dto.BulkCreateResultDTO{Created: len(accounts), Remaining: remaining}, nil
}

func (s *quotaServiceImpl) AddQuota(ctx context.Context, employeeID uint64, amount int) (*dto.QuotaResultDTO, error) {
	if amount > MaxAccountQuota {
		return nil, ErrQuotaTooLarge
	}
	if amount < -MaxAccountQuota {
		return nil, ErrQuotaNegative
	}
	return s.changeQuota(ctx, employeeID, func(current int) int64 {
		return int64(current) + int64(amount)
	})
}

func (s *quotaServiceImpl) SetQuota(ctx context.Context, employeeID uint64, quota int) (*dto.QuotaResultDTO, error) {
	return s.changeQuota(ctx, employeeID, func(int) int64 {
		return int64(quota)
	})
}

func (s *quotaServiceImpl) changeQuota(ctx context.Context, employeeID uint64, next func(current int) int64) (*dto.QuotaResultDTO, error) {
	var newQuota int
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		employeeRepo := s.employeeRepo.WithTx(tx)
		emp, err := employeeRepo.GetById(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrEmployeeNotFound
		}

		// 先在 int64 上求值再收窄，避免溢出回绕
		n := next(emp.AccountQuota)
		if n < 0 {
			return ErrQuotaNegative
		}
		if n > MaxAccountQuota {
			return ErrQuotaTooLarge
		}
		newQuota = int(n)
		return employeeRepo.SetQuota(ctx, employeeID, newQuota)
	})
	if err != nil {
		return nil, err
	}
	return &dto.QuotaResultDTO{EmployeeID: employeeID, NewQuota: newQuota}, nil
}
