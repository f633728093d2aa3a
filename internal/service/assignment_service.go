package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/repository"
	"context"
	log "log/slog"

	"gorm.io/gorm"
)

const (
	AssignStatusSuccess = "success"
	AssignStatusInfo    = "info"
)

// AssignmentService 从未分配池中按 id 升序取账号分配给员工，不受配额限制
type AssignmentService interface {
	Assign(ctx context.Context, employeeID uint64, limit int) (*dto.AssignResultDTO, error)
}

type assignmentServiceImpl struct {
	tx           repository.Transactor
	employeeRepo repository.EmployeeRepo
	accountRepo  repository.AccountRepo
	sweeper      LockSweeper
	clock        clock.Clock
}

func NewAssignmentService(
	tx repository.Transactor,
	employeeRepo repository.EmployeeRepo,
	accountRepo repository.AccountRepo,
	sweeper LockSweeper,
	clk clock.Clock,
) AssignmentService {
	return &assignmentServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
		sweeper:      sweeper,
		clock:        clk,
	}
}

func (s *assignmentServiceImpl) Assign(ctx context.Context, employeeID uint64, limit int) (*dto.AssignResultDTO, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}

	var assigned int64
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
		ids, err := accountRepo.ListUnassignedIds(ctx, limit)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		assigned, err = accountRepo.AssignIds(ctx, ids, employeeID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if assigned == 0 {
		return &dto.AssignResultDTO{Status: AssignStatusInfo, Count: 0, Msg: "No unassigned accounts found"}, nil
	}

	log.InfoContext(ctx, "accounts assigned", "employee_id", employeeID, "count", assigned)
	return &dto.AssignResultDTO{Status: AssignStatusSuccess, Count: int(assigned)}, nil
}
