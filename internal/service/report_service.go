package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/repository"
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	ReportStatusCreated = "created"
	ReportStatusUpdated = "updated"
)

type ReportService interface {
	Submit(ctx context.Context, userID, employeeID uint64, req *dto.ReportSubmitDTO, ip string) (*dto.ReportSubmitResultDTO, error)
	ListToday(ctx context.Context, employeeID uint64) ([]*dto.TodayReportDTO, error)
	ListAll(ctx context.Context, start, end string) ([]*dto.ReportRowDTO, error)
}

type reportServiceImpl struct {
	tx           repository.Transactor
	reportRepo   repository.ReportRepo
	accountRepo  repository.AccountRepo
	employeeRepo repository.EmployeeRepo
	sweeper      LockSweeper
	auditSvc     AuditService
	clock        clock.Clock
}

func NewReportService(
	tx repository.Transactor,
	reportRepo repository.ReportRepo,
	accountRepo repository.AccountRepo,
	employeeRepo repository.EmployeeRepo,
	sweeper LockSweeper,
	auditSvc AuditService,
	clk clock.Clock,
) ReportService {
	return &reportServiceImpl{
		tx:           tx,
		reportRepo:   reportRepo,
		accountRepo:  accountRepo,
		employeeRepo: employeeRepo,
		sweeper:      sweeper,
		auditSvc:     auditSvc,
		clock:        clk,
	}
}

// Submit 当天首次提交新建，未锁定时覆盖，锁定后拒绝
func (s *reportServiceImpl) Submit(ctx context.Context, userID, employeeID uint64, req *dto.ReportSubmitDTO, ip string) (*dto.ReportSubmitResultDTO, error) {
	if req.FollowerCount == nil {
		return nil, ErrParamInvalid
	}
	count := *req.FollowerCount
	if count < 0 {
		return nil, ErrNegativeCount
	}

	today := s.clock.Today()
	var (
		status   string
		username string
	)

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		acc, err := s.accountRepo.WithTx(tx).GetById(ctx, req.AccountID)
		if err != nil {
			return err
		}
		if acc == nil || acc.AssignedEmployeeID == nil || *acc.AssignedEmployeeID != employeeID {
			return ErrAccountNotAssigned
		}
		username = acc.Username

		if _, err = s.sweeper.SweepTx(ctx, tx, today); err != nil {
			return err
		}

		reportRepo := s.reportRepo.WithTx(tx)
		existing, err := reportRepo.GetByKey(ctx, employeeID, acc.ID, today)
		if err != nil {
			return err
		}

		if existing != nil {
			if existing.Locked {
				return ErrReportLocked
			}
			n, err := reportRepo.UpdateCount(ctx, existing.ID, count)
			if err != nil {
				return err
			}
			if n == 0 {
				if err = checkStillOpen(ctx, reportRepo, employeeID, acc.ID, today); err != nil {
					return err
				}
			}
			status = ReportStatusUpdated
			return nil
		}

		n, err := reportRepo.Upsert(ctx, &model.DailyReport{
			EmployeeID:    employeeID,
			AccountID:     acc.ID,
			Date:          today,
			FollowerCount: count,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			if err = checkStillOpen(ctx, reportRepo, employeeID, acc.ID, today); err != nil {
				return err
			}
		}
		status = ReportStatusCreated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == ReportStatusUpdated {
		s.auditSvc.Record(ctx, userID, model.ActionUpdateReport, fmt.Sprintf("Updated report for %s: %d", username, count), ip)
	} else {
		s.auditSvc.Record(ctx, userID, model.ActionSubmitReport, fmt.Sprintf("Report for %s: %d", username, count), ip)
	}

	return &dto.ReportSubmitResultDTO{Status: status}, nil
}

// checkStillOpen 写入影响 0 行时回读确认：行在查询之后被并发锁定则报冲突，
// 未锁定说明值与时间戳都没变化（mysql 对无变化的行同样返回 0）
func checkStillOpen(ctx context.Context, reportRepo repository.ReportRepo, employeeID, accountID uint64, date string) error {
	current, err := reportRepo.GetByKey(ctx, employeeID, accountID, date)
	if err != nil {
		return err
	}
	if current == nil || current.Locked {
		return ErrReportLocked
	}
	return nil
}

func (s *reportServiceImpl) ListToday(ctx context.Context, employeeID uint64) ([]*dto.TodayReportDTO, error) {
	today := s.clock.Today()
	if _, err := s.sweeper.Sweep(ctx, today); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListByEmployeeDate(ctx, employeeID, today)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TodayReportDTO, 0, len(reports))
	for _, r := range reports {
		res = append(res, &dto.TodayReportDTO{
			AccountID: r.AccountID,
			Count:     r.FollowerCount,
			Locked:    r.Locked,
		})
	}
	return res, nil
}

func (s *reportServiceImpl) ListAll(ctx context.Context, start, end string) ([]*dto.ReportRowDTO, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if _, err := s.sweeper.Sweep(ctx, s.clock.Today()); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	names, err := newNameResolver(ctx, s.employeeRepo, s.accountRepo, reports)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ReportRowDTO, 0, len(reports))
	for _, r := range reports {
		res = append(res, &dto.ReportRowDTO{
			ID:              r.ID,
			Date:            r.Date,
			EmployeeName:    names.employee(r.EmployeeID),
			AccountUsername: names.account(r.AccountID),
			Count:           r.FollowerCount,
			Locked:          r.Locked,
		})
	}
	return res, nil
}

// nameResolver 日报行上的员工名与账号名，找不到的一律显示为已删除
type nameResolver struct {
	employees map[uint64]string
	accounts  map[uint64]string
}

func newNameResolver(ctx context.Context, employeeRepo repository.EmployeeRepo, accountRepo repository.AccountRepo, reports []*model.DailyReport) (*nameResolver, error) {
	empIDs := make([]uint64, 0, len(reports))
	accIDs := make([]uint64, 0, len(reports))
	seenEmp := make(map[uint64]struct{})
	seenAcc := make(map[uint64]struct{})
	for _, r := range reports {
		if _, ok := seenEmp[r.EmployeeID]; !ok {
			seenEmp[r.EmployeeID] = struct{}{}
			empIDs = append(empIDs, r.EmployeeID)
		}
		if _, ok := seenAcc[r.AccountID]; !ok {
			seenAcc[r.AccountID] = struct{}{}
			accIDs = append(accIDs, r.AccountID)
		}
	}

	emps, err := employeeRepo.GetByIds(ctx, empIDs)
	if err != nil {
		return nil, err
	}
	accs, err := accountRepo.GetByIds(ctx, accIDs)
	if err != nil {
		return nil, err
	}

	n := &nameResolver{
		employees: make(map[uint64]string, len(emps)),
		accounts:  make(map[uint64]string, len(accs)),
	}
	for _, e := range emps {
		n.employees[e.ID] = e.FullName
	}
	for _, a := range accs {
		n.accounts[a.ID] = a.Username
	}
	return n, nil
}

func (n *nameResolver) employee(id uint64) string {
	if name, ok := n.employees[id]; ok {
		return name
	}
	return consts.UnknownDisplayName
}

func (n *nameResolver) account(id uint64) string {
	if name, ok := n.accounts[id]; ok {
		return name
	}
	return consts.UnknownDisplayName
}

// validateRange 日期可为空；两端都给出时要求 start <= end
func validateRange(start, end string) error {
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := clock.ParseDate(d); err != nil {
			return ErrDateFormatInvalid
		}
	}
	if start != "" && end != "" && start > end {
		return ErrDateRangeInvalid
	}
	return nil
}
