package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/repository"
	"context"
)

type DownloadService interface {
	// AddRecord 追加一条下载记录，返回该员工新的累计总数
	AddRecord(ctx context.Context, req *dto.DownloadRecordCreateDTO) (*dto.DownloadAddResultDTO, error)
	MyDownloads(ctx context.Context, employeeID uint64) (*dto.MyDownloadsDTO, error)
}

type downloadServiceImpl struct {
	downloadRepo repository.DownloadRepo
	employeeRepo repository.EmployeeRepo
	sweeper      LockSweeper
	clock        clock.Clock
}

func NewDownloadService(downloadRepo repository.DownloadRepo, employeeRepo repository.EmployeeRepo, sweeper LockSweeper, clk clock.Clock) DownloadService {
	return &downloadServiceImpl{
		downloadRepo: downloadRepo,
		employeeRepo: employeeRepo,
		sweeper:      sweeper,
		clock:        clk,
	}
}

func (s *downloadServiceImpl) AddRecord(ctx context.Context, req *dto.DownloadRecordCreateDTO) (*dto.DownloadAddResultDTO, error) {
	if req.Count == nil {
		return nil, ErrParamInvalid
	}
	if *req.Count < 0 {
		return nil, ErrNegativeCount
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, ErrDateFormatInvalid
	}
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetById(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	rec := &model.DownloadRecord{
		EmployeeID: emp.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Count:      *req.Count,
	}
	if err = s.downloadRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	total, err := s.downloadRepo.SumByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadAddResultDTO{Status: "success", NewTotal: total}, nil
}

// MyDownloads 员工工作台的一部分，与其他汇总一样先锁定往日日报
func (s *downloadServiceImpl) MyDownloads(ctx context.Context, employeeID uint64) (*dto.MyDownloadsDTO, error) {
	if _, err := s.sweeper.Sweep(ctx, s.clock.Today()); err != nil {
		return nil, err
	}
	total, err := s.downloadRepo.SumByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	recent, err := s.downloadRepo.ListRecentByEmployee(ctx, employeeID, consts.RecentDownloadsLimit)
	if err != nil {
		return nil, err
	}

	res := &dto.MyDownloadsDTO{
		TotalDownloads: total,
		RecentActivity: make([]*dto.RecentDownloadDTO, 0, len(recent)),
	}
	for _, r := range recent {
		res.RecentActivity = append(res.RecentActivity, &dto.RecentDownloadDTO{
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Count:     r.Count,
		})
	}
	return res, nil
}
