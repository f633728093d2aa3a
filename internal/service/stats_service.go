package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/pkg/stats"
	"Followdesk/internal/repository"
	"context"
)

const noBestEmployee = "-"

// StatsService 每次请求现算，不做跨请求缓存
type StatsService interface {
	DailySummary(ctx context.Context) (*dto.DailySummaryDTO, error)
	RangeStats(ctx context.Context, start, end string) (*dto.DownloadStatsDTO, error)
	AdminChart(ctx context.Context) (*dto.ChartDTO, error)
	EmployeeChart(ctx context.Context, employeeID uint64) (*dto.ChartDTO, error)
}

type statsServiceImpl struct {
	reportRepo   repository.ReportRepo
	downloadRepo repository.DownloadRepo
	employeeRepo repository.EmployeeRepo
	accountRepo  repository.AccountRepo
	userRepo     repository.UserRepo
	sweeper      LockSweeper
	clock        clock.Clock
}

func NewStatsService(
	reportRepo repository.ReportRepo,
	downloadRepo repository.DownloadRepo,
	employeeRepo repository.EmployeeRepo,
	accountRepo repository.AccountRepo,
	userRepo repository.UserRepo,
	sweeper LockSweeper,
	clk clock.Clock,
) StatsService {
	return &statsServiceImpl{
		reportRepo:   reportRepo,
		downloadRepo: downloadRepo,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		sweeper:      sweeper,
		clock:        clk,
	}
}

func (s *statsServiceImpl) DailySummary(ctx context.Context) (*dto.DailySummaryDTO, error) {
	today := s.clock.Today()
	if _, err := s.sweeper.Sweep(ctx, today); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	names, err := newNameResolver(ctx, s.employeeRepo, s.accountRepo, reports)
	if err != nil {
		return nil, err
	}

	total := 0
	rows := make([]*dto.SummaryReportDTO, 0, len(reports))
	for _, r := range reports {
		total += r.FollowerCount
		rows = append(rows, &dto.SummaryReportDTO{
			EmployeeName: names.employee(r.EmployeeID),
			Account:      names.account(r.AccountID),
			Count:        r.FollowerCount,
			Locked:       r.Locked,
		})
	}

	windowStart, err := clock.AddDays(today, -(consts.DownloadWindowDays - 1))
	if err != nil {
		return nil, err
	}
	recent, err := s.downloadRepo.ListStartingFrom(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	return &dto.DailySummaryDTO{
		Date:            today,
		TotalFollowers:  total,
		Reports:         rows,
		DownloadsByDate: toDatePoints(stats.Series(toStatRecords(recent), true)),
	}, nil
}

// RangeStats 区间合计采用严格包含，start/end 缺任意一个时区间合计为 0
func (s *statsServiceImpl) RangeStats(ctx context.Context, start, end string) (*dto.DownloadStatsDTO, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if _, err := s.sweeper.Sweep(ctx, s.clock.Today()); err != nil {
		return nil, err
	}

	emps, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.downloadRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	totalQuota, err := s.employeeRepo.SumQuota(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(emps))
	empIDs := make([]uint64, 0, len(emps))
	byID := make(map[uint64]*model.Employee, len(emps))
	for _, e := range emps {
		userIDs = append(userIDs, e.UserID)
		empIDs = append(empIDs, e.ID)
		byID[e.ID] = e
	}
	users, err := s.userRepo.GetUserByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usernames := make(map[uint64]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	summary := stats.Summarize(empIDs, toStatRecords(records), start, end)

	res := &dto.DownloadStatsDTO{
		TotalDownloads: summary.GrandTotal,
		TotalAccounts:  totalQuota,
		RangeTotal:     summary.GrandRangeTotal,
		BestEmployee:   noBestEmployee,
		Employees:      make([]*dto.EmployeeDownloadDTO, 0, len(summary.Employees)),
	}
	if summary.Best != nil {
		res.BestEmployee = byID[summary.Best.EmployeeID].FullName
	}
	for _, et := range summary.Employees {
		e := byID[et.EmployeeID]
		res.Employees = append(res.Employees, &dto.EmployeeDownloadDTO{
			ID:             e.ID,
			FullName:       e.FullName,
			UserName:       usernameOr(usernames, e.UserID),
			TotalDownloads: et.Total,
			RangeDownloads: et.RangeTotal,
		})
	}
	return res, nil
}

func (s *statsServiceImpl) AdminChart(ctx context.Context) (*dto.ChartDTO, error) {
	if _, err := s.sweeper.Sweep(ctx, s.clock.Today()); err != nil {
		return nil, err
	}
	records, err := s.downloadRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toChart(stats.Series(toStatRecords(records), false)), nil
}

func (s *statsServiceImpl) EmployeeChart(ctx context.Context, employeeID uint64) (*dto.ChartDTO, error) {
	if _, err := s.sweeper.Sweep(ctx, s.clock.Today()); err != nil {
		return nil, err
	}
	records, err := s.downloadRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toChart(stats.Series(toStatRecords(records), false)), nil
}

func toStatRecords(records []*model.DownloadRecord) []stats.Record {
	res := make([]stats.Record, 0, len(records))
	for _, r := range records {
		res = append(res, stats.Record{
			EmployeeID: r.EmployeeID,
			StartDate:  r.StartDate,
			EndDate:    r.EndDate,
			Count:      r.Count,
		})
	}
	return res
}

func toDatePoints(points []stats.Point) []*dto.DatePointDTO {
	res := make([]*dto.DatePointDTO, 0, len(points))
	for _, p := range points {
		res = append(res, &dto.DatePointDTO{Date: p.Date, Count: p.Count})
	}
	return res
}

func toChart(points []stats.Point) *dto.ChartDTO {
	chart := &dto.ChartDTO{
		Labels: make([]string, 0, len(points)),
		Data:   make([]int, 0, len(points)),
	}
	for _, p := range points {
		chart.Labels = append(chart.Labels, p.Date)
		chart.Data = append(chart.Data, p.Count)
	}
	return chart
}
