package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) addDownload(t *testing.T, employeeID uint64, start, end string, count int) {
	t.Helper()
	_, err := e.downloads.AddRecord(context.Background(), &dto.DownloadRecordCreateDTO{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Count:      intPtr(count),
	})
	require.NoError(t, err)
}

func TestRangeStatsContainmentAndBestEmployee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// GIVEN A=10, B=25, C=25 all-time
	a := env.createEmployee(t, "a", "Anna", 3)
	b := env.createEmployee(t, "b", "Berk", 4)
	c := env.createEmployee(t, "c", "Cem", 5)
	env.addDownload(t, a.ID, "2024-03-01", "2024-03-07", 10)
	env.addDownload(t, b.ID, "2024-03-01", "2024-03-07", 15)
	env.addDownload(t, b.ID, "2024-03-05", "2024-03-12", 10)
	env.addDownload(t, c.ID, "2024-02-20", "2024-02-27", 25)

	// WHEN asking for 03-01..03-10
	res, err := env.stats.RangeStats(ctx, "2024-03-01", "2024-03-10")
	require.NoError(t, err)

	// THEN the straddling record is excluded from range totals
	assert.Equal(t, 60, res.TotalDownloads)
	assert.Equal(t, 25, res.RangeTotal)
	assert.Equal(t, int64(12), res.TotalAccounts)
	assert.Equal(t, "Berk", res.BestEmployee)

	require.Len(t, res.Employees, 3)
	assert.Equal(t, "Berk", res.Employees[0].FullName)
	assert.Equal(t, 15, res.Employees[0].RangeDownloads)
	assert.Equal(t, "Cem", res.Employees[1].FullName)
	assert.Equal(t, 0, res.Employees[1].RangeDownloads)
	assert.Equal(t, "Anna", res.Employees[2].FullName)
	assert.Equal(t, "a", res.Employees[2].UserName)
}

func TestRangeStatsWithoutWindowAndEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.stats.RangeStats(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "-", res.BestEmployee)
	assert.Empty(t, res.Employees)

	a := env.createEmployee(t, "a", "Anna", 0)
	env.addDownload(t, a.ID, "2024-03-01", "2024-03-02", 4)

	res, err = env.stats.RangeStats(ctx, "2024-03-01", "")
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalDownloads)
	assert.Equal(t, 0, res.RangeTotal)

	_, err = env.stats.RangeStats(ctx, "2024-03-05", "2024-03-01")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDailySummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	emp := env.createEmployee(t, "alice", "Alice", 5)
	accs := env.createAccounts(t, &emp.ID, "insta_a", "insta_b")
	_, err := env.reports.Submit(ctx, emp.UserID, emp.ID, &dto.ReportSubmitDTO{AccountID: accs[0].ID, FollowerCount: intPtr(100)}, "")
	require.NoError(t, err)
	_, err = env.reports.Submit(ctx, emp.UserID, emp.ID, &dto.ReportSubmitDTO{AccountID: accs[1].ID, FollowerCount: intPtr(50)}, "")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&model.DailyReport{EmployeeID: emp.ID, AccountID: accs[0].ID, Date: "2024-03-14", FollowerCount: 999}).Error)

	// today = 2024-03-15, the window starts at 2024-03-09
	env.addDownload(t, emp.ID, "2024-03-08", "2024-03-08", 1)
	env.addDownload(t, emp.ID, "2024-03-09", "2024-03-10", 2)
	env.addDownload(t, emp.ID, "2024-03-14", "2024-03-14", 3)
	env.addDownload(t, emp.ID, "2024-03-14", "2024-03-15", 4)

	res, err := env.stats.DailySummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", res.Date)
	assert.Equal(t, 150, res.TotalFollowers)
	require.Len(t, res.Reports, 2)
	assert.Equal(t, "Alice", res.Reports[0].EmployeeName)
	assert.Equal(t, "insta_a", res.Reports[0].Account)

	assert.Equal(t, []*dto.DatePointDTO{
		{Date: "2024-03-14", Count: 7},
		{Date: "2024-03-09", Count: 2},
	}, res.DownloadsByDate)

	past, err := env.reportRepo.GetByKey(ctx, emp.ID, accs[0].ID, "2024-03-14")
	require.NoError(t, err)
	assert.True(t, past.Locked)
}

func TestDailySummaryShowsDeletedAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	emp := env.createEmployee(t, "alice", "Alice", 5)
	acc := env.createAccounts(t, &emp.ID, "insta_a")[0]
	_, err := env.reports.Submit(ctx, emp.UserID, emp.ID, &dto.ReportSubmitDTO{AccountID: acc.ID, FollowerCount: intPtr(5)}, "")
	require.NoError(t, err)
	require.NoError(t, env.accounts.DeleteAccount(ctx, acc.ID))

	res, err := env.stats.DailySummary(ctx)
	require.NoError(t, err)
	require.Len(t, res.Reports, 1)
	assert.Equal(t, consts.UnknownDisplayName, res.Reports[0].Account)
	assert.Equal(t, 5, res.TotalFollowers)
}

func TestChartsAreAscending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.createEmployee(t, "a", "Anna", 0)
	b := env.createEmployee(t, "b", "Berk", 0)
	env.addDownload(t, a.ID, "2024-03-03", "2024-03-03", 3)
	env.addDownload(t, b.ID, "2024-03-01", "2024-03-02", 1)
	env.addDownload(t, a.ID, "2024-03-01", "2024-03-01", 2)

	chart, err := env.stats.AdminChart(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-03"}, chart.Labels)
	assert.Equal(t, []int{3, 3}, chart.Data)

	mine, err := env.stats.EmployeeChart(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-03"}, mine.Labels)
	assert.Equal(t, []int{2, 3}, mine.Data)

	empty, err := env.stats.EmployeeChart(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty.Labels)
}

func TestDownloadsAddAndRecent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.createEmployee(t, "alice", "Alice", 0)

	for i := 1; i <= 6; i++ {
		env.addDownload(t, emp.ID, "2024-03-01", "2024-03-02", i)
	}

	res, err := env.downloads.AddRecord(ctx, &dto.DownloadRecordCreateDTO{
		EmployeeID: emp.ID, StartDate: "2024-03-03", EndDate: "2024-03-03", Count: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), res.NewTotal)

	mine, err := env.downloads.MyDownloads(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(21), mine.TotalDownloads)
	assert.Len(t, mine.RecentActivity, 5)

	_, err = env.downloads.AddRecord(ctx, &dto.DownloadRecordCreateDTO{
		EmployeeID: emp.ID, StartDate: "2024-03-05", EndDate: "2024-03-01", Count: intPtr(1),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.downloads.AddRecord(ctx, &dto.DownloadRecordCreateDTO{
		EmployeeID: emp.ID, StartDate: "2024-03-01", EndDate: "2024-03-01", Count: intPtr(-3),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.downloads.AddRecord(ctx, &dto.DownloadRecordCreateDTO{
		EmployeeID: 999, StartDate: "2024-03-01", EndDate: "2024-03-01", Count: intPtr(1),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummaryReadsLockPastReports(t *testing.T) {
	reads := map[string]func(env *testEnv, emp *model.Employee) error{
		"range stats": func(env *testEnv, _ *model.Employee) error {
			_, err := env.stats.RangeStats(context.Background(), "", "")
			return err
		},
		"admin chart": func(env *testEnv, _ *model.Employee) error {
			_, err := env.stats.AdminChart(context.Background())
			return err
		},
		"employee chart": func(env *testEnv, emp *model.Employee) error {
			_, err := env.stats.EmployeeChart(context.Background(), emp.ID)
			return err
		},
		"my downloads": func(env *testEnv, emp *model.Employee) error {
			_, err := env.downloads.MyDownloads(context.Background(), emp.ID)
			return err
		},
	}

	for name, read := range reads {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			emp := env.createEmployee(t, "alice", "Alice", 1)
			acc := env.createAccounts(t, &emp.ID, "insta_a")[0]
			past := &model.DailyReport{EmployeeID: emp.ID, AccountID: acc.ID, Date: "2024-03-14", FollowerCount: 5}
			require.NoError(t, env.db.Create(past).Error)

			require.NoError(t, read(env, emp))

			var stored model.DailyReport
			require.NoError(t, env.db.First(&stored, past.ID).Error)
			assert.True(t, stored.Locked)
		})
	}
}
