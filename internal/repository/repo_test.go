package repository

import (
	"Followdesk/internal/api/config"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/database"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DBConfig{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestReportUpsertKeepsOneRowPerKey(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepo(newTestDB(t))

	// GIVEN two writes for the same (employee, account, date)
	mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 7, Date: "2024-03-15", FollowerCount: 100})
	mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 7, Date: "2024-03-15", FollowerCount: 150})

	// THEN exactly one row exists with the last count
	rows, err := repo.ListByDate(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 150, rows[0].FollowerCount)
}

func TestReportLockBeforeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepo(newTestDB(t))

	mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 1, Date: "2024-03-13", FollowerCount: 1})
	mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 1, Date: "2024-03-14", FollowerCount: 2})
	mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 1, Date: "2024-03-15", FollowerCount: 3})

	n, err := repo.LockBefore(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.LockBefore(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	today, err := repo.GetByKey(ctx, 1, 1, "2024-03-15")
	require.NoError(t, err)
	assert.False(t, today.Locked)

	past, err := repo.GetByKey(ctx, 1, 1, "2024-03-14")
	require.NoError(t, err)
	assert.True(t, past.Locked)

	affected, err := repo.UpdateCount(ctx, past.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestReportListByRangeOrdersByDateDesc(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepo(newTestDB(t))

	for _, d := range []string{"2024-03-10", "2024-03-12", "2024-03-11", "2024-03-20"} {
		mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 1, Date: d})
	}

	rows, err := repo.ListByRange(ctx, "2024-03-10", "2024-03-12")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-12", rows[0].Date)
	assert.Equal(t, "2024-03-10", rows[2].Date)

	all, err := repo.ListByRange(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAccountAllocationHelpers(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepo(newTestDB(t))

	owner := uint64(9)
	accounts := []*model.Account{
		{Username: "a1"},
		{Username: "a2", AssignedEmployeeID: &owner},
		{Username: "a3"},
		{Username: "a4"},
	}
	require.NoError(t, repo.CreateBatch(ctx, accounts))

	ids, err := repo.ListUnassignedIds(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{accounts[0].ID, accounts[2].ID}, ids)

	n, err := repo.AssignIds(ctx, ids, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	counts, err := repo.CountGroupByEmployee(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[3])
	assert.Equal(t, int64(1), counts[9])

	taken, err := repo.ExistingUsernames(ctx, []string{"a1", "zz"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, taken)

	taken, err = repo.ExistingUsernames(ctx, []string{"a1"}, accounts[0].ID)
	require.NoError(t, err)
	assert.Empty(t, taken)

	released, err := repo.UnassignByEmployee(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
}

func TestEmployeeSumQuota(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepo(newTestDB(t))

	total, err := repo.SumQuota(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	require.NoError(t, repo.Create(ctx, &model.Employee{UserID: 1, FullName: "A", AccountQuota: 5}))
	require.NoError(t, repo.Create(ctx, &model.Employee{UserID: 2, FullName: "B", AccountQuota: 7}))

	total, err = repo.SumQuota(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
}

func TestNoteSaveOverwritesSingleRow(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepo(newTestDB(t))

	note, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, note)

	_, err = repo.Save(ctx, "first", "admin")
	require.NoError(t, err)
	_, err = repo.Save(ctx, "second", "boss")
	require.NoError(t, err)

	note, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", note.Content)
	assert.Equal(t, "boss", note.Author)
}

func mustUpsert(t *testing.T, repo ReportRepo, report *model.DailyReport) {
	t.Helper()
	_, err := repo.Upsert(context.Background(), report)
	require.NoError(t, err)
}

func TestUpsertSkipsLockedRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepo(db)
	ctx := context.Background()

	mustUpsert(t, repo, &model.DailyReport{EmployeeID: 1, AccountID: 7, Date: "2024-03-15", FollowerCount: 10})
	require.NoError(t, db.Model(&model.DailyReport{}).Where("1 = 1").Update("locked", true).Error)

	n, err := repo.Upsert(ctx, &model.DailyReport{EmployeeID: 1, AccountID: 7, Date: "2024-03-15", FollowerCount: 99})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.UpdateCount(ctx, 1, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	stored, err := repo.GetByKey(ctx, 1, 7, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.FollowerCount)
	assert.True(t, stored.Locked)
}
