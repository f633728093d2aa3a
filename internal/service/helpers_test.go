package service

import (
	"Followdesk/internal/api/config"
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/database"
	"Followdesk/internal/pkg/security"
	"Followdesk/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testToday = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type recordingMirror struct {
	mu      sync.Mutex
	entries []*model.AuditLog
	fail    bool
}

func (m *recordingMirror) Name() string { return "recording" }

func (m *recordingMirror) Mirror(_ context.Context, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	if m.fail {
		return errors.New("mirror down")
	}
	return nil
}

func (m *recordingMirror) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		res = append(res, e.Action)
	}
	return res
}

type testEnv struct {
	db     *gorm.DB
	clock  clock.Clock
	mirror *recordingMirror

	userRepo     repository.UserRepo
	employeeRepo repository.EmployeeRepo
	accountRepo  repository.AccountRepo
	reportRepo   repository.ReportRepo
	downloadRepo repository.DownloadRepo

	sweeper     LockSweeper
	audit       AuditService
	reports     ReportService
	quota       QuotaService
	assignments AssignmentService
	employees   EmployeeService
	accounts    AccountService
	stats       StatsService
	downloads   DownloadService
	auth        AuthService
	notes       NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(&config.DBConfig{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	env := &testEnv{
		db:           db,
		clock:        clock.Fixed(testToday),
		mirror:       &recordingMirror{},
		userRepo:     repository.NewUserRepo(db),
		employeeRepo: repository.NewEmployeeRepo(db),
		accountRepo:  repository.NewAccountRepo(db),
		reportRepo:   repository.NewReportRepo(db),
		downloadRepo: repository.NewDownloadRepo(db),
	}
	tx := repository.NewTransactor(db)

	env.sweeper = NewLockSweeper(env.reportRepo)
	env.audit = NewAuditService(repository.NewAuditLogRepo(db), env.userRepo, env.clock, env.mirror)
	env.reports = NewReportService(tx, env.reportRepo, env.accountRepo, env.employeeRepo, env.sweeper, env.audit, env.clock)
	env.quota = NewQuotaService(tx, env.employeeRepo, env.accountRepo, env.sweeper, env.audit, env.clock)
	env.assignments = NewAssignmentService(tx, env.employeeRepo, env.accountRepo, env.sweeper, env.clock)
	env.employees = NewEmployeeService(tx, env.userRepo, env.employeeRepo, env.accountRepo)
	env.accounts = NewAccountService(tx, env.accountRepo, env.audit)
	env.stats = NewStatsService(env.reportRepo, env.downloadRepo, env.employeeRepo, env.accountRepo, env.userRepo, env.sweeper, env.clock)
	env.downloads = NewDownloadService(env.downloadRepo, env.employeeRepo, env.sweeper, env.clock)
	env.auth = NewAuthService(env.userRepo, security.NewMemoryBlacklist(), env.audit)
	env.notes = NewNoteService(repository.NewNoteRepo(db))
	return env
}

// createEmployee 建一个员工账号并设置配额，返回员工档案
func (e *testEnv) createEmployee(t *testing.T, username, fullName string, quota int) *model.Employee {
	t.Helper()
	ctx := context.Background()

	userID, err := e.employees.CreateUser(ctx, &dto.CreateUserDTO{
		Username: username,
		Password: "password",
		FullName: fullName,
		Role:     model.RoleEmployee,
	})
	require.NoError(t, err)

	emp, err := e.employees.ResolveByUser(ctx, userID)
	require.NoError(t, err)

	if quota > 0 {
		_, err = e.quota.SetQuota(ctx, emp.ID, quota)
		require.NoError(t, err)
		emp.AccountQuota = quota
	}
	return emp
}

// createAccounts 直接落库，owner 为 nil 表示未分配
func (e *testEnv) createAccounts(t *testing.T, owner *uint64, usernames ...string) []*model.Account {
	t.Helper()
	rows := make([]*model.Account, 0, len(usernames))
	for _, name := range usernames {
		rows = append(rows, &model.Account{Username: name, Password: "pw", AssignedEmployeeID: owner})
	}
	require.NoError(t, e.accountRepo.CreateBatch(context.Background(), rows))
	return rows
}

func (e *testEnv) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

func intPtr(i int) *int {
	return &i
}
