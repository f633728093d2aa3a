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

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createEmployee(t, "alice", "Alice", 0)

	_, err := env.employees.CreateUser(ctx, &dto.CreateUserDTO{Username: "alice", Password: "password", Role: model.RoleEmployee})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateAdminHasNoEmployeeProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID, err := env.employees.CreateUser(ctx, &dto.CreateUserDTO{Username: "boss", Password: "password", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = env.employees.ResolveByUser(ctx, userID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListAndDetailEmployees(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createEmployee(t, "alice", "Alice", 4)
	env.createEmployee(t, "bob", "", 0)
	env.createAccounts(t, &alice.ID, "a1", "a2")

	list, err := env.employees.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice", list[0].FullName)
	assert.Equal(t, "alice", list[0].UserName)
	assert.Equal(t, 4, list[0].AccountQuota)
	assert.Equal(t, int64(2), list[0].AssignedCount)
	assert.Equal(t, "bob", list[1].FullName)

	detail, err := env.employees.GetEmployeeDetail(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, detail.AssignedAccounts, 2)
	assert.Equal(t, "a1", detail.AssignedAccounts[0].Username)
	assert.Equal(t, "pw", detail.AssignedAccounts[0].Password)

	_, err = env.employees.GetEmployeeDetail(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEmployeesWithOrphanedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createEmployee(t, "alice", "Alice", 0)
	require.NoError(t, env.userRepo.DeleteUser(ctx, alice.UserID))

	list, err := env.employees.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, consts.UnknownDisplayName, list[0].UserName)
}

func TestDeleteEmployeeReleasesAccountsAndKeepsReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createEmployee(t, "alice", "Alice", 5)
	acc := env.createAccounts(t, &alice.ID, "a1", "a2")[0]
	_, err := env.reports.Submit(ctx, alice.UserID, alice.ID, &dto.ReportSubmitDTO{AccountID: acc.ID, FollowerCount: intPtr(3)}, "")
	require.NoError(t, err)

	require.NoError(t, env.employees.DeleteEmployee(ctx, alice.ID))

	ids, err := env.accountRepo.ListUnassignedIds(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	user, err := env.userRepo.GetUserById(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Nil(t, user)

	rows, err := env.reports.ListAll(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, consts.UnknownDisplayName, rows[0].EmployeeName)
	assert.Equal(t, "a1", rows[0].AccountUsername)

	assert.ErrorIs(t, env.employees.DeleteEmployee(ctx, alice.ID), ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createEmployee(t, "alice", "Alice", 0)

	require.NoError(t, env.employees.ResetPassword(ctx, alice.ID, "new-secret"))

	_, err := env.auth.Login(ctx, &dto.LoginDTO{Username: "alice", Password: "password"}, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.auth.Login(ctx, &dto.LoginDTO{Username: "alice", Password: "new-secret"}, "")
	assert.NoError(t, err)

	assert.ErrorIs(t, env.employees.ResetPassword(ctx, 999, "whatever"), ErrNotFound)
}
