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

func TestLoginLogoutFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createEmployee(t, "alice", "Alice", 0)

	_, err := env.auth.Login(ctx, &dto.LoginDTO{Username: "alice", Password: "wrong"}, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.auth.Login(ctx, &dto.LoginDTO{Username: "nobody", Password: "x"}, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := env.auth.Login(ctx, &dto.LoginDTO{Username: "alice", Password: "password"}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, token.Role)

	claims, err := env.auth.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{consts.RoleEmployee}, claims.Roles)

	require.NoError(t, env.auth.Logout(ctx, token.AccessToken))
	_, err = env.auth.Authenticate(ctx, token.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	env.audit.Wait()
	assert.Equal(t, []string{model.ActionLogin}, env.mirror.actions())
}

func TestEnsureAdminRunsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.EnsureAdmin(ctx, "admin", "")
	assert.ErrorIs(t, err, ErrAdminBootstrapEmpty)

	created, err := env.auth.EnsureAdmin(ctx, "admin", "admin-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.auth.EnsureAdmin(ctx, "admin", "admin-pass")
	require.NoError(t, err)
	assert.False(t, created)

	token, err := env.auth.Login(ctx, &dto.LoginDTO{Username: "admin", Password: "admin-pass"}, "")
	require.NoError(t, err)
	claims, err := env.auth.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(consts.RoleAdmin))
}
