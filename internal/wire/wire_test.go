package wire

import (
	"Followdesk/internal/api/config"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/database"
	"bytes"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func (c *apiClient) do(method, path, token string, body interface{}) envelope {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	require.Equal(c.t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (c *apiClient) login(username, password string) string {
	c.t.Helper()
	res := c.do(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(c.t, 200, res.Code, res.Message)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(c.t, json.Unmarshal(res.Data, &token))
	return token.AccessToken
}

func newTestApp(t *testing.T) (*ApplicationContainer, *apiClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(&config.DBConfig{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	app := BuildApplication(db, &config.Config{}, clock.Fixed(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))
	created, err := app.AuthSvc.EnsureAdmin(context.Background(), "admin", "admin-pass")
	require.NoError(t, err)
	require.True(t, created)

	return app, &apiClient{t: t, router: app.Router}
}

func TestEmployeeLifecycleOverHTTP(t *testing.T) {
	app, api := newTestApp(t)
	defer app.AuditSvc.Wait()

	adminToken := api.login("admin", "admin-pass")

	res := api.do(http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"username": "alice", "password": "alice-pass", "full_name": "Alice", "role": "employee",
	})
	require.Equal(t, 200, res.Code, res.Message)

	res = api.do(http.MethodGet, "/api/admin/employees", adminToken, nil)
	require.Equal(t, 200, res.Code)
	var employees []struct {
		ID       uint64 `json:"id"`
		UserName string `json:"user_name"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &employees))
	require.Len(t, employees, 1)
	assert.Equal(t, "alice", employees[0].UserName)
	empPath := "/api/admin/employees/" + strconv.FormatUint(employees[0].ID, 10)

	res = api.do(http.MethodPut, empPath+"/quota", adminToken, map[string]int{"amount": 2})
	require.Equal(t, 200, res.Code, res.Message)

	// 超出上限的增量在绑定阶段就被拒绝
	res = api.do(http.MethodPost, empPath+"/quota/add", adminToken, map[string]int{"amount": math.MaxInt32})
	assert.Equal(t, 400, res.Code)

	aliceToken := api.login("alice", "alice-pass")

	// 超出配额整批拒绝
	res = api.do(http.MethodPost, "/api/employee/accounts/bulk", aliceToken, map[string]interface{}{
		"accounts": []map[string]string{{"username": "ig1"}, {"username": "ig2"}, {"username": "ig3"}},
	})
	assert.Equal(t, 422, res.Code)
	var quota struct {
		Remaining int `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &quota))
	assert.Equal(t, 2, quota.Remaining)

	res = api.do(http.MethodPost, "/api/employee/accounts/bulk", aliceToken, map[string]interface{}{
		"accounts": []map[string]string{{"username": "ig1", "password": "p1"}, {"username": "ig2", "password": "p2"}},
	})
	require.Equal(t, 200, res.Code, res.Message)

	res = api.do(http.MethodGet, "/api/employee/accounts", aliceToken, nil)
	var accounts []struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &accounts))
	require.Len(t, accounts, 2)

	submit := map[string]interface{}{"instagram_account_id": accounts[0].ID, "follower_count": 120}
	res = api.do(http.MethodPost, "/api/employee/reports", aliceToken, submit)
	require.Equal(t, 200, res.Code, res.Message)
	assert.JSONEq(t, `{"status":"created"}`, string(res.Data))

	submit["follower_count"] = 130
	res = api.do(http.MethodPost, "/api/employee/reports", aliceToken, submit)
	require.Equal(t, 200, res.Code, res.Message)
	assert.JSONEq(t, `{"status":"updated"}`, string(res.Data))

	submit["follower_count"] = -1
	res = api.do(http.MethodPost, "/api/employee/reports", aliceToken, submit)
	assert.Equal(t, 400, res.Code)

	res = api.do(http.MethodGet, "/api/admin/reports/daily-summary", adminToken, nil)
	require.Equal(t, 200, res.Code)
	var summary struct {
		Date           string `json:"date"`
		TotalFollowers int    `json:"total_followers"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &summary))
	assert.Equal(t, "2024-03-15", summary.Date)
	assert.Equal(t, 130, summary.TotalFollowers)

	res = api.do(http.MethodGet, "/api/admin/reports?start_date=2024-03-20&end_date=2024-03-01", adminToken, nil)
	assert.Equal(t, 400, res.Code)

	res = api.do(http.MethodGet, "/api/admin/audit-logs?limit=10", adminToken, nil)
	require.Equal(t, 200, res.Code)
	var logs []struct {
		Action string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &logs))
	// LOGIN x2, CREATE_ACCOUNTS, SUBMIT_REPORT, UPDATE_REPORT
	assert.Len(t, logs, 5)
}

func TestAccessControlOverHTTP(t *testing.T) {
	app, api := newTestApp(t)
	defer app.AuditSvc.Wait()

	res := api.do(http.MethodGet, "/api/admin/employees", "", nil)
	assert.Equal(t, 401, res.Code)

	res = api.do(http.MethodPost, "/api/login", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, 401, res.Code)

	adminToken := api.login("admin", "admin-pass")

	// 管理员没有员工档案
	res = api.do(http.MethodGet, "/api/employee/dashboard", adminToken, nil)
	assert.Equal(t, 403, res.Code)

	res = api.do(http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"username": "bob", "password": "bob-pass", "role": "employee",
	})
	require.Equal(t, 200, res.Code, res.Message)
	bobToken := api.login("bob", "bob-pass")

	res = api.do(http.MethodGet, "/api/admin/employees", bobToken, nil)
	assert.Equal(t, 403, res.Code)

	res = api.do(http.MethodGet, "/api/note", bobToken, nil)
	assert.Equal(t, 200, res.Code)

	res = api.do(http.MethodPost, "/api/logout", bobToken, nil)
	require.Equal(t, 200, res.Code)
	res = api.do(http.MethodGet, "/api/employee/dashboard", bobToken, nil)
	assert.Equal(t, 401, res.Code)
}

func TestNoteOverHTTP(t *testing.T) {
	app, api := newTestApp(t)
	defer app.AuditSvc.Wait()

	adminToken := api.login("admin", "admin-pass")
	res := api.do(http.MethodPut, "/api/admin/note", adminToken, map[string]string{"content": "weekly review on friday"})
	require.Equal(t, 200, res.Code, res.Message)

	res = api.do(http.MethodGet, "/api/note", adminToken, nil)
	var note struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &note))
	assert.Equal(t, "weekly review on friday", note.Content)
	assert.Equal(t, "admin", note.Author)
}
