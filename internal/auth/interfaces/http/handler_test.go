package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/khamyang/internal/auth/application"
	"github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/internal/auth/infrastructure/persistence/memory"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Save(ctx context.Context, user *domain.User) error {
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

type memAdminRepo struct {
	admins map[string]*domain.Admin
}

func (r *memAdminRepo) Save(ctx context.Context, admin *domain.Admin) error {
	a := *admin
	r.admins[admin.Username] = &a
	return nil
}

func (r *memAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	if a, ok := r.admins[username]; ok {
		out := *a
		return &out, nil
	}
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *application.AuthCommandService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserRepo{users: make(map[string]*domain.User)}
	admins := &memAdminRepo{admins: make(map[string]*domain.Admin)}
	sessions := memory.NewSessionRepository()

	command := application.NewAuthCommandService(users, admins, sessions, nil, nil, time.Hour)
	query := application.NewAuthQueryService(users, sessions)
	require.NoError(t, command.EnsureDefaultAdmin(context.Background(), "admin", "admin123"))

	engine := gin.New()
	engine.Use(SessionMiddleware(query))
	NewAuthHandler(command, false).RegisterRoutes(engine)

	// 中间件结果的探针路由
	engine.GET("/whoami", func(c *gin.Context) {
		auth := GetAuthContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user":  auth.UserID,
			"admin": auth.IsAdmin,
		})
	})

	return engine, command
}

func doJSON(engine *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterSetsUserSessionCookie(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/register",
		`{"name":"Mai Noi","phone":"111","address":"Powai Mukh","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Mai Noi", resp["name"])

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == UserSessionCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)

	// 注册自动登录
	w = doJSON(engine, http.MethodGet, "/whoami", "", []*http.Cookie{sessionCookie})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["user"])
	assert.Equal(t, false, resp["admin"])
}

func TestRegisterDuplicatePhone(t *testing.T) {
	engine, _ := newTestRouter(t)

	body := `{"name":"A","phone":"222","address":"x","password":"pw"}`
	w := doJSON(engine, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodPost, "/register", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Phone number already registered", resp["message"])
}

func TestLoginAndLogout(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/register",
		`{"name":"A","phone":"333","address":"x","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodPost, "/login", `{"phone":"333","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == UserSessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	w = doJSON(engine, http.MethodGet, "/logout", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	// 注销后会话失效
	w = doJSON(engine, http.MethodGet, "/whoami", "", []*http.Cookie{cookie})
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp["user"])
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/register",
		`{"name":"A","phone":"444","address":"x","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodPost, "/login", `{"phone":"444","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid credentials", resp["message"])
}

func TestAdminLoginIndependentOfUserSession(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/admin/login", `{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var adminCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == AdminSessionCookie {
			adminCookie = c
		}
	}
	require.NotNil(t, adminCookie)

	// 管理员 Cookie 不授予用户身份
	w = doJSON(engine, http.MethodGet, "/whoami", "", []*http.Cookie{adminCookie})
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp["user"])
	assert.Equal(t, true, resp["admin"])
}

func TestFormLoginAccepted(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/register",
		`{"name":"A","phone":"555","address":"x","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 表单提交与 JSON 等价
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("phone=555&password=pw"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
