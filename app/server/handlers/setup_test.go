// Package handlers 处理器测试。
//
// 数据库用内存 sqlite ，Redis 用 miniredis ，对象存储不参与（store 传 nil ），
// 每个用例拿到的都是全新环境，互不串数据。
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/constants"
	"exam-prep-admin/app/server/jwt"
	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/utils"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.Tag{},
		&models.Question{},
		&models.QuestionBank{},
		&models.Exam{},
		&models.ExamAttempt{},
		&models.AuditLog{},
		&models.Notification{},
		&models.UploadedFile{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	j, err := jwt.New("test-secret")
	require.NoError(t, err)

	return NewApp(zap.NewNop(), db, rdb, j, nil, false)
}

// createAdmin 造一个后台帐号，密码按正式流程做 argon2id 哈希
func createAdmin(t *testing.T, a *App, email, password string, role models.Role) *models.Admin {
	t.Helper()

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	require.NoError(t, err)

	admin := &models.Admin{
		Username: utils.UsernameFromEmail(email),
		Email:    email,
		Password: hash,
		Role:     role,
	}
	require.NoError(t, a.db.Create(admin).Error)
	return admin
}

func createStudent(t *testing.T, a *App, email, password string) *models.Student {
	t.Helper()

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	require.NoError(t, err)

	student := &models.Student{
		Username: utils.UsernameFromEmail(email),
		Email:    email,
		Password: hash,
	}
	require.NoError(t, a.db.Create(student).Error)
	return student
}

// authCookie 直接签 token 做成会话 cookie ，绕过登录接口
func authCookie(t *testing.T, a *App, id uint, role models.Role) *http.Cookie {
	t.Helper()

	token, err := a.jwt.SignToken(&jwt.User{
		ID:      id,
		Role:    role,
		Expires: time.Now().Add(constants.AuthTokenDuration).Unix(),
	})
	require.NoError(t, err)

	return &http.Cookie{Name: constants.AuthCookieName, Value: token}
}

type testRequest struct {
	method  string
	path    string
	body    any          // 非 nil 时编码为 JSON 请求体
	cookie  *http.Cookie // 会话 cookie ，可空
	params  [][2]string  // 路径参数
	queries [][2]string  // 查询参数
}

// do 构造 echo 上下文并调用 handler ，返回录制到的响应
func do(t *testing.T, req testRequest, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader *bytes.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(raw)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	target := req.path
	if len(req.queries) > 0 {
		target += "?"
		for i, q := range req.queries {
			if i > 0 {
				target += "&"
			}
			target += q[0] + "=" + q[1]
		}
	}

	httpReq := httptest.NewRequest(req.method, target, bodyReader)
	if req.body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.cookie != nil {
		httpReq.AddCookie(req.cookie)
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httpReq, rec)
	if len(req.params) > 0 {
		names := make([]string, 0, len(req.params))
		values := make([]string, 0, len(req.params))
		for _, p := range req.params {
			names = append(names, p[0])
			values = append(values, p[1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	require.NoError(t, handler(c))
	return rec
}

// decodeBody 反序列化 JSON 响应体
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
