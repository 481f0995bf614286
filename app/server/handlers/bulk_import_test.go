package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
)

// doCSVImport 构造 multipart 请求并调用导入接口
func doCSVImport(t *testing.T, a *App, cookie *http.Cookie, csvContent string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "students.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvContent))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/bulk-import", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, a.StudentBulkImport(c))
	return rec
}

func TestStudentBulkImport(t *testing.T) {
	a := newTestApp(t)
	super := createAdmin(t, a, "root@example.com", "password123", models.RoleSuperAdmin)
	createStudent(t, a, "existing@example.com", "password123")
	cookie := authCookie(t, a, super.ID, super.Role)

	rec := doCSVImport(t, a, cookie,
		"username,email,password\n"+
			"alice,alice@example.com,pass-one\n"+
			",Bob@Example.COM,pass-two\n"+ // 没写用户名，取邮箱前缀；邮箱归一小写
			"dup,existing@example.com,pass-three\n"+ // 已存在
			"broken,,pass-four\n") // 邮箱为空

	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[types.ImportResponse](t, rec)
	require.Len(t, res.Results, 4)
	assert.Equal(t, "created", res.Results[0].Status)
	assert.Equal(t, "created", res.Results[1].Status)
	assert.Equal(t, "bob@example.com", res.Results[1].Email)
	assert.Equal(t, "duplicate", res.Results[2].Status)
	assert.Equal(t, "error", res.Results[3].Status)

	// 成功的行真的进了库，密码是哈希
	var bob models.Student
	require.NoError(t, a.db.First(&bob, "email = ?", "bob@example.com").Error)
	assert.Equal(t, "bob", bob.Username)
	match, err := argon2id.ComparePasswordAndHash("pass-two", bob.Password)
	require.NoError(t, err)
	assert.True(t, match)
}

// 坏行不影响好行：逐行独立
func TestStudentBulkImport_PartialFailure(t *testing.T) {
	a := newTestApp(t)
	super := createAdmin(t, a, "root@example.com", "password123", models.RoleSuperAdmin)
	cookie := authCookie(t, a, super.ID, super.Role)

	rec := doCSVImport(t, a, cookie,
		"email,password\n"+
			"ok@example.com,secret\n"+
			",missing-email\n"+
			"fine@example.com,secret\n")

	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, a.db.Model(&models.Student{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

// 晋升把学员记录搬走后，同一邮箱可以重新注册为学员
func TestStudentBulkImport_ReimportPromotedEmail(t *testing.T) {
	a := newTestApp(t)
	super := createAdmin(t, a, "root@example.com", "password123", models.RoleSuperAdmin)
	student := createStudent(t, a, "grad@example.com", "password123")
	cookie := authCookie(t, a, super.ID, super.Role)

	promote := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/accounts/promote",
		cookie: cookie,
		body:   types.AccountPromoteRequest{StudentId: &student.ID},
	}, a.AccountPromote)
	require.Equal(t, http.StatusCreated, promote.Code)

	rec := doCSVImport(t, a, cookie, "email,password\ngrad@example.com,back-to-school\n")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[types.ImportResponse](t, rec)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "created", res.Results[0].Status)
}

func TestStudentBulkImport_MissingColumns(t *testing.T) {
	a := newTestApp(t)
	super := createAdmin(t, a, "root@example.com", "password123", models.RoleSuperAdmin)
	cookie := authCookie(t, a, super.ID, super.Role)

	rec := doCSVImport(t, a, cookie, "name,phone\nalice,12345\n")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// 导入是超级管理员专属
func TestStudentBulkImport_RequiresSuperAdmin(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "normal@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	rec := doCSVImport(t, a, cookie, "email,password\nx@example.com,secret\n")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
