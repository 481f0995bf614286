package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
	"exam-prep-admin/app/server/utils"
)

// StudentBulkImport 从 CSV 批量导入学员。
// 格式：带表头，列为 username / email / password（顺序不限）。
// 逐行导入互不影响，结果里按行报 created / duplicate / error 。
// 密码入库前统一做 argon2id 哈希，绝不明文落库。
func (a *App) StudentBulkImport(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 提取上传的 CSV 文件
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}
	file, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // 行宽不齐交给下面的列检查

	// 表头映射
	header, err := reader.Read()
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}
	colIndex := map[string]int{}
	for i, name := range header {
		colIndex[utils.NormalizeEmail(name)] = i // 复用大小写归一
	}
	emailCol, hasEmail := colIndex["email"]
	passwordCol, hasPassword := colIndex["password"]
	usernameCol, hasUsername := colIndex["username"]
	if !hasEmail || !hasPassword {
		return a.er(c, http.StatusBadRequest)
	}

	results := []types.ImportRowResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// CSV 本身损坏，整体按解析失败处理
			a.l.Warn("csv parse failed", zap.Error(err))
			return a.er(c, http.StatusBadRequest)
		}
		if emailCol >= len(row) || passwordCol >= len(row) {
			results = append(results, types.ImportRowResult{Status: "error"})
			continue
		}

		email := utils.NormalizeEmail(row[emailCol])
		if email == "" {
			results = append(results, types.ImportRowResult{Status: "error"})
			continue
		}

		username := utils.UsernameFromEmail(email)
		if hasUsername && usernameCol < len(row) && row[usernameCol] != "" {
			username = row[usernameCol]
		}

		// 查重
		var count int64
		if err := a.db.WithContext(rctx).Model(&models.Student{}).Where("email = ?", email).Count(&count).Error; err != nil {
			a.l.Error("failed to check student email", zap.String("email", email), zap.Error(err))
			results = append(results, types.ImportRowResult{Email: email, Status: "error"})
			continue
		}
		if count > 0 {
			results = append(results, types.ImportRowResult{Email: email, Status: "duplicate"})
			continue
		}

		passwordHash, err := argon2id.CreateHash(row[passwordCol], argon2id.DefaultParams)
		if err != nil {
			a.l.Error("failed to hash password", zap.String("email", email), zap.Error(err))
			results = append(results, types.ImportRowResult{Email: email, Status: "error"})
			continue
		}

		if err := a.db.WithContext(rctx).Create(&models.Student{
			Username: username,
			Email:    email,
			Password: passwordHash,
		}).Error; err != nil {
			a.l.Error("failed to create student", zap.String("email", email), zap.Error(err))
			results = append(results, types.ImportRowResult{Email: email, Status: "error"})
			continue
		}

		results = append(results, types.ImportRowResult{Email: email, Status: "created"})
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "student.bulk_import", fmt.Sprintf("rows=%d", len(results)))

	return c.JSON(http.StatusOK, &types.ImportResponse{Results: results})
}
