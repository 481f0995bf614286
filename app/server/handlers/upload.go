package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
)

// FileUpload 上传题目配图。文件进对象存储，元信息落库。
// 可选携带 questionId 表单字段，直接挂到对应题目上。
func (a *App) FileUpload(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	if a.store == nil {
		a.l.Error("object storage is not configured")
		return a.er(c, http.StatusServiceUnavailable)
	}

	rctx := c.Request().Context()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	// questionId 可选，但给了就必须真实存在
	var questionID *uint
	if qidStr := c.FormValue("questionId"); qidStr != "" {
		qid, err := parseID(qidStr)
		if err != nil {
			return a.er(c, http.StatusBadRequest)
		}
		var question models.Question
		if err := a.db.WithContext(rctx).First(&question, "id = ?", qid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return a.er(c, http.StatusNotFound)
			} else {
				a.l.Error("failed to get question", zap.Uint("id", qid), zap.Error(err))
				return a.er(c, http.StatusInternalServerError)
			}
		}
		questionID = &question.ID
	}

	file, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	defer file.Close()

	// 对象 key 用 uuid，避免原始文件名冲突或注入路径
	objectKey := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	if err := a.store.Upload(rctx, objectKey, file, fileHeader.Size, contentType); err != nil {
		a.l.Error("failed to upload file", zap.String("key", objectKey), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	uploaded := models.UploadedFile{
		OriginalName: fileHeader.Filename,
		ObjectKey:    objectKey,
		FileSize:     fileHeader.Size,
		MimeType:     contentType,
		UploadedByID: authUser.ID,
		QuestionID:   questionID,
	}
	if err := a.db.WithContext(rctx).Create(&uploaded).Error; err != nil {
		a.l.Error("failed to save uploaded file record", zap.String("key", objectKey), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "file.upload", fmt.Sprintf("key=%s name=%s", objectKey, uploaded.OriginalName))

	return c.JSON(http.StatusCreated, &types.UploadResponse{
		Id:           &uploaded.ID,
		ObjectKey:    &uploaded.ObjectKey,
		OriginalName: &uploaded.OriginalName,
		FileSize:     &uploaded.FileSize,
		MimeType:     &uploaded.MimeType,
		QuestionId:   uploaded.QuestionID,
	})
}
