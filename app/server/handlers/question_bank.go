package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
	"exam-prep-admin/app/server/utils"
)

func (a *App) questionBankInfo(bank *models.QuestionBank, questionCount int64) *types.QuestionBankInfo {
	return &types.QuestionBankInfo{
		Id:            &bank.ID,
		Name:          &bank.Name,
		Subject:       utils.P(string(bank.Subject)),
		Category:      &bank.Category,
		Subcategory:   &bank.Subcategory,
		Description:   &bank.Description,
		Color:         &bank.Color,
		QuestionCount: &questionCount,
	}
}

func (a *App) QuestionBankCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.QuestionBankInput
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Name == nil || req.Subject == nil {
		return a.er(c, http.StatusBadRequest)
	}

	subject := models.Subject(*req.Subject)
	if !subject.Valid() {
		return a.er(c, http.StatusBadRequest)
	}

	bank := models.QuestionBank{
		Name:    *req.Name,
		Subject: subject,
	}
	if req.Category != nil {
		bank.Category = *req.Category
	}
	if req.Subcategory != nil {
		bank.Subcategory = *req.Subcategory
	}
	if req.Description != nil {
		bank.Description = *req.Description
	}
	if req.Color != nil {
		bank.Color = *req.Color
	}

	if err := a.db.WithContext(rctx).Create(&bank).Error; err != nil {
		a.l.Error("failed to create question bank", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "bank.create", fmt.Sprintf("id=%d %s", bank.ID, bank.Name))

	return c.JSON(http.StatusCreated, a.questionBankInfo(&bank, 0))
}

func (a *App) QuestionBankList(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var (
		banks      []models.QuestionBank
		banksCount int64
	)

	filter := a.db.WithContext(rctx).Model(&models.QuestionBank{})
	if subject := c.QueryParam("subject"); subject != "" {
		filter = filter.Where("subject = ?", subject)
	}

	showAll, page, limit := a.parsePagination(c)
	queryBase := filter.Session(&gorm.Session{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&banks).Error; err != nil {
		a.l.Error("failed to get question bank list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := filter.Count(&banksCount).Error; err != nil {
		a.l.Error("failed to count question banks", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resBanks := []types.QuestionBankInfo{}
	for i := range banks {
		count := a.db.WithContext(rctx).Model(&banks[i]).Association("Questions").Count()
		resBanks = append(resBanks, *a.questionBankInfo(&banks[i], count))
	}

	return c.JSON(http.StatusOK, &types.QuestionBankListResponse{
		Limit:   &limit,
		PageMax: utils.P(a.calcMaxPage(banksCount, showAll, limit)),
		List:    &resBanks,
	})
}

func (a *App) QuestionBankInfoGet(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的题库（带题目）
	var bank models.QuestionBank
	if err := a.db.WithContext(rctx).Preload("Questions").First(&bank, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get question bank", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	info := a.questionBankInfo(&bank, int64(len(bank.Questions)))
	return c.JSON(http.StatusOK, info)
}

func (a *App) QuestionBankDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 删除题库（只删集合，不删里面的题目）
	if err := a.db.WithContext(rctx).Delete(&models.QuestionBank{}, id).Error; err != nil {
		a.l.Error("failed to delete question bank", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "bank.delete", fmt.Sprintf("id=%d", id))

	return c.NoContent(http.StatusOK)
}
