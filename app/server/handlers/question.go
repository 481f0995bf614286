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

// questionMapFields 把请求里出现的字段落到模型上（部分更新友好）。
// 枚举字段非法时报错，其余字段原样覆盖。
func questionMapFields(req *types.QuestionInput, question *models.Question) error {
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.QuestionImage != nil {
		question.QuestionImage = *req.QuestionImage
	}
	if req.QuestionType != nil {
		qt := models.QuestionType(*req.QuestionType)
		if !qt.Valid() {
			return fmt.Errorf("invalid question type: %q", *req.QuestionType)
		}
		question.QuestionType = qt
	}
	if req.Options != nil {
		question.Options = *req.Options
	}
	if req.OptionImages != nil {
		question.OptionImages = *req.OptionImages
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		question.Explanation = *req.Explanation
	}
	if req.ExplanationImage != nil {
		question.ExplanationImage = *req.ExplanationImage
	}
	if req.Subject != nil {
		subject := models.Subject(*req.Subject)
		if !subject.Valid() {
			return fmt.Errorf("invalid subject: %q", *req.Subject)
		}
		question.Subject = subject
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.Subcategory != nil {
		question.Subcategory = *req.Subcategory
	}
	if req.Difficulty != nil {
		difficulty := models.Difficulty(*req.Difficulty)
		if !difficulty.Valid() {
			return fmt.Errorf("invalid difficulty: %q", *req.Difficulty)
		}
		question.Difficulty = difficulty
	}
	if req.EstimatedTime != nil {
		question.EstimatedTime = *req.EstimatedTime
	}
	return nil
}

func questionInfo(question *models.Question) *types.QuestionInfo {
	tagNames := []string{}
	for _, tag := range question.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	return &types.QuestionInfo{
		Id:               &question.ID,
		Content:          &question.Content,
		QuestionImage:    &question.QuestionImage,
		QuestionType:     utils.P(string(question.QuestionType)),
		Options:          &question.Options,
		OptionImages:     &question.OptionImages,
		CorrectAnswer:    &question.CorrectAnswer,
		Explanation:      &question.Explanation,
		ExplanationImage: &question.ExplanationImage,
		Subject:          utils.P(string(question.Subject)),
		Category:         &question.Category,
		Subcategory:      &question.Subcategory,
		Difficulty:       utils.P(string(question.Difficulty)),
		EstimatedTime:    &question.EstimatedTime,
		Tags:             &tagNames,
		CreatedById:      &question.CreatedByID,
	}
}

// attachTags 按名字挂标签，没有的先建（颜色留空，后台可以再补）
func (a *App) attachTags(tx *gorm.DB, question *models.Question, tagNames []string) error {
	for _, name := range tagNames {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return fmt.Errorf("upsert tag %q: %w", name, err)
		}
		if err := tx.Model(question).Association("Tags").Append(&tag); err != nil {
			return fmt.Errorf("append tag %q: %w", name, err)
		}
	}
	return nil
}

func (a *App) QuestionCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.QuestionInput
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Content == nil || req.QuestionType == nil || req.Subject == nil || req.Difficulty == nil {
		return a.er(c, http.StatusBadRequest)
	}

	question := models.Question{
		CreatedByID: authUser.ID,
	}
	if err := questionMapFields(&req, &question); err != nil {
		a.l.Warn("invalid question payload", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return fmt.Errorf("create question: %w", err)
		}

		if req.Tags != nil {
			if err := a.attachTags(tx, &question, *req.Tags); err != nil {
				return err
			}
		}

		// 按科目 + 分类挂进已有题库，没有匹配的题库时静默跳过
		if req.AssignToBank != nil && *req.AssignToBank {
			var bank models.QuestionBank
			if err := tx.First(&bank, "subject = ? AND category = ?", question.Subject, question.Category).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("find bank: %w", err)
				}
			} else if err := tx.Model(&bank).Association("Questions").Append(&question); err != nil {
				return fmt.Errorf("append to bank: %w", err)
			}
		}

		return nil
	}); err != nil {
		a.l.Error("failed to create question", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "question.create", fmt.Sprintf("id=%d", question.ID))

	return c.JSON(http.StatusCreated, questionInfo(&question))
}

func (a *App) QuestionList(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var (
		questions      []models.Question
		questionsCount int64
	)

	// 过滤条件
	filter := a.db.WithContext(rctx).Model(&models.Question{})
	if subject := c.QueryParam("subject"); subject != "" {
		filter = filter.Where("subject = ?", subject)
	}
	if difficulty := c.QueryParam("difficulty"); difficulty != "" {
		filter = filter.Where("difficulty = ?", difficulty)
	}

	showAll, page, limit := a.parsePagination(c)
	queryBase := filter.Session(&gorm.Session{}).Preload("Tags").Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&questions).Error; err != nil {
		a.l.Error("failed to get question list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := filter.Count(&questionsCount).Error; err != nil {
		a.l.Error("failed to count questions", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resQuestions := []types.QuestionInfo{}
	for _, question := range questions {
		resQuestions = append(resQuestions, *questionInfo(&question))
	}

	return c.JSON(http.StatusOK, &types.QuestionListResponse{
		Limit:   &limit,
		PageMax: utils.P(a.calcMaxPage(questionsCount, showAll, limit)),
		List:    &resQuestions,
	})
}

func (a *App) QuestionInfoGet(c echo.Context) error {
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

	// 从数据库中获得指定的题目
	var question models.Question
	if err := a.db.WithContext(rctx).Preload("Tags").First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get question", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, questionInfo(&question))
}

func (a *App) QuestionUpdate(c echo.Context) error {
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

	// 绑定请求体
	var req types.QuestionInput
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 从数据库中获得指定的题目
	var question models.Question
	if err := a.db.WithContext(rctx).Preload("Tags").First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get question", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	if err := questionMapFields(&req, &question); err != nil {
		a.l.Warn("invalid question payload", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&question).Error; err != nil {
			return fmt.Errorf("save question: %w", err)
		}
		// 传了 tags 就整组替换
		if req.Tags != nil {
			if err := tx.Model(&question).Association("Tags").Clear(); err != nil {
				return fmt.Errorf("clear tags: %w", err)
			}
			question.Tags = nil
			if err := a.attachTags(tx, &question, *req.Tags); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		a.l.Error("failed to update question", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "question.update", fmt.Sprintf("id=%d", id))

	return c.JSON(http.StatusOK, questionInfo(&question))
}

func (a *App) QuestionDelete(c echo.Context) error {
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

	// 删除题目
	if err := a.db.WithContext(rctx).Delete(&models.Question{}, id).Error; err != nil {
		a.l.Error("failed to delete question", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "question.delete", fmt.Sprintf("id=%d", id))

	return c.NoContent(http.StatusOK)
}

// QuestionBulkCreate 批量建题，整批一个事务：任何一条失败全部回滚
func (a *App) QuestionBulkCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.QuestionBulkCreateRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Questions == nil || len(*req.Questions) == 0 {
		return a.er(c, http.StatusBadRequest)
	}

	questions := make([]models.Question, 0, len(*req.Questions))
	for i := range *req.Questions {
		input := &(*req.Questions)[i]
		if input.Content == nil || input.QuestionType == nil || input.Subject == nil || input.Difficulty == nil {
			return a.er(c, http.StatusBadRequest)
		}
		question := models.Question{CreatedByID: authUser.ID}
		if err := questionMapFields(input, &question); err != nil {
			a.l.Warn("invalid question payload in bulk", zap.Int("index", i), zap.Error(err))
			return a.er(c, http.StatusBadRequest)
		}
		questions = append(questions, question)
	}

	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	}); err != nil {
		a.l.Error("failed to bulk create questions", zap.Int("count", len(questions)), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "question.bulk_create", fmt.Sprintf("count=%d", len(questions)))

	return c.JSON(http.StatusCreated, &types.QuestionBulkCreateResponse{
		Count: utils.P(len(questions)),
	})
}

// QuestionAnalytics 题目分布统计
func (a *App) QuestionAnalytics(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin, models.RoleAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	res := types.QuestionAnalytics{
		BySubject:    map[string]int64{},
		ByDifficulty: map[string]int64{},
	}

	if err := a.db.WithContext(rctx).Model(&models.Question{}).Count(&res.Total).Error; err != nil {
		a.l.Error("failed to count questions", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	type groupRow struct {
		Label string
		Value int64
	}

	var bySubject []groupRow
	if err := a.db.WithContext(rctx).Model(&models.Question{}).
		Select("subject AS label, COUNT(*) AS value").
		Group("subject").
		Scan(&bySubject).Error; err != nil {
		a.l.Error("failed to group questions by subject", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	for _, row := range bySubject {
		res.BySubject[row.Label] = row.Value
	}

	var byDifficulty []groupRow
	if err := a.db.WithContext(rctx).Model(&models.Question{}).
		Select("difficulty AS label, COUNT(*) AS value").
		Group("difficulty").
		Scan(&byDifficulty).Error; err != nil {
		a.l.Error("failed to group questions by difficulty", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	for _, row := range byDifficulty {
		res.ByDifficulty[row.Label] = row.Value
	}

	return c.JSON(http.StatusOK, &res)
}
