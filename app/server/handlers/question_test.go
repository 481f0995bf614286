package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
	"exam-prep-admin/app/server/utils"
)

func questionInput(content string) types.QuestionInput {
	return types.QuestionInput{
		Content:       utils.P(content),
		QuestionType:  utils.P(string(models.QuestionTypeMCQSingle)),
		Options:       &[]string{"A", "B", "C", "D"},
		CorrectAnswer: utils.P("A"),
		Subject:       utils.P(string(models.SubjectCAT)),
		Category:      utils.P("Quantitative Ability"),
		Difficulty:    utils.P(string(models.DifficultyMedium)),
	}
}

func TestQuestionCreate(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	input := questionInput("2 + 2 = ?")
	input.Tags = &[]string{"algebra", "basic"}

	rec := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/questions",
		cookie: cookie,
		body:   input,
	}, a.QuestionCreate)

	require.Equal(t, http.StatusCreated, rec.Code)

	res := decodeBody[types.QuestionInfo](t, rec)
	assert.Equal(t, "2 + 2 = ?", *res.Content)
	assert.Equal(t, admin.ID, *res.CreatedById)
	assert.ElementsMatch(t, []string{"algebra", "basic"}, *res.Tags)

	// 标签按名字建好了
	var tagCount int64
	require.NoError(t, a.db.Model(&models.Tag{}).Where("name IN ?", []string{"algebra", "basic"}).Count(&tagCount).Error)
	assert.EqualValues(t, 2, tagCount)
}

func TestQuestionCreate_AssignToBank(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	bank := models.QuestionBank{
		Name:     "CAT QA",
		Subject:  models.SubjectCAT,
		Category: "Quantitative Ability",
	}
	require.NoError(t, a.db.Create(&bank).Error)

	input := questionInput("3 * 3 = ?")
	input.AssignToBank = utils.P(true)

	rec := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/questions",
		cookie: cookie,
		body:   input,
	}, a.QuestionCreate)

	require.Equal(t, http.StatusCreated, rec.Code)

	count := a.db.Model(&bank).Association("Questions").Count()
	assert.EqualValues(t, 1, count)
}

func TestQuestionCreate_Validation(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	// 缺必填字段
	rec := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/questions",
		cookie: cookie,
		body:   types.QuestionInput{Content: utils.P("incomplete")},
	}, a.QuestionCreate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 枚举集合外的值
	bad := questionInput("bad enum")
	bad.Difficulty = utils.P("IMPOSSIBLE")
	rec = do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/questions",
		cookie: cookie,
		body:   bad,
	}, a.QuestionCreate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 全部被拒，没有落库
	var count int64
	require.NoError(t, a.db.Model(&models.Question{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestQuestionList_FilterAndPagination(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	for i := 0; i < 3; i++ {
		require.NoError(t, a.db.Create(&models.Question{
			Content:      fmt.Sprintf("cat %d", i),
			QuestionType: models.QuestionTypeMCQSingle,
			Subject:      models.SubjectCAT,
			Difficulty:   models.DifficultyEasy,
			CreatedByID:  admin.ID,
		}).Error)
	}
	require.NoError(t, a.db.Create(&models.Question{
		Content:      "neet",
		QuestionType: models.QuestionTypeMCQSingle,
		Subject:      models.SubjectNEET,
		Difficulty:   models.DifficultyHard,
		CreatedByID:  admin.ID,
	}).Error)

	rec := do(t, testRequest{
		method:  http.MethodGet,
		path:    "/api/admin/questions",
		cookie:  cookie,
		queries: [][2]string{{"subject", "CAT"}, {"page", "1"}, {"limit", "2"}},
	}, a.QuestionList)

	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[types.QuestionListResponse](t, rec)
	require.NotNil(t, res.List)
	assert.Len(t, *res.List, 2)
	assert.EqualValues(t, 2, *res.PageMax) // 3 条 CAT ，每页 2 条
}

func TestQuestionInfoGet_NotFound(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)

	rec := do(t, testRequest{
		method: http.MethodGet,
		path:   "/api/admin/questions/:id",
		cookie: authCookie(t, a, admin.ID, admin.Role),
		params: [][2]string{{"id", "9999"}},
	}, a.QuestionInfoGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestionUpdate(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	question := models.Question{
		Content:      "old content",
		QuestionType: models.QuestionTypeMCQSingle,
		Subject:      models.SubjectCAT,
		Difficulty:   models.DifficultyEasy,
		CreatedByID:  admin.ID,
		Tags:         []models.Tag{{Name: "old-tag"}},
	}
	require.NoError(t, a.db.Create(&question).Error)

	// 部分更新：只动内容和标签，其余字段保持不变
	rec := do(t, testRequest{
		method: http.MethodPut,
		path:   "/api/admin/questions/:id",
		cookie: cookie,
		params: [][2]string{{"id", fmt.Sprint(question.ID)}},
		body: types.QuestionInput{
			Content: utils.P("new content"),
			Tags:    &[]string{"fresh"},
		},
	}, a.QuestionUpdate)

	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[types.QuestionInfo](t, rec)
	assert.Equal(t, "new content", *res.Content)
	assert.Equal(t, string(models.SubjectCAT), *res.Subject)
	assert.Equal(t, []string{"fresh"}, *res.Tags) // 标签整组替换
}

func TestQuestionDelete(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	question := models.Question{
		Content:      "to be deleted",
		QuestionType: models.QuestionTypeMCQSingle,
		Subject:      models.SubjectCAT,
		Difficulty:   models.DifficultyEasy,
		CreatedByID:  admin.ID,
	}
	require.NoError(t, a.db.Create(&question).Error)

	rec := do(t, testRequest{
		method: http.MethodDelete,
		path:   "/api/admin/questions/:id",
		cookie: cookie,
		params: [][2]string{{"id", fmt.Sprint(question.ID)}},
	}, a.QuestionDelete)

	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, a.db.Model(&models.Question{}).Where("id = ?", question.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

// 批量建题整批一个事务：第 2 条非法时第 1 条也不能入库
func TestQuestionBulkCreate_AllOrNothing(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	bad := questionInput("second")
	bad.QuestionType = utils.P("ESSAY_FREESTYLE")

	rec := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/questions/bulk",
		cookie: cookie,
		body: types.QuestionBulkCreateRequest{
			Questions: &[]types.QuestionInput{questionInput("first"), bad},
		},
	}, a.QuestionBulkCreate)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, a.db.Model(&models.Question{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestQuestionBulkCreate(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	rec := do(t, testRequest{
		method: http.MethodPost,
		path:   "/api/admin/questions/bulk",
		cookie: cookie,
		body: types.QuestionBulkCreateRequest{
			Questions: &[]types.QuestionInput{
				questionInput("first"),
				questionInput("second"),
				questionInput("third"),
			},
		},
	}, a.QuestionBulkCreate)

	require.Equal(t, http.StatusCreated, rec.Code)

	res := decodeBody[types.QuestionBulkCreateResponse](t, rec)
	assert.Equal(t, 3, *res.Count)
}

func TestQuestionAnalytics(t *testing.T) {
	a := newTestApp(t)
	admin := createAdmin(t, a, "editor@example.com", "password123", models.RoleAdmin)
	cookie := authCookie(t, a, admin.ID, admin.Role)

	for _, q := range []models.Question{
		{Content: "q1", QuestionType: models.QuestionTypeMCQSingle, Subject: models.SubjectCAT, Difficulty: models.DifficultyEasy},
		{Content: "q2", QuestionType: models.QuestionTypeMCQSingle, Subject: models.SubjectCAT, Difficulty: models.DifficultyHard},
		{Content: "q3", QuestionType: models.QuestionTypeMCQSingle, Subject: models.SubjectNEET, Difficulty: models.DifficultyHard},
	} {
		require.NoError(t, a.db.Create(&q).Error)
	}

	rec := do(t, testRequest{
		method: http.MethodGet,
		path:   "/api/admin/questions/analytics",
		cookie: cookie,
	}, a.QuestionAnalytics)

	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[types.QuestionAnalytics](t, rec)
	assert.EqualValues(t, 3, res.Total)
	assert.EqualValues(t, 2, res.BySubject["CAT"])
	assert.EqualValues(t, 1, res.BySubject["NEET"])
	assert.EqualValues(t, 2, res.ByDifficulty["HARD"])
}
