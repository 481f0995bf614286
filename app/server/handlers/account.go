package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"exam-prep-admin/app/server/errs"
	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
	"exam-prep-admin/app/server/utils"
)

func accountInfo(admin *models.Admin) *types.AccountInfo {
	return &types.AccountInfo{
		Id:        &admin.ID,
		Username:  &admin.Username,
		Email:     &admin.Email,
		Role:      utils.P(string(admin.Role)),
		CreatedAt: &admin.CreatedAt,
	}
}

func (a *App) AccountList(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var (
		admins      []models.Admin
		adminsCount int64
	)

	showAll, page, limit := a.parsePagination(c)
	queryBase := a.db.WithContext(rctx).Model(&models.Admin{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&admins).Error; err != nil {
		a.l.Error("failed to get account list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Admin{}).Count(&adminsCount).Error; err != nil {
		a.l.Error("failed to count accounts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resAccounts := []types.AccountInfo{}
	for _, admin := range admins {
		resAccounts = append(resAccounts, *accountInfo(&admin))
	}

	return c.JSON(http.StatusOK, &types.AccountListResponse{
		Limit:   &limit,
		PageMax: utils.P(a.calcMaxPage(adminsCount, showAll, limit)),
		List:    &resAccounts,
	})
}

func (a *App) AccountCreate(c echo.Context) error {
	// 抓取 user 信息（认证）：只有超级管理员能开帐号
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AccountCreateRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Email == nil || req.Password == nil {
		return a.er(c, http.StatusBadRequest)
	}

	// 角色缺省为 ADMIN ，且必须是后台角色
	role := models.RoleAdmin
	if req.Role != nil {
		if role, err = models.ParseRole(*req.Role); err != nil || !role.IsStaff() {
			return a.er(c, http.StatusBadRequest)
		}
	}

	email := utils.NormalizeEmail(*req.Email)
	username := utils.UsernameFromEmail(email)
	if req.Username != nil && *req.Username != "" {
		username = *req.Username
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(*req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	admin := models.Admin{
		Username: username,
		Email:    email,
		Password: passwordHash,
		Role:     role,
	}

	// 查重和创建放同一个事务里，邮箱唯一索引兜底
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("count email: %w", err)
		}
		if count > 0 {
			return errs.ErrConflict
		}
		return tx.Create(&admin).Error
	}); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return a.er(c, http.StatusConflict)
		}
		a.l.Error("failed to create account", zap.String("email", email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "account.create", fmt.Sprintf("%s (%s)", email, role))

	return c.JSON(http.StatusCreated, accountInfo(&admin))
}

func (a *App) AccountInfoGetSelf(c echo.Context) error {
	// 这里是对用户本身的操作，任何后台角色都可以读自己的信息
	authUser, err, statusCode := a.authAdmin(c, staffRoles()...)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的帐号
	var admin models.Admin
	if err := a.db.WithContext(rctx).First(&admin, "id = ?", authUser.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get account", zap.Uint("id", authUser.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, accountInfo(&admin))
}

// AccountDelete 删除后台帐号。最后一个超级管理员不可删：
// 计数和删除在同一个事务里做，两个并发删除不能同时看到「还剩不止一个」。
func (a *App) AccountDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		var admin models.Admin
		if err := tx.First(&admin, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("find account: %w", err)
		}

		if admin.Role == models.RoleSuperAdmin {
			// 先锁住全部超级管理员行再点数。READ COMMITTED 下并发删除两个
			// 不同的超级管理员时，普通 count 各自看到 2 、互不阻塞，提交后一个不剩；
			// 带锁读让后到的事务等前者提交并重读，看到只剩一个而被拒绝
			var supers []models.Admin
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("role = ?", models.RoleSuperAdmin).Find(&supers).Error; err != nil {
				return fmt.Errorf("lock super admins: %w", err)
			}
			if len(supers) <= 1 {
				return errs.ErrLastAdmin
			}
		}

		// 物理删除：邮箱唯一索引立即释放，同邮箱可以重新开号
		return tx.Unscoped().Delete(&models.Admin{}, id).Error
	}); err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return a.er(c, http.StatusNotFound)
		case errors.Is(err, errs.ErrLastAdmin):
			return a.er(c, http.StatusConflict)
		default:
			a.l.Error("failed to delete account", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "account.delete", fmt.Sprintf("id=%d", id))

	return c.NoContent(http.StatusOK)
}

// AccountRoleUpdate 变更后台帐号的角色。只有超级管理员能改角色（闸口保证
// 非特权帐号无法给自己升权），把最后一个超级管理员降级等同于删除，同样拒绝。
func (a *App) AccountRoleUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
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
	var req types.AccountRoleUpdateRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Role == nil {
		return a.er(c, http.StatusBadRequest)
	}

	role, err := models.ParseRole(*req.Role)
	if err != nil || !role.IsStaff() {
		return a.er(c, http.StatusBadRequest)
	}

	var admin models.Admin
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&admin, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("find account: %w", err)
		}

		// 降级检查与更新同一事务，带锁读的理由同删除：
		// 两个并发降级不能都把对方当成「还剩的那一个」
		if admin.Role == models.RoleSuperAdmin && role != models.RoleSuperAdmin {
			var supers []models.Admin
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("role = ?", models.RoleSuperAdmin).Find(&supers).Error; err != nil {
				return fmt.Errorf("lock super admins: %w", err)
			}
			if len(supers) <= 1 {
				return errs.ErrLastAdmin
			}
		}

		if err := tx.Model(&admin).Update("role", role).Error; err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		return nil
	}); err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return a.er(c, http.StatusNotFound)
		case errors.Is(err, errs.ErrLastAdmin):
			return a.er(c, http.StatusConflict)
		default:
			a.l.Error("failed to update account role", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "account.role_update", fmt.Sprintf("id=%d role=%s", id, role))

	return c.JSON(http.StatusOK, accountInfo(&admin))
}

// AccountPasswordUpdate 改密码：本人或超级管理员
func (a *App) AccountPasswordUpdate(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, staffRoles()...)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	if authUser.Role != models.RoleSuperAdmin && authUser.ID != id {
		return a.er(c, http.StatusForbidden)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AccountPasswordUpdateRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Password == nil {
		return a.er(c, http.StatusBadRequest)
	}

	// 从数据库中获得指定的帐号
	var admin models.Admin
	if err := a.db.WithContext(rctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get account", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	newPasswordHash, err := argon2id.CreateHash(*req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.db.WithContext(rctx).Model(&admin).Update("password", newPasswordHash).Error; err != nil {
		a.l.Error("failed to update password", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "account.password_update", fmt.Sprintf("id=%d", id))

	return c.NoContent(http.StatusOK)
}

// AccountPromote 把学员搬进后台帐号表。跨表移动不是原地改：
// 先在 Admin 表建好记录，再删 Student 记录，两步在同一个事务里，
// 要么都成功要么都不发生——不能出现帐号凭空消失的中间态。
func (a *App) AccountPromote(c echo.Context) error {
	// 抓取 user 信息（认证）
	authUser, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AccountPromoteRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.StudentId == nil {
		return a.er(c, http.StatusBadRequest)
	}

	role := models.RoleAdmin
	if req.Role != nil {
		if role, err = models.ParseRole(*req.Role); err != nil || !role.IsStaff() {
			return a.er(c, http.StatusBadRequest)
		}
	}

	var admin models.Admin
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, "id = ?", *req.StudentId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("find student: %w", err)
		}

		// 邮箱撞上已有后台帐号：整个事务回滚，学员记录保持原样
		var count int64
		if err := tx.Model(&models.Admin{}).Where("email = ?", student.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("count email: %w", err)
		}
		if count > 0 {
			return errs.ErrConflict
		}

		// 密码已经是 argon2id 哈希，直接搬过去
		admin = models.Admin{
			Username: student.Username,
			Email:    student.Email,
			Password: student.Password,
			Role:     role,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		// 学员记录物理删除：邮箱唯一索引立即释放，之后可以重新注册同邮箱学员
		if err := tx.Unscoped().Delete(&models.Student{}, student.ID).Error; err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		return nil
	}); err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return a.er(c, http.StatusNotFound)
		case errors.Is(err, errs.ErrConflict):
			return a.er(c, http.StatusConflict)
		default:
			a.l.Error("failed to promote student", zap.Uint("studentID", *req.StudentId), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.audit(rctx, authUser.ID, models.ActorTypeAdmin, "account.promote",
		fmt.Sprintf("student=%d -> admin=%d role=%s", *req.StudentId, admin.ID, role))

	return c.JSON(http.StatusCreated, accountInfo(&admin))
}

func (a *App) StudentList(c echo.Context) error {
	// 抓取 user 信息（认证）
	_, err, statusCode := a.authAdmin(c, models.RoleSuperAdmin)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var (
		students      []models.Student
		studentsCount int64
	)

	showAll, page, limit := a.parsePagination(c)
	queryBase := a.db.WithContext(rctx).Model(&models.Student{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&students).Error; err != nil {
		a.l.Error("failed to get student list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Student{}).Count(&studentsCount).Error; err != nil {
		a.l.Error("failed to count students", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resStudents := []types.StudentInfo{}
	for _, student := range students {
		resStudents = append(resStudents, types.StudentInfo{
			Id:        &student.ID,
			Username:  &student.Username,
			Email:     &student.Email,
			CreatedAt: &student.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, &types.StudentListResponse{
		Limit:   &limit,
		PageMax: utils.P(a.calcMaxPage(studentsCount, showAll, limit)),
		List:    &resStudents,
	})
}
