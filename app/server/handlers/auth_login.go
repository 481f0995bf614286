package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"exam-prep-admin/app/server/constants"
	"exam-prep-admin/app/server/jwt"
	"exam-prep-admin/app/server/models"
	"exam-prep-admin/app/server/types"
	"exam-prep-admin/app/server/utils"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 没有写邮箱或密码
	if req.Email == nil || req.Password == nil {
		return a.er(c, http.StatusBadRequest)
	}

	email := utils.NormalizeEmail(*req.Email)

	var admin models.Admin
	if err := a.db.WithContext(rctx).First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 帐号不存在：不跑一次多余的哈希比较，但响应必须与密码错误完全一致，
			// 「是帐号不存在还是密码不对」只允许出现在内部日志里
			a.l.Info("login rejected: account not found", zap.String("email", email))
			return a.er(c, http.StatusUnauthorized)
		} else {
			a.l.Error("failed to find admin", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(*req.Password, admin.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		// 密码不一致
		a.l.Info("login rejected: wrong password", zap.Uint("id", admin.ID))
		return a.er(c, http.StatusUnauthorized)
	}

	// 签出 JWT ，角色是此刻的快照
	expires := time.Now().Add(constants.AuthTokenDuration)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      admin.ID,
		Role:    admin.Role,
		Expires: expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 写入会话 cookie
	a.setAuthCookie(c, token, expires)

	a.audit(rctx, admin.ID, models.ActorTypeAdmin, "auth.login", admin.Email)

	// 返回
	return c.JSON(http.StatusOK, &types.LoginResponse{
		Id:    &admin.ID,
		Email: &admin.Email,
		Role:  utils.P(string(admin.Role)),
	})
}

// AuthLogout 幂等：带不带有效会话都返回成功，只负责清掉客户端 cookie 。
// 已签出的 token 在到期前仍然有效，服务端没有吊销手段。
func (a *App) AuthLogout(c echo.Context) error {
	a.clearAuthCookie(c)
	return c.NoContent(http.StatusOK)
}

func (a *App) setAuthCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     constants.AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(constants.AuthTokenDuration / time.Second),
		HttpOnly: true, // 页面脚本不可读
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (a *App) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     constants.AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
