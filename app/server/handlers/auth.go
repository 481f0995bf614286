package handlers

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"exam-prep-admin/app/server/constants"
	"exam-prep-admin/app/server/jwt"
	"exam-prep-admin/app/server/models"
)

// authAdmin 是所有特权接口的统一闸口：从会话 cookie 里取 token ，
// 验证签名与有效期，再比对角色集合。调用方必须在碰任何存储之前先过这里。
//
// 返回的状态码区分两种失败：
//   - 401 ：没登录（缺 cookie 、token 被篡改、已过期）
//   - 403 ：登录了但角色不够（角色取 token 里签发时的快照，不回表重读）
func (a *App) authAdmin(c echo.Context, required ...models.Role) (*jwt.User, error, int) {
	// 提取 token
	cookie, err := c.Cookie(constants.AuthCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("missing auth token"), http.StatusUnauthorized
	}

	// 验证 token ，签名不符 / 载荷损坏 / 过期都归为未认证，区别只进日志
	jwtUser, err := a.jwt.ParseUser(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err), http.StatusUnauthorized
	}

	// 验证权限
	if len(required) > 0 && !slices.Contains(required, jwtUser.Role) {
		return nil, fmt.Errorf("role %s is not allowed here", jwtUser.Role), http.StatusForbidden
	}

	return jwtUser, nil, http.StatusOK
}

// staffRoles 全部后台角色，只读接口用
func staffRoles() []models.Role {
	return []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleModerator}
}
