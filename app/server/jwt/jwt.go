package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"exam-prep-admin/app/server/models"
)

type JWT struct {
	key []byte
}

// User 是登录成功后签进 token 的快照。Role 取的是签发时刻的角色，
// 之后数据库里的角色变更不会反映到已签出的 token 上（直到过期）。
type User struct {
	ID      uint
	Role    models.Role
	Expires int64 // Unix second
}

// New 密钥为空直接拒绝：不配置签名密钥时进程不允许启动
func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("signature key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 只接受 HMAC 系列算法，避免算法混淆
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.key, nil
	})
	if err != nil {
		// 过期也会从这里返回（ v5 默认校验 exp ）
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 映射字段，全部做受检断言：被篡改的载荷不能引发 panic
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	user := &User{}

	if id, ok := claims["id"].(float64); ok {
		user.ID = uint(id)
	} else {
		return nil, errors.New("invalid token: bad id claim")
	}

	if roleStr, ok := claims["role"].(string); ok {
		role, err := models.ParseRole(roleStr)
		if err != nil {
			return nil, fmt.Errorf("invalid token: %w", err)
		}
		user.Role = role
	} else {
		return nil, errors.New("invalid token: bad role claim")
	}

	if exp, ok := claims["exp"].(float64); ok {
		user.Expires = int64(exp)
	} else {
		return nil, errors.New("invalid token: bad exp claim")
	}

	return user, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	// 创建声明
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  user.Expires,
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}
