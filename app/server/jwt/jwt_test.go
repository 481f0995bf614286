package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-admin/app/server/models"
)

func TestNew_EmptyKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestSignAndParse(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	token, err := j.SignToken(&User{
		ID:      42,
		Role:    models.RoleAdmin,
		Expires: expires,
	})
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, expires, user.Expires)
}

func TestParseUser_Expired(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	token, err := j.SignToken(&User{
		ID:      1,
		Role:    models.RoleAdmin,
		Expires: time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(t, err)

	_, err = j.ParseUser(token)
	assert.Error(t, err)
}

func TestParseUser_WrongKey(t *testing.T) {
	signer, err := New("key-one")
	require.NoError(t, err)
	verifier, err := New("key-two")
	require.NoError(t, err)

	token, err := signer.SignToken(&User{
		ID:      1,
		Role:    models.RoleAdmin,
		Expires: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = verifier.ParseUser(token)
	assert.Error(t, err)
}

func TestParseUser_Tampered(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	token, err := j.SignToken(&User{
		ID:      1,
		Role:    models.RoleAdmin,
		Expires: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = j.ParseUser(token + "x")
	assert.Error(t, err)

	_, err = j.ParseUser("")
	assert.Error(t, err)

	_, err = j.ParseUser("definitely-not-a-jwt")
	assert.Error(t, err)
}

// 载荷合法签名也合法，但 role 不在封闭集合里：照样拒绝
func TestParseUser_UnknownRoleClaim(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"id":   float64(1),
		"role": "OVERLORD",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = j.ParseUser(signed)
	assert.Error(t, err)
}

// 缺字段的载荷不 panic ，返回错误
func TestParseUser_MissingClaims(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = j.ParseUser(signed)
	assert.Error(t, err)
}

// alg=none 之类的非 HMAC 算法直接拒绝
func TestParseUser_RejectsNonHMAC(t *testing.T) {
	j, err := New("test-secret")
	require.NoError(t, err)

	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"id":   float64(1),
		"role": string(models.RoleSuperAdmin),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseUser(signed)
	assert.Error(t, err)
}
