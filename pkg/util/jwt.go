package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 身份凭证校验是外部身份系统的职责，这里只做签名验证与 claims 提取，
// 密钥与签发逻辑和身份系统保持一致。
var jwtSecret = []byte("matchserver-dev-secret")

// SetJWTSecret 覆盖签名密钥（从配置/密钥管理注入）。
func SetJWTSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// Claims 身份凭证载荷。
// Role 为空按普通用户处理，运营账号由身份系统签发 "moderator"。
type Claims struct {
	UserUUID string `json:"user_uuid"`
	DeviceID string `json:"device_id"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var (
	// ErrTokenInvalid 凭证非法或签名不匹配
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired 凭证已过期
	ErrTokenExpired = errors.New("token is expired")
)

// GenerateToken 签发普通用户身份凭证（开发/测试环境使用，线上由身份系统签发）。
func GenerateToken(userUUID, deviceID string) (string, error) {
	return GenerateTokenWithRole(userUUID, deviceID, "")
}

// GenerateTokenWithRole 签发带角色声明的身份凭证。
func GenerateTokenWithRole(userUUID, deviceID, role string) (string, error) {
	claims := Claims{
		UserUUID: userUUID,
		DeviceID: deviceID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken 解析并校验身份凭证。
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserUUID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
