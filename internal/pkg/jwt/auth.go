package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	issuer     = "vendor-dispatch"
	defaultTTL = 5 * time.Minute
)

var ErrInvalidToken = errors.New("无效的令牌")

type Auth struct {
	key string
}

func NewAuth(key string) *Auth {
	return &Auth{
		key: key,
	}
}

// Decode 校验 HS256 令牌并返回声明
func (a *Auth) Decode(tokenString string) (jwt.MapClaims, error) {
	// 去除可能的 Bearer 前缀（兼容不同客户端实现）
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", token.Header["alg"])
		}
		return []byte(a.key), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Encode 以 issuedAt 为签发时间生成令牌，相同输入总是得到相同的令牌
// customClaims 会覆盖默认声明，未指定 exp 时默认 issuedAt 之后 5 分钟过期
func (a *Auth) Encode(issuedAt time.Time, customClaims jwt.MapClaims) (string, error) {
	claims := jwt.MapClaims{
		"iat": issuedAt.Unix(),
		"iss": issuer,
	}
	for k, v := range customClaims {
		claims[k] = v
	}
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = issuedAt.Add(defaultTTL).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.key))
}
