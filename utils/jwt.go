package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// 令牌由外部认证服务签发，这里只做校验。密钥来自配置，启动时注入
var jwtSecret []byte

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
}

// UserID 解题记录用的用户标识，取自 sub 声明
func (c *Claims) UserID() string {
	return c.Subject
}

func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
