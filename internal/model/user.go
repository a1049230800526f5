package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims - claims access токена, ID пользователя лежит в jti
type UserClaims struct {
	jwt.RegisteredClaims
}
