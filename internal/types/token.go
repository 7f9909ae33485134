package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in an access token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// TokenRequest is the body of POST /user/token/
type TokenRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// TokenResponse carries an issued token
type TokenResponse struct {
	Token string `json:"token"`
}
