package models

import (
	"github.com/golang-jwt/jwt/v4"
)

type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
