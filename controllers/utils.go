package controllers

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

func StrPointer(b string) *string {
	return &b
}

func IntPointer(i int) *int {
	return &i
}

func UIntToStr(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

// User and admin sessions live in separate tables with independent id
// sequences, so the subject alone cannot tell them apart. The scope claim
// does; each middleware only accepts its own.
const (
	TokenScopeSession = "session"
	TokenScopeAdmin   = "admin"
)

type sessionTokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs the JWT the browser carries; subject is the
// session row id, not the backend user id.
func GenerateSessionToken(sessionPk string, scope string, c echo.Context) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionTokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionPk,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.Logger().Errorf("Error when signing session token for %s. Error %s ", sessionPk, err)
	}
	return t
}
