package controllers

import (
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistweb/models"
)

// tokenSubject returns the subject only when the token carries the expected
// scope. Session ids and admin session ids come from independent sequences,
// so a token must never be resolvable against the other table.
func tokenSubject(c echo.Context, scope string) interface{} {
	userRaw := c.Get("user")
	if userRaw == nil {
		return nil
	}
	token := userRaw.(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	if claims["scope"] != scope {
		return nil
	}
	return claims["sub"]
}

func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		sessionId := tokenSubject(c, TokenScopeSession)
		if sessionId == nil || sessionId == "" {
			log.Println("Error while getting the token information!")
			return echo.ErrUnauthorized
		}

		var session models.Session
		r := db.Limit(1).Find(&session, "id = ?", sessionId)
		if r.RowsAffected == 0 {
			// logged out or deleted elsewhere, the token is a dangling reference
			return echo.NewHTTPError(http.StatusUnauthorized, "Session expirée")
		}

		c.Set("currentSession", session)
		return next(c)
	}
}

func AdminSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		sessionId := tokenSubject(c, TokenScopeAdmin)
		if sessionId == nil || sessionId == "" {
			log.Println("Error while getting the admin token information!")
			return echo.ErrUnauthorized
		}

		var session models.AdminSession
		r := db.Limit(1).Find(&session, "id = ?", sessionId)
		if r.RowsAffected == 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "Session admin expirée")
		}

		c.Set("currentAdminSession", session)
		return next(c)
	}
}
