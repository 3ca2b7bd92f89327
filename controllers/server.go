package controllers

import (
	"net/http"
	"os"

	"github.com/go-playground/validator"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"stylistweb/models"
	"stylistweb/services"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	backend services.StylistBackendProvider,
	weather services.WeatherCacheServiceProvider,
	guard *services.InflightGuard,
) *echo.Echo {

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("morphologie", models.ValidateMorphologie)
	v.RegisterValidation("genre", models.ValidateGenre)
	v.RegisterValidation("category", models.ValidateCategory)
	e.Validator = &CustomValidator{validator: v}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	sessionController := SessionController{Backend: backend}
	sessionGroup := e.Group("/session")
	sessionController.SessionRoutes(sessionGroup)

	authedSessionGroup := e.Group("/session", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)
	sessionController.AuthedSessionRoutes(authedSessionGroup)

	profileController := ProfileController{Backend: backend}
	profileGroup := e.Group("/profile", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)
	profileController.ProfileRoutes(profileGroup)

	wardrobeController := WardrobeController{Backend: backend, Guard: guard}
	wardrobeGroup := e.Group("/wardrobe", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)
	wardrobeController.WardrobeRoutes(wardrobeGroup)

	suggestionsController := SuggestionsController{Backend: backend, Weather: weather}
	suggestionsGroup := e.Group("/suggestions", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)
	suggestionsController.SuggestionsRoutes(suggestionsGroup)

	chatController := ChatController{Backend: backend, Guard: guard}
	chatGroup := e.Group("/chat", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)
	chatController.ChatRoutes(chatGroup)

	clicksController := ClicksController{Backend: backend}
	clicksGroup := e.Group("/clicks", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), SessionMiddleware)
	clicksController.ClicksRoutes(clicksGroup)

	adminController := AdminController{Backend: backend}
	adminGroup := e.Group("/admin")
	adminController.AdminRoutes(adminGroup)

	authedAdminGroup := e.Group("/admin", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))), AdminSessionMiddleware)
	adminController.AuthedAdminRoutes(authedAdminGroup)

	weatherController := WeatherController{Weather: weather}
	weatherGroup := e.Group("/weather")
	weatherController.WeatherRoutes(weatherGroup)

	return e
}
