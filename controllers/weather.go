package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stylistweb/services"
)

type WeatherController struct {
	Weather services.WeatherCacheServiceProvider
}

func (controller *WeatherController) WeatherRoutes(g *echo.Group) {
	g.GET("", controller.Current)
	g.GET("/animation", controller.Animation)
}

// Current resolves weather for the page header. Missing or unparseable
// coordinates fall back to Paris inside the service.
func (controller *WeatherController) Current(c echo.Context) error {
	lat, _ := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, _ := strconv.ParseFloat(c.QueryParam("lon"), 64)

	out, err := controller.Weather.GetWeather(c.Request().Context(), lat, lon)
	if err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Animation returns rendering data for the decorative layer; there is no
// failure mode.
func (controller *WeatherController) Animation(c echo.Context) error {
	return c.JSON(http.StatusOK, services.GenerateAnimation(c.QueryParam("code")))
}
