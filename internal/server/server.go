package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func Start(addr string, customerH *handler.CustomerHandler, productH *handler.ProductHandler, orderH *handler.OrderHandler) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	RegisterRoutes(e, customerH, productH, orderH)
	return e.Start(addr)
}
