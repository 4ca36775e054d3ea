package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daburgger/daburgger/internal/hostedui"
	"github.com/daburgger/daburgger/internal/service"
	"github.com/daburgger/daburgger/internal/session"
)

type Deps struct {
	Burgers  *service.BurgerService
	Sessions *session.Store
	HostedUI hostedui.Config
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	pages := &PageHandler{Svc: d.Burgers, Sessions: d.Sessions}
	auth := &AuthHandler{Sessions: d.Sessions, HostedUI: d.HostedUI}

	e.GET("/", pages.Index)
	e.GET("/admin", pages.Admin)
	e.POST("/admin/burgers", pages.AddBurger)
	e.POST("/admin/burgers/:id/delete", pages.DeleteBurger)

	e.GET("/auth/login", auth.Login)
	e.GET("/auth/logout", auth.Logout)
	e.GET(hostedui.CallbackPath, auth.CallbackPage)
	e.POST(hostedui.CallbackPath, auth.CallbackSubmit)
}
