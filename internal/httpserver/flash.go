package httpserver

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookie = "flash"

// Flash messages replace each other: one cookie, the newest write wins,
// consumed on the next page render.
type Flash struct {
	Kind    string
	Message string
}

func setFlash(c echo.Context, kind, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func takeFlash(c echo.Context) *Flash {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(v, "|")
	if !ok {
		return &Flash{Kind: "info", Message: v}
	}
	return &Flash{Kind: kind, Message: message}
}
