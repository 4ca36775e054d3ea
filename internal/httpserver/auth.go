package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daburgger/daburgger/internal/hostedui"
	"github.com/daburgger/daburgger/internal/logging"
	"github.com/daburgger/daburgger/internal/session"
)

type AuthHandler struct {
	Sessions *session.Store
	HostedUI hostedui.Config
}

func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.HostedUI.LoginURL())
}

// Logout clears the local session and then redirects through the hosted
// logout so the hosted session is cleared too.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.Sessions.Clear(ctx); err != nil {
		logging.FromContext(ctx).Error("session_clear_failed", "error", err)
	}
	return c.Redirect(http.StatusFound, h.HostedUI.LogoutURL())
}

// CallbackPage receives the hosted UI redirect. The tokens live in the URL
// fragment, which never reaches the server, so the page hands the fragment
// to CallbackSubmit and scrubs it from the address bar.
func (h *AuthHandler) CallbackPage(c echo.Context) error {
	return c.Render(http.StatusOK, "callback.html", map[string]string{
		"Action": hostedui.CallbackPath,
	})
}

func (h *AuthHandler) CallbackSubmit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.callback")

	sess := hostedui.ParseRedirectFragment(c.FormValue("fragment"), time.Now())
	if sess == nil {
		l.Warn("callback_without_tokens")
		setFlash(c, "error", "Login did not return any tokens.")
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	if err := h.Sessions.Save(ctx, sess); err != nil {
		l.Error("session_save_failed", "error", err)
		setFlash(c, "error", "Could not store your login.")
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	l.Info("login_success", "who", sess.Who(), "admin", sess.IsAdmin())
	return c.Redirect(http.StatusSeeOther, "/admin")
}
