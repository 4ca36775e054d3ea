package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daburgger/daburgger/internal/burger"
	"github.com/daburgger/daburgger/internal/logging"
	"github.com/daburgger/daburgger/internal/service"
	"github.com/daburgger/daburgger/internal/session"
	"github.com/daburgger/daburgger/internal/transport"
)

type PageHandler struct {
	Svc      *service.BurgerService
	Sessions *session.Store
}

type SortLink struct {
	Label  string
	URL    string
	Active bool
}

type IndexData struct {
	Flash     *Flash
	Burgers   []burger.Burger
	Locations []string
	Location  string
	Type      string
	SortLinks map[string]SortLink
}

type AdminData struct {
	Flash   *Flash
	Authed  bool
	Admin   bool
	Status  string
	Burgers []burger.Burger
}

// Index renders the public table. Filter and sort are read from the query
// and always recombined against the full fetched set, so they stay
// independent of each other. A fetch failure leaves the list empty and the
// page up.
func (h *PageHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pages.index")

	records, err := h.Svc.List(ctx)
	if err != nil {
		l.Warn("list_failed", "error", err)
		records = nil
	}

	loc := c.QueryParam("location")
	typ := c.QueryParam("type")

	field, hasSort := burger.ParseField(c.QueryParam("sort"))
	dir := burger.Direction(c.QueryParam("dir"))
	if hasSort && dir != burger.Asc && dir != burger.Desc {
		dir = burger.DefaultDirection(field)
	}

	view := burger.Filter(records, loc, typ)
	if hasSort {
		burger.Sort(view, field, dir)
	}

	return c.Render(http.StatusOK, "index.html", IndexData{
		Flash:     takeFlash(c),
		Burgers:   view,
		Locations: burger.Locations(records),
		Location:  loc,
		Type:      typ,
		SortLinks: sortLinks(field, dir, loc, typ),
	})
}

func sortLinks(cur burger.Field, curDir burger.Direction, loc, typ string) map[string]SortLink {
	cols := []struct {
		field burger.Field
		label string
	}{
		{burger.FieldRestaurant, "Restaurant"},
		{burger.FieldLocation, "Location"},
		{burger.FieldRating, "Rating"},
		{burger.FieldDate, "Date"},
	}

	out := make(map[string]SortLink, len(cols))
	for _, col := range cols {
		next, nextDir := burger.Toggle(cur, curDir, col.field)
		q := url.Values{}
		if loc != "" {
			q.Set("location", loc)
		}
		if typ != "" {
			q.Set("type", typ)
		}
		q.Set("sort", string(next))
		q.Set("dir", string(nextDir))
		out[string(col.field)] = SortLink{
			Label:  col.label,
			URL:    "/?" + q.Encode(),
			Active: cur == col.field,
		}
	}
	return out
}

// Admin renders the panel with the gate evaluated fresh from the store.
func (h *PageHandler) Admin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pages.admin")

	sess, err := h.Sessions.Load(ctx)
	if err != nil {
		l.Error("session_load_failed", "error", err)
		sess = nil
	}
	authed := !sess.Expired(time.Now())
	admin := authed && sess.IsAdmin()

	status := "You are logged out."
	if authed {
		if admin {
			status = sess.Who() + " (admin)"
		} else {
			status = sess.Who() + " (no admin rights)"
		}
	}

	records, err := h.Svc.List(ctx)
	if err != nil {
		l.Warn("list_failed", "error", err)
		records = nil
	}

	return c.Render(http.StatusOK, "admin.html", AdminData{
		Flash:   takeFlash(c),
		Authed:  authed,
		Admin:   admin,
		Status:  status,
		Burgers: records,
	})
}

func (h *PageHandler) AddBurger(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pages.add_burger")

	var req transport.CreateBurgerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_rejected", "status", 400, "reason", "invalid form", "error", err)
		setFlash(c, "error", "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	if err := h.Svc.Add(ctx, req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			l.Warn("add_rejected", "reason", "admin gate closed")
			setFlash(c, "error", "You must be an admin to add.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_rejected", "reason", err.Error())
			setFlash(c, "error", userMessage(err))
		default:
			l.Error("add_failed", "error", err)
			setFlash(c, "error", "Add failed: "+err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	l.Info("add_success")
	setFlash(c, "success", "Burger added!")
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *PageHandler) DeleteBurger(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pages.delete_burger")

	id := c.Param("id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			l.Warn("delete_rejected", "reason", "admin gate closed")
			setFlash(c, "error", "You must be an admin to delete.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("delete_rejected", "reason", err.Error())
			setFlash(c, "error", userMessage(err))
		default:
			l.Error("delete_failed", "error", err)
			setFlash(c, "error", "Delete failed: "+err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	l.Info("delete_success", "id", id)
	setFlash(c, "success", "Burger deleted")
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func userMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
