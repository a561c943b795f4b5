package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "snafoo_session"

	flashSuccess = "flash_success"
	flashWarning = "flash_warning"
	flashError   = "flash_error"
)

type flashes struct {
	Success []string
	Warning []string
	Error   []string
}

func (s *Server) addFlash(c echo.Context, category, message string) {
	session, _ := s.store.Get(c.Request(), sessionName)
	session.AddFlash(message, category)
	if err := session.Save(c.Request(), c.Response()); err != nil {
		slog.Error("saving session", "error", err)
	}
}

func (s *Server) popFlashes(c echo.Context) flashes {
	session, _ := s.store.Get(c.Request(), sessionName)
	out := flashes{}
	for _, v := range session.Flashes(flashSuccess) {
		if msg, ok := v.(string); ok {
			out.Success = append(out.Success, msg)
		}
	}
	for _, v := range session.Flashes(flashWarning) {
		if msg, ok := v.(string); ok {
			out.Warning = append(out.Warning, msg)
		}
	}
	for _, v := range session.Flashes(flashError) {
		if msg, ok := v.(string); ok {
			out.Error = append(out.Error, msg)
		}
	}
	if err := session.Save(c.Request(), c.Response()); err != nil {
		slog.Error("saving session", "error", err)
	}
	return out
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.store.Get(c.Request(), sessionName)
		if err != nil {
			return c.Redirect(http.StatusFound, "/auth/login")
		}
		raw, ok := session.Values["userID"].(string)
		if !ok {
			return c.Redirect(http.StatusFound, "/auth/login")
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Redirect(http.StatusFound, "/auth/login")
		}
		c.Set("userID", userID)
		if username, ok := session.Values["username"].(string); ok {
			c.Set("username", username)
		}
		return next(c)
	}
}

func currentUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get("userID").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func currentUsername(c echo.Context) string {
	if name, ok := c.Get("username").(string); ok {
		return name
	}
	return ""
}

type loginPageData struct {
	Flashes flashes
	Error   string
}

func (s *Server) handleLoginPage(c echo.Context) error {
	return s.renderPage(c, http.StatusOK, "login.html", loginPageData{Flashes: s.popFlashes(c)})
}

func (s *Server) handleLogin(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	if username == "" {
		return s.renderPage(c, http.StatusBadRequest, "login.html", loginPageData{Error: "Username is required."})
	}
	if len(username) > 150 {
		return s.renderPage(c, http.StatusBadRequest, "login.html", loginPageData{Error: "Username must be at most 150 characters."})
	}

	user, err := s.users.Upsert(c.Request().Context(), username)
	if err != nil {
		slog.Error("upserting user", "username", username, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not log in")
	}

	session, _ := s.store.Get(c.Request(), sessionName)
	session.Values["userID"] = user.ID.String()
	session.Values["username"] = user.Username
	if err := session.Save(c.Request(), c.Response()); err != nil {
		slog.Error("saving session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not log in")
	}

	return c.Redirect(http.StatusFound, "/vote")
}

func (s *Server) handleLogout(c echo.Context) error {
	session, _ := s.store.Get(c.Request(), sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response()); err != nil {
		slog.Error("saving session", "error", err)
	}
	return c.Redirect(http.StatusFound, "/auth/login")
}
