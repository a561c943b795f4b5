package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/auth/login", s.handleLoginPage)
	s.echo.POST("/auth/login", s.handleLogin)
	s.echo.POST("/auth/logout", s.handleLogout)

	authed := s.echo.Group("", s.requireAuth)
	authed.GET("/", s.handleIndex)
	authed.GET("/vote", s.handleVotePage)
	authed.POST("/vote", s.handleVoteSubmit)

	nominations := authed.Group("", s.requireNominationQuota)
	nominations.GET("/nominate", s.handleNominatePage)
	nominations.POST("/nominate", s.handleNominateSubmit)
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/vote")
}
