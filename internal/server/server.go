package server

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zbmott/snafoo-challenge/internal/config"
	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/voting"
)

//go:embed templates/*.html
var templateFS embed.FS

// snackService is the slice of the voting service the handlers need.
type snackService interface {
	FetchBallot(ctx context.Context, userID uuid.UUID) (*voting.BallotPage, error)
	FetchNominationCandidates(ctx context.Context) (*voting.NominationCandidates, error)
	CastVote(ctx context.Context, userID uuid.UUID, snackID int64) error
	Nominate(ctx context.Context, userID uuid.UUID, snackID int64) error
	SuggestAndNominate(ctx context.Context, userID uuid.UUID, name, location string, latitude, longitude *float64) (*domain.Snack, error)
}

type quotaReader interface {
	Remaining(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) (int, error)
}

type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	voting    snackService
	quotas    quotaReader
	users     domain.UserRepository
	pool      *pgxpool.Pool
	rdb       *goredis.Client
	store     *sessions.CookieStore
	templates *template.Template
}

func NewServer(cfg *config.Config, votingService snackService, quotas quotaReader, users domain.UserRepository, pool *pgxpool.Pool, rdb *goredis.Client) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.AppEnv == "production",
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	s := &Server{
		echo:      e,
		cfg:       cfg,
		voting:    votingService,
		quotas:    quotas,
		users:     users,
		pool:      pool,
		rdb:       rdb,
		store:     store,
		templates: tmpl,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) Start() error {
	return s.echo.Start(":" + s.cfg.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router for httptest based tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (s *Server) renderPage(c echo.Context, status int, name string, data any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return s.render(c.Response(), name, data)
}
