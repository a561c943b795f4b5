package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/voting"
)

type votePageData struct {
	Username             string
	Flashes              flashes
	Mandatory            []domain.Snack
	Optional             []voting.AnnotatedSnack
	CatalogNotice        string
	RemainingVotes       int
	RemainingNominations int
}

func (s *Server) handleVotePage(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	page, err := s.voting.FetchBallot(ctx, userID)
	if err != nil {
		slog.Error("fetching ballot", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load ballot")
	}

	votes, err := s.quotas.Remaining(ctx, domain.KindBallot, userID)
	if err != nil {
		slog.Error("reading vote quota", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load ballot")
	}
	nominations, err := s.quotas.Remaining(ctx, domain.KindNomination, userID)
	if err != nil {
		slog.Error("reading nomination quota", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load ballot")
	}

	return s.renderPage(c, http.StatusOK, "vote.html", votePageData{
		Username:             currentUsername(c),
		Flashes:              s.popFlashes(c),
		Mandatory:            page.Mandatory,
		Optional:             page.Optional,
		CatalogNotice:        page.CatalogNotice,
		RemainingVotes:       votes,
		RemainingNominations: nominations,
	})
}

func (s *Server) handleVoteSubmit(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	remaining, err := s.quotas.Remaining(ctx, domain.KindBallot, userID)
	if err != nil {
		slog.Error("reading vote quota", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not record vote")
	}
	if remaining < 1 {
		return echo.NewHTTPError(http.StatusForbidden, "Nice try! You're out of votes for the month!")
	}

	rawID := strings.TrimSpace(c.FormValue("snack_id"))
	if rawID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `POST data must contain "snack_id".`)
	}
	snackName := strings.TrimSpace(c.FormValue("snack_name"))
	if snackName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `POST data must contain "snack_name".`)
	}
	snackID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || snackID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, `"snack_id" must be a positive integer.`)
	}

	if err := s.voting.CastVote(ctx, userID, snackID); err != nil {
		slog.Error("recording vote", "snack_id", snackID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not record vote")
	}

	s.addFlash(c, flashSuccess, "Got it! You voted for "+snackName+".")
	return c.Redirect(http.StatusFound, "/vote")
}
