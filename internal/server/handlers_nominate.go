package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zbmott/snafoo-challenge/internal/catalog"
	"github.com/zbmott/snafoo-challenge/internal/domain"
)

// snackIDDelimiter joins a snack's id and name in the nomination
// dropdown so a single form field carries both.
const snackIDDelimiter = "--DELIM--"

type nominatePageData struct {
	Username      string
	Flashes       flashes
	Snacks        []domain.Snack
	CatalogNotice string
	Form          *NominationForm
	FormErrors    []string
	Delimiter     string
}

// requireNominationQuota bounces users who have no nominations left
// this month back to the ballot before the page or submission runs.
func (s *Server) requireNominationQuota(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		remaining, err := s.quotas.Remaining(c.Request().Context(), domain.KindNomination, currentUserID(c))
		if err != nil {
			slog.Error("reading nomination quota", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "could not check nomination quota")
		}
		if remaining < 1 {
			s.addFlash(c, flashWarning, "Sorry, you don't have any nominations left. Try again next month!")
			return c.Redirect(http.StatusFound, "/vote")
		}
		return next(c)
	}
}

func (s *Server) handleNominatePage(c echo.Context) error {
	candidates, err := s.voting.FetchNominationCandidates(c.Request().Context())
	if err != nil {
		slog.Error("fetching nomination candidates", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load nomination page")
	}
	return s.renderPage(c, http.StatusOK, "nominate.html", nominatePageData{
		Username:      currentUsername(c),
		Flashes:       s.popFlashes(c),
		Snacks:        candidates.Snacks,
		CatalogNotice: candidates.CatalogNotice,
		Form:          &NominationForm{},
		Delimiter:     snackIDDelimiter,
	})
}

func (s *Server) handleNominateSubmit(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	// The dropdown posts "<id>--DELIM--<name>"; the free-form fields
	// post a name and purchase location instead. Exactly one path runs.
	if raw := strings.TrimSpace(c.FormValue("snack_id")); raw != "" {
		id, name, ok := splitSnackID(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, `"snack_id" must be of the form "<id>`+snackIDDelimiter+`<name>".`)
		}
		if err := s.voting.Nominate(ctx, userID, id); err != nil {
			slog.Error("recording nomination", "snack_id", id, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "could not record nomination")
		}
		s.addFlash(c, flashSuccess, "Thanks for nominating "+name+"! Great suggestion!")
		return c.Redirect(http.StatusFound, "/vote")
	}

	form := bindNominationForm(c)
	if formErrors := form.Validate(); len(formErrors) > 0 {
		return s.renderNominateWithErrors(c, form, formErrors)
	}

	snack, err := s.voting.SuggestAndNominate(ctx, userID, form.Name, form.Location, form.Latitude, form.Longitude)
	if err != nil {
		var srcErr *catalog.SourceError
		if errors.As(err, &srcErr) {
			return s.renderNominateWithErrors(c, form, []string{srcErr.Message})
		}
		slog.Error("suggesting snack", "name", form.Name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not record nomination")
	}

	s.addFlash(c, flashSuccess, "Thanks for nominating "+snack.Name+"! Great suggestion!")
	return c.Redirect(http.StatusFound, "/vote")
}

func (s *Server) renderNominateWithErrors(c echo.Context, form *NominationForm, formErrors []string) error {
	candidates, err := s.voting.FetchNominationCandidates(c.Request().Context())
	if err != nil {
		slog.Error("fetching nomination candidates", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load nomination page")
	}
	return s.renderPage(c, http.StatusOK, "nominate.html", nominatePageData{
		Username:      currentUsername(c),
		Flashes:       s.popFlashes(c),
		Snacks:        candidates.Snacks,
		CatalogNotice: candidates.CatalogNotice,
		Form:          form,
		FormErrors:    formErrors,
		Delimiter:     snackIDDelimiter,
	})
}

func splitSnackID(raw string) (int64, string, bool) {
	parts := strings.SplitN(raw, snackIDDelimiter, 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id < 1 {
		return 0, "", false
	}
	return id, parts[1], true
}
