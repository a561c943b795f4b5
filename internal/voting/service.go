package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/zbmott/snafoo-challenge/internal/catalog"
	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/quota"
)

// BallotPage is everything the voting page needs to render.
type BallotPage struct {
	Mandatory []domain.Snack
	Optional  []AnnotatedSnack
	// CatalogNotice carries the user-facing message when the catalog call
	// failed; both snack lists are empty in that case.
	CatalogNotice string
}

// NominationCandidates is everything the nomination page needs to render.
type NominationCandidates struct {
	Snacks        []domain.Snack
	CatalogNotice string
}

// Service orchestrates the nominate and vote flows. Catalog failures are
// translated at this boundary: reads degrade to empty lists with a notice,
// writes abort before any local record is created.
type Service struct {
	source  domain.SnackSource
	records domain.RecordRepository
	quotas  *quota.Counter
	clock   clockwork.Clock
	loc     *time.Location
}

func NewService(source domain.SnackSource, records domain.RecordRepository, quotas *quota.Counter, clock clockwork.Clock, loc *time.Location) *Service {
	return &Service{
		source:  source,
		records: records,
		quotas:  quotas,
		clock:   clock,
		loc:     loc,
	}
}

func (s *Service) monthStart() time.Time {
	return domain.MonthStart(s.clock.Now().In(s.loc))
}

// FetchBallot assembles the voting page for one user. A catalog failure
// yields empty lists and a notice instead of an error.
func (s *Service) FetchBallot(ctx context.Context, userID uuid.UUID) (*BallotPage, error) {
	snacks, err := s.source.List(ctx)
	if err != nil {
		var sourceErr *catalog.SourceError
		if errors.As(err, &sourceErr) {
			slog.Warn("Snack catalog unavailable for ballot", "error", err)
			return &BallotPage{Mandatory: []domain.Snack{}, Optional: []AnnotatedSnack{}, CatalogNotice: sourceErr.Message}, nil
		}
		return nil, fmt.Errorf("failed to list snacks: %w", err)
	}

	since := s.monthStart()
	nominations, err := s.records.CreatedSince(ctx, domain.KindNomination, since)
	if err != nil {
		return nil, err
	}
	ballots, err := s.records.CreatedSince(ctx, domain.KindBallot, since)
	if err != nil {
		return nil, err
	}

	mandatory, optional := BuildBallot(snacks, nominations, ballots, userID)
	return &BallotPage{Mandatory: mandatory, Optional: optional}, nil
}

// FetchNominationCandidates returns the optional snacks still open for
// nomination this month.
func (s *Service) FetchNominationCandidates(ctx context.Context) (*NominationCandidates, error) {
	snacks, err := s.source.List(ctx)
	if err != nil {
		var sourceErr *catalog.SourceError
		if errors.As(err, &sourceErr) {
			slog.Warn("Snack catalog unavailable for nomination page", "error", err)
			return &NominationCandidates{Snacks: []domain.Snack{}, CatalogNotice: sourceErr.Message}, nil
		}
		return nil, fmt.Errorf("failed to list snacks: %w", err)
	}

	nominations, err := s.records.CreatedSince(ctx, domain.KindNomination, s.monthStart())
	if err != nil {
		return nil, err
	}

	return &NominationCandidates{Snacks: UnnominatedSnacks(snacks, nominations)}, nil
}

// CastVote records one ballot and invalidates the user's vote quota entry.
// The quota branch itself (403 on exhaustion) lives in the handler.
func (s *Service) CastVote(ctx context.Context, userID uuid.UUID, snackID int64) error {
	if _, err := s.records.Create(ctx, domain.KindBallot, userID, snackID); err != nil {
		return err
	}
	s.quotas.Invalidate(ctx, domain.KindBallot, userID)
	return nil
}

// Nominate records a nomination for an already-cataloged snack and
// invalidates the user's nomination quota entry.
func (s *Service) Nominate(ctx context.Context, userID uuid.UUID, snackID int64) error {
	if _, err := s.records.Create(ctx, domain.KindNomination, userID, snackID); err != nil {
		return err
	}
	s.quotas.Invalidate(ctx, domain.KindNomination, userID)
	return nil
}

// SuggestAndNominate submits a new snack to the catalog and, only on
// success, records the nomination locally. A failed suggestion leaves no
// partial state behind.
func (s *Service) SuggestAndNominate(ctx context.Context, userID uuid.UUID, name, location string, latitude, longitude *float64) (*domain.Snack, error) {
	snack, err := s.source.Suggest(ctx, name, location, latitude, longitude)
	if err != nil {
		return nil, err
	}

	if err := s.Nominate(ctx, userID, snack.ID); err != nil {
		return nil, err
	}
	return snack, nil
}
