package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zbmott/snafoo-challenge/internal/config"
	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/voting"
)

type mockVotingService struct {
	fetchBallot        func(ctx context.Context, userID uuid.UUID) (*voting.BallotPage, error)
	fetchCandidates    func(ctx context.Context) (*voting.NominationCandidates, error)
	castVote           func(ctx context.Context, userID uuid.UUID, snackID int64) error
	nominate           func(ctx context.Context, userID uuid.UUID, snackID int64) error
	suggestAndNominate func(ctx context.Context, userID uuid.UUID, name, location string, latitude, longitude *float64) (*domain.Snack, error)
}

func (m *mockVotingService) FetchBallot(ctx context.Context, userID uuid.UUID) (*voting.BallotPage, error) {
	if m.fetchBallot != nil {
		return m.fetchBallot(ctx, userID)
	}
	return &voting.BallotPage{}, nil
}

func (m *mockVotingService) FetchNominationCandidates(ctx context.Context) (*voting.NominationCandidates, error) {
	if m.fetchCandidates != nil {
		return m.fetchCandidates(ctx)
	}
	return &voting.NominationCandidates{}, nil
}

func (m *mockVotingService) CastVote(ctx context.Context, userID uuid.UUID, snackID int64) error {
	if m.castVote != nil {
		return m.castVote(ctx, userID, snackID)
	}
	return nil
}

func (m *mockVotingService) Nominate(ctx context.Context, userID uuid.UUID, snackID int64) error {
	if m.nominate != nil {
		return m.nominate(ctx, userID, snackID)
	}
	return nil
}

func (m *mockVotingService) SuggestAndNominate(ctx context.Context, userID uuid.UUID, name, location string, latitude, longitude *float64) (*domain.Snack, error) {
	if m.suggestAndNominate != nil {
		return m.suggestAndNominate(ctx, userID, name, location, latitude, longitude)
	}
	return &domain.Snack{ID: 1, Name: name}, nil
}

type mockQuotaReader struct {
	remaining func(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) (int, error)
}

func (m *mockQuotaReader) Remaining(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) (int, error) {
	if m.remaining != nil {
		return m.remaining(ctx, kind, userID)
	}
	return 3, nil
}

type mockUserRepository struct {
	upsert  func(ctx context.Context, username string) (*domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserRepository) Upsert(ctx context.Context, username string) (*domain.User, error) {
	if m.upsert != nil {
		return m.upsert(ctx, username)
	}
	now := time.Now()
	return &domain.User{ID: uuid.New(), Username: username, CreatedAt: now, UpdatedAt: now}, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:              "test",
		Port:                "8080",
		SessionSecret:       "test-secret-key-for-sessions",
		NominationsPerMonth: 1,
		VotesPerMonth:       3,
		QuotaCacheTTL:       5 * time.Minute,
	}
}

func newTestServer(t *testing.T, svc *mockVotingService, quotas *mockQuotaReader, users *mockUserRepository) *Server {
	t.Helper()
	if svc == nil {
		svc = &mockVotingService{}
	}
	if quotas == nil {
		quotas = &mockQuotaReader{}
	}
	if users == nil {
		users = &mockUserRepository{}
	}
	srv, err := NewServer(testConfig(), svc, quotas, users, nil, nil)
	require.NoError(t, err)
	return srv
}

// login performs a real login request and returns the session cookies
// to attach to subsequent requests.
func login(t *testing.T, srv *Server, username string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	return rec.Result().Cookies()
}

func doRequest(srv *Server, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}
