package voting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

func nomination(snackID int64) domain.Record {
	return domain.Record{Kind: domain.KindNomination, UserID: uuid.New(), SnackID: snackID}
}

func ballot(userID uuid.UUID, snackID int64) domain.Record {
	return domain.Record{Kind: domain.KindBallot, UserID: userID, SnackID: snackID}
}

func TestBuildBallot_PartitionsMandatoryAndOptional(t *testing.T) {
	snacks := []domain.Snack{
		{ID: 1, Name: "Coffee", Optional: false},
		{ID: 2, Name: "Pocky", Optional: true},
		{ID: 3, Name: "Granola", Optional: false},
	}
	nominations := []domain.Record{nomination(2)}

	mandatory, optional := BuildBallot(snacks, nominations, nil, uuid.New())

	require.Len(t, mandatory, 2)
	assert.Equal(t, "Coffee", mandatory[0].Name)
	assert.Equal(t, "Granola", mandatory[1].Name)
	require.Len(t, optional, 1)
	assert.Equal(t, "Pocky", optional[0].Name)
}

func TestBuildBallot_ExcludesUnnominatedOptionalSnacks(t *testing.T) {
	snacks := []domain.Snack{
		{ID: 1, Optional: true},
		{ID: 2, Optional: true},
	}
	nominations := []domain.Record{nomination(2)}

	_, optional := BuildBallot(snacks, nominations, nil, uuid.New())

	require.Len(t, optional, 1)
	assert.EqualValues(t, 2, optional[0].ID)
}

func TestBuildBallot_AnnotatesVoteTotalsAndOwnVotes(t *testing.T) {
	me := uuid.New()
	other := uuid.New()
	snacks := []domain.Snack{
		{ID: 1, Optional: true},
		{ID: 2, Optional: true},
	}
	nominations := []domain.Record{nomination(1), nomination(2)}
	ballots := []domain.Record{
		ballot(me, 1),
		ballot(other, 1),
		ballot(other, 2),
	}

	_, optional := BuildBallot(snacks, nominations, ballots, me)

	require.Len(t, optional, 2)
	// Snack 1 has two votes and sorts first.
	assert.EqualValues(t, 1, optional[0].ID)
	assert.Equal(t, 2, optional[0].TotalVotes)
	assert.True(t, optional[0].ReceivedVote)
	assert.EqualValues(t, 2, optional[1].ID)
	assert.Equal(t, 1, optional[1].TotalVotes)
	assert.False(t, optional[1].ReceivedVote)
}

func TestBuildBallot_SortIsStableDescending(t *testing.T) {
	snacks := []domain.Snack{
		{ID: 1, Name: "A", Optional: true},
		{ID: 2, Name: "B", Optional: true},
		{ID: 3, Name: "C", Optional: true},
	}
	nominations := []domain.Record{nomination(1), nomination(2), nomination(3)}

	voter := func(n int, snackID int64) []domain.Record {
		out := make([]domain.Record, n)
		for i := range out {
			out[i] = ballot(uuid.New(), snackID)
		}
		return out
	}

	// Votes A=3, B=1, C=0 in input order [A, B, C].
	var ballots []domain.Record
	ballots = append(ballots, voter(3, 1)...)
	ballots = append(ballots, voter(1, 2)...)

	_, optional := BuildBallot(snacks, nominations, ballots, uuid.New())

	require.Len(t, optional, 3)
	assert.Equal(t, "A", optional[0].Name)
	assert.Equal(t, "B", optional[1].Name)
	assert.Equal(t, "C", optional[2].Name)
}

func TestBuildBallot_TiesKeepCatalogOrder(t *testing.T) {
	snacks := []domain.Snack{
		{ID: 10, Name: "First", Optional: true},
		{ID: 20, Name: "Second", Optional: true},
		{ID: 30, Name: "Third", Optional: true},
	}
	nominations := []domain.Record{nomination(10), nomination(20), nomination(30)}
	ballots := []domain.Record{
		ballot(uuid.New(), 10),
		ballot(uuid.New(), 30),
	}

	_, optional := BuildBallot(snacks, nominations, ballots, uuid.New())

	require.Len(t, optional, 3)
	// First and Third tie at one vote each; First keeps its earlier slot.
	assert.Equal(t, "First", optional[0].Name)
	assert.Equal(t, "Third", optional[1].Name)
	assert.Equal(t, "Second", optional[2].Name)
}

func TestBuildBallot_NominatedButNeverVoted(t *testing.T) {
	snacks := []domain.Snack{{ID: 1, Optional: true}}
	nominations := []domain.Record{nomination(1)}

	_, optional := BuildBallot(snacks, nominations, nil, uuid.New())

	require.Len(t, optional, 1)
	assert.Equal(t, 0, optional[0].TotalVotes)
	assert.False(t, optional[0].ReceivedVote)
}

func TestBuildBallot_EmptyCatalog(t *testing.T) {
	mandatory, optional := BuildBallot(nil, nil, nil, uuid.New())
	assert.Empty(t, mandatory)
	assert.Empty(t, optional)
}

func TestUnnominatedSnacks_ComplementOfBallotFilter(t *testing.T) {
	snacks := []domain.Snack{
		{ID: 1, Name: "Coffee", Optional: false},
		{ID: 2, Name: "Pocky", Optional: true},
		{ID: 3, Name: "Mochi", Optional: true},
	}
	nominations := []domain.Record{nomination(2)}

	out := UnnominatedSnacks(snacks, nominations)

	require.Len(t, out, 1)
	assert.Equal(t, "Mochi", out[0].Name)
}

func TestUnnominatedSnacks_AllNominated(t *testing.T) {
	snacks := []domain.Snack{{ID: 1, Optional: true}}
	nominations := []domain.Record{nomination(1)}

	assert.Empty(t, UnnominatedSnacks(snacks, nominations))
}
