package voting

import (
	"sort"

	"github.com/google/uuid"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

// AnnotatedSnack is an optional snack decorated for the voting page.
type AnnotatedSnack struct {
	domain.Snack
	TotalVotes   int
	ReceivedVote bool
}

// BuildBallot partitions the catalog into mandatory and optional snacks,
// keeps only the optional snacks nominated this month, and annotates each
// survivor with its month-to-date vote total and whether the given user
// voted for it. Optional snacks are ordered by vote total descending;
// ties keep their catalog order. Mandatory snacks pass through untouched.
func BuildBallot(snacks []domain.Snack, nominations, ballots []domain.Record, userID uuid.UUID) ([]domain.Snack, []AnnotatedSnack) {
	nominated := nominatedSnackIDs(nominations)

	votesBySnack := make(map[int64]int)
	votedByUser := make(map[int64]bool)
	for _, ballot := range ballots {
		votesBySnack[ballot.SnackID]++
		if ballot.UserID == userID {
			votedByUser[ballot.SnackID] = true
		}
	}

	mandatory := []domain.Snack{}
	optional := []AnnotatedSnack{}
	for _, snack := range snacks {
		if !snack.Optional {
			mandatory = append(mandatory, snack)
			continue
		}
		if !nominated[snack.ID] {
			continue
		}
		optional = append(optional, AnnotatedSnack{
			Snack:        snack,
			TotalVotes:   votesBySnack[snack.ID],
			ReceivedVote: votedByUser[snack.ID],
		})
	}

	sort.SliceStable(optional, func(i, j int) bool {
		return optional[i].TotalVotes > optional[j].TotalVotes
	})

	return mandatory, optional
}

// UnnominatedSnacks returns the optional snacks that have not been nominated
// this month - the complement of BuildBallot's optional filter, used to
// drive the nomination page.
func UnnominatedSnacks(snacks []domain.Snack, nominations []domain.Record) []domain.Snack {
	nominated := nominatedSnackIDs(nominations)

	out := []domain.Snack{}
	for _, snack := range snacks {
		if snack.Optional && !nominated[snack.ID] {
			out = append(out, snack)
		}
	}
	return out
}

func nominatedSnackIDs(nominations []domain.Record) map[int64]bool {
	ids := make(map[int64]bool, len(nominations))
	for _, nomination := range nominations {
		ids[nomination.SnackID] = true
	}
	return ids
}
