package service

import (
	"sort"
	"time"

	"plansync/core/constants"
	"plansync/core/errors"
	"plansync/modules/collab/entity"

	"github.com/google/uuid"
)

// ResolvedOutcome is the result of running consensus over an event's
// proposals and votes. A nil winner on an axis means that axis produced no
// signal; the event is cancelled only when both axes fail.
type ResolvedOutcome struct {
	Status          string
	WinningSlot     *entity.TimeSlotProposal
	WinningLocation *entity.LocationProposal
}

type candidate struct {
	id        uuid.UUID
	createdAt time.Time
}

type ballot struct {
	candidateID uuid.UUID
	userID      uuid.UUID
	preference  int
}

// Resolve selects the winning time slot and location for a collaborative
// event. It is a pure function of its inputs: re-running it over an
// unchanged snapshot yields the same winners, and it never touches storage.
func Resolve(
	event *entity.CollaborativeEvent,
	proposals []entity.TimeSlotProposal,
	votes []entity.TimeSlotVote,
	locationProposals []entity.LocationProposal,
	locationVotes []entity.LocationVote,
) (*ResolvedOutcome, *errors.AppError) {
	for _, p := range proposals {
		if p.EndTime.Before(p.StartTime) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "proposal ends before it starts", nil)
		}
	}
	for _, v := range votes {
		if v.Preference < constants.VotePreferenceMin || v.Preference > constants.VotePreferenceMax {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "vote preference out of range", nil)
		}
	}
	for _, v := range locationVotes {
		if v.Preference < constants.VotePreferenceMin || v.Preference > constants.VotePreferenceMax {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "vote preference out of range", nil)
		}
	}

	slotCandidates := make([]candidate, 0, len(proposals))
	for _, p := range proposals {
		slotCandidates = append(slotCandidates, candidate{id: p.ID, createdAt: p.CreatedAt})
	}
	slotBallots := make([]ballot, 0, len(votes))
	for _, v := range votes {
		slotBallots = append(slotBallots, ballot{candidateID: v.TimeSlotID, userID: v.UserID, preference: v.Preference})
	}

	locCandidates := make([]candidate, 0, len(locationProposals))
	for _, p := range locationProposals {
		locCandidates = append(locCandidates, candidate{id: p.ID, createdAt: p.CreatedAt})
	}
	locBallots := make([]ballot, 0, len(locationVotes))
	for _, v := range locationVotes {
		locBallots = append(locBallots, ballot{candidateID: v.LocationID, userID: v.UserID, preference: v.Preference})
	}

	outcome := &ResolvedOutcome{Status: entity.StatusCancelled}

	if winnerID, ok := pickWinner(slotCandidates, slotBallots); ok {
		for i := range proposals {
			if proposals[i].ID == winnerID {
				outcome.WinningSlot = &proposals[i]
				break
			}
		}
	}
	if winnerID, ok := pickWinner(locCandidates, locBallots); ok {
		for i := range locationProposals {
			if locationProposals[i].ID == winnerID {
				outcome.WinningLocation = &locationProposals[i]
				break
			}
		}
	}

	// Timing is the priority axis: a winning slot confirms the event even
	// when the location stays open for a later manual decision.
	if outcome.WinningSlot != nil {
		outcome.Status = entity.StatusConfirmed
	}

	return outcome, nil
}

// pickWinner applies the shared selection rule: highest summed preference
// wins; ties go to the proposal with more distinct voters, then to the
// earliest-created proposal.
func pickWinner(candidates []candidate, ballots []ballot) (uuid.UUID, bool) {
	if len(candidates) == 0 || len(ballots) == 0 {
		return uuid.Nil, false
	}

	scores := make(map[uuid.UUID]int, len(candidates))
	voters := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(candidates))
	known := make(map[uuid.UUID]struct{}, len(candidates))
	for _, c := range candidates {
		known[c.id] = struct{}{}
	}

	for _, b := range ballots {
		if _, ok := known[b.candidateID]; !ok {
			continue
		}
		scores[b.candidateID] += b.preference
		if voters[b.candidateID] == nil {
			voters[b.candidateID] = make(map[uuid.UUID]struct{})
		}
		voters[b.candidateID][b.userID] = struct{}{}
	}
	if len(scores) == 0 {
		return uuid.Nil, false
	}

	ordered := make([]candidate, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		si, sj := scores[ordered[i].id], scores[ordered[j].id]
		if si != sj {
			return si > sj
		}
		vi, vj := len(voters[ordered[i].id]), len(voters[ordered[j].id])
		if vi != vj {
			return vi > vj
		}
		return ordered[i].createdAt.Before(ordered[j].createdAt)
	})

	winner := ordered[0]
	if scores[winner.id] == 0 {
		return uuid.Nil, false
	}
	return winner.id, true
}
