package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreentity "plansync/core/entity"
	"plansync/modules/collab/entity"
)

var baseTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newProposal(createdOffset time.Duration) entity.TimeSlotProposal {
	return entity.TimeSlotProposal{
		BaseEntity: coreentity.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: baseTime.Add(createdOffset),
		},
		StartTime: baseTime.Add(24 * time.Hour),
		EndTime:   baseTime.Add(26 * time.Hour),
	}
}

func newLocation(name string, createdOffset time.Duration) entity.LocationProposal {
	return entity.LocationProposal{
		BaseEntity: coreentity.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: baseTime.Add(createdOffset),
		},
		Name: name,
	}
}

func slotVote(slotID uuid.UUID, pref int) entity.TimeSlotVote {
	return entity.TimeSlotVote{
		TimeSlotID: slotID,
		UserID:     uuid.New(),
		Preference: pref,
	}
}

func TestResolve_HighestScoreWins(t *testing.T) {
	// A: two fives (score 10), B: three fours (score 12). Raw score is the
	// primary key, so B wins despite A's higher per-vote intensity.
	a := newProposal(0)
	b := newProposal(time.Minute)
	votes := []entity.TimeSlotVote{
		slotVote(a.ID, 5), slotVote(a.ID, 5),
		slotVote(b.ID, 4), slotVote(b.ID, 4), slotVote(b.ID, 4),
	}

	outcome, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a, b}, votes, nil, nil)
	require.Nil(t, err)
	require.NotNil(t, outcome.WinningSlot)
	assert.Equal(t, b.ID, outcome.WinningSlot.ID)
	assert.Equal(t, entity.StatusConfirmed, outcome.Status)
}

func TestResolve_TieBreakByDistinctVoters(t *testing.T) {
	a := newProposal(0)
	b := newProposal(time.Minute)
	sharedVoter := uuid.New()
	votes := []entity.TimeSlotVote{
		// A: score 8 from two voters.
		{TimeSlotID: a.ID, UserID: sharedVoter, Preference: 5},
		{TimeSlotID: a.ID, UserID: uuid.New(), Preference: 3},
		// B: score 8 from three voters.
		{TimeSlotID: b.ID, UserID: uuid.New(), Preference: 3},
		{TimeSlotID: b.ID, UserID: uuid.New(), Preference: 3},
		{TimeSlotID: b.ID, UserID: uuid.New(), Preference: 2},
	}

	outcome, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a, b}, votes, nil, nil)
	require.Nil(t, err)
	require.NotNil(t, outcome.WinningSlot)
	assert.Equal(t, b.ID, outcome.WinningSlot.ID, "broader consensus beats intensity on equal score")
}

func TestResolve_TieBreakByEarliestCreated(t *testing.T) {
	later := newProposal(time.Hour)
	earlier := newProposal(0)
	votes := []entity.TimeSlotVote{
		slotVote(later.ID, 4),
		slotVote(earlier.ID, 4),
	}

	outcome, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{later, earlier}, votes, nil, nil)
	require.Nil(t, err)
	require.NotNil(t, outcome.WinningSlot)
	assert.Equal(t, earlier.ID, outcome.WinningSlot.ID)
}

func TestResolve_NoVotesCancels(t *testing.T) {
	a := newProposal(0)
	loc := newLocation("Cafe", 0)

	outcome, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a}, nil, []entity.LocationProposal{loc}, nil)
	require.Nil(t, err)
	assert.Nil(t, outcome.WinningSlot)
	assert.Nil(t, outcome.WinningLocation)
	assert.Equal(t, entity.StatusCancelled, outcome.Status)
}

func TestResolve_NoProposalsCancels(t *testing.T) {
	outcome, err := Resolve(&entity.CollaborativeEvent{}, nil, nil, nil, nil)
	require.Nil(t, err)
	assert.Equal(t, entity.StatusCancelled, outcome.Status)
}

func TestResolve_TimeWinnerWithoutLocationConfirms(t *testing.T) {
	a := newProposal(0)
	loc := newLocation("Park", 0)
	votes := []entity.TimeSlotVote{slotVote(a.ID, 5)}

	outcome, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a}, votes, []entity.LocationProposal{loc}, nil)
	require.Nil(t, err)
	require.NotNil(t, outcome.WinningSlot)
	assert.Nil(t, outcome.WinningLocation)
	assert.Equal(t, entity.StatusConfirmed, outcome.Status, "timing drives confirmation, location may stay open")
}

func TestResolve_LocationWinnerWithoutTimeCancels(t *testing.T) {
	loc := newLocation("Museum", 0)
	locVotes := []entity.LocationVote{
		{LocationID: loc.ID, UserID: uuid.New(), Preference: 5},
	}

	outcome, err := Resolve(&entity.CollaborativeEvent{}, nil, nil, []entity.LocationProposal{loc}, locVotes)
	require.Nil(t, err)
	assert.Nil(t, outcome.WinningSlot)
	require.NotNil(t, outcome.WinningLocation)
	assert.Equal(t, entity.StatusCancelled, outcome.Status)
}

func TestResolve_Idempotent(t *testing.T) {
	a := newProposal(0)
	b := newProposal(time.Minute)
	loc1 := newLocation("Cafe", 0)
	loc2 := newLocation("Bar", time.Minute)
	votes := []entity.TimeSlotVote{
		slotVote(a.ID, 3), slotVote(b.ID, 3),
	}
	locVotes := []entity.LocationVote{
		{LocationID: loc1.ID, UserID: uuid.New(), Preference: 2},
		{LocationID: loc2.ID, UserID: uuid.New(), Preference: 2},
	}

	proposals := []entity.TimeSlotProposal{a, b}
	locations := []entity.LocationProposal{loc1, loc2}

	first, err := Resolve(&entity.CollaborativeEvent{}, proposals, votes, locations, locVotes)
	require.Nil(t, err)
	second, err := Resolve(&entity.CollaborativeEvent{}, proposals, votes, locations, locVotes)
	require.Nil(t, err)

	require.NotNil(t, first.WinningSlot)
	require.NotNil(t, second.WinningSlot)
	assert.Equal(t, first.WinningSlot.ID, second.WinningSlot.ID)
	assert.Equal(t, first.WinningLocation.ID, second.WinningLocation.ID)
	assert.Equal(t, first.Status, second.Status)
}

func TestResolve_InvalidPreferenceRejected(t *testing.T) {
	a := newProposal(0)

	_, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a}, []entity.TimeSlotVote{slotVote(a.ID, 6)}, nil, nil)
	require.NotNil(t, err)

	_, err = Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a}, []entity.TimeSlotVote{slotVote(a.ID, 0)}, nil, nil)
	require.NotNil(t, err)
}

func TestResolve_InvalidProposalRejected(t *testing.T) {
	bad := newProposal(0)
	bad.EndTime = bad.StartTime.Add(-time.Hour)

	_, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{bad}, nil, nil, nil)
	require.NotNil(t, err)
}

func TestResolve_VoteForUnknownProposalIgnored(t *testing.T) {
	a := newProposal(0)
	votes := []entity.TimeSlotVote{
		slotVote(a.ID, 2),
		slotVote(uuid.New(), 5),
	}

	outcome, err := Resolve(&entity.CollaborativeEvent{}, []entity.TimeSlotProposal{a}, votes, nil, nil)
	require.Nil(t, err)
	require.NotNil(t, outcome.WinningSlot)
	assert.Equal(t, a.ID, outcome.WinningSlot.ID)
}
