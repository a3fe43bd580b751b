package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

func newCompetitionService(t *testing.T) (CompetitionService, *recordingPublisher) {
	t.Helper()

	db := newTestDB(t)
	events := &recordingPublisher{}
	svc := NewCompetitionService(repository.NewCompetitionRepository(db), events, testValidator(), testLogger())
	return svc, events
}

func createCompetition(t *testing.T, svc CompetitionService, deadline *string) dto.CompetitionResponse {
	t.Helper()

	competition, err := svc.Create(context.Background(), 5, dto.CompetitionCreateRequest{
		Title:                "Campus Hackathon",
		Type:                 "hackathon",
		Prizes:               []string{"laptop", "internship offer"},
		RegistrationDeadline: deadline,
	})
	require.NoError(t, err)
	return competition
}

func TestCompetitionServiceCreateParsesDates(t *testing.T) {
	svc, _ := newCompetitionService(t)

	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	raw := start.Format(time.RFC3339)
	competition, err := svc.Create(context.Background(), 5, dto.CompetitionCreateRequest{
		Title:     "Campus Hackathon",
		StartDate: &raw,
	})
	require.NoError(t, err)
	require.NotNil(t, competition.StartDate)
	require.True(t, competition.StartDate.Equal(start))
	require.Equal(t, uint(5), competition.OrganizedBy)

	garbage := "soon"
	_, err = svc.Create(context.Background(), 5, dto.CompetitionCreateRequest{
		Title:     "Campus Hackathon",
		StartDate: &garbage,
	})
	require.Error(t, err)
}

func TestCompetitionServiceRegisterOnce(t *testing.T) {
	svc, events := newCompetitionService(t)
	competition := createCompetition(t, svc, nil)

	registration, err := svc.Register(context.Background(), competition.ID, 1, dto.CompetitionRegisterRequest{
		TeamName:    "Segfault Hunters",
		TeamMembers: []string{"ada", "grace"},
	})
	require.NoError(t, err)
	require.Equal(t, "Segfault Hunters", registration.TeamName)
	require.Equal(t, []string{"ada", "grace"}, registration.TeamMembers)
	require.Equal(t, "Campus Hackathon", registration.Competition.Title)
	require.Contains(t, events.subjects, "competition.registered")

	_, err = svc.Register(context.Background(), competition.ID, 1, dto.CompetitionRegisterRequest{})
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	_, err = svc.Register(context.Background(), 9999, 1, dto.CompetitionRegisterRequest{})
	require.ErrorIs(t, err, ErrCompetitionNotFound)
}

func TestCompetitionServiceRegisterAfterDeadline(t *testing.T) {
	svc, _ := newCompetitionService(t)

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	competition := createCompetition(t, svc, &past)

	_, err := svc.Register(context.Background(), competition.ID, 1, dto.CompetitionRegisterRequest{})
	require.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestCompetitionServiceListRegistrations(t *testing.T) {
	svc, _ := newCompetitionService(t)
	competition := createCompetition(t, svc, nil)

	_, err := svc.Register(context.Background(), competition.ID, 1, dto.CompetitionRegisterRequest{})
	require.NoError(t, err)

	mine, err := svc.ListRegistrations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, competition.ID, mine[0].CompetitionID)

	none, err := svc.ListRegistrations(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, none)
}
