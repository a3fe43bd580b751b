package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

func newInternshipService(t *testing.T) (InternshipService, *recordingPublisher) {
	t.Helper()

	db := newTestDB(t)
	events := &recordingPublisher{}
	svc := NewInternshipService(repository.NewInternshipRepository(db), events, testValidator(), testLogger())
	return svc, events
}

func postInternship(t *testing.T, svc InternshipService, recruiterID uint, deadline *string) dto.InternshipResponse {
	t.Helper()

	internship, err := svc.Create(context.Background(), recruiterID, dto.InternshipCreateRequest{
		Title:               "Backend Intern",
		Company:             "Initech",
		Type:                "internship",
		Skills:              []string{"go", "sql"},
		ApplicationDeadline: deadline,
	})
	require.NoError(t, err)
	return internship
}

func TestInternshipServiceCreateRoundTripsSkills(t *testing.T) {
	svc, _ := newInternshipService(t)

	internship := postInternship(t, svc, 3, nil)
	require.Equal(t, uint(3), internship.PostedBy)
	require.Equal(t, []string{"go", "sql"}, internship.Skills)
	require.True(t, internship.IsActive)

	fetched, err := svc.Get(context.Background(), internship.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "sql"}, fetched.Skills)
	require.Empty(t, fetched.Requirements)
}

func TestInternshipServiceCreateRejectsBadDeadline(t *testing.T) {
	svc, _ := newInternshipService(t)

	garbage := "next tuesday"
	_, err := svc.Create(context.Background(), 3, dto.InternshipCreateRequest{
		Title:               "Backend Intern",
		Company:             "Initech",
		ApplicationDeadline: &garbage,
	})
	require.Error(t, err)
}

func TestInternshipServiceApplyOnce(t *testing.T) {
	svc, events := newInternshipService(t)
	internship := postInternship(t, svc, 3, nil)

	application, err := svc.Apply(context.Background(), internship.ID, 1, dto.ApplyRequest{
		CoverLetter: `Dear team,<img src=x onerror=alert(1)> I would love to join.`,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", application.Status)
	require.NotContains(t, application.CoverLetter, "onerror")
	require.Equal(t, "Initech", application.Internship.Company)
	require.Contains(t, events.subjects, "internship.applied")

	_, err = svc.Apply(context.Background(), internship.ID, 1, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrAlreadyApplied)

	_, err = svc.Apply(context.Background(), 9999, 1, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrInternshipNotFound)
}

func TestInternshipServiceApplyAfterDeadline(t *testing.T) {
	svc, _ := newInternshipService(t)

	past := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	internship := postInternship(t, svc, 3, &past)

	_, err := svc.Apply(context.Background(), internship.ID, 1, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrApplicationsClosed)
}

func TestInternshipServiceRecruiterOwnership(t *testing.T) {
	svc, _ := newInternshipService(t)
	internship := postInternship(t, svc, 3, nil)

	application, err := svc.Apply(context.Background(), internship.ID, 1, dto.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.ListApplicationsForInternship(context.Background(), internship.ID, 8)
	require.ErrorIs(t, err, ErrInternshipForbidden)

	applications, err := svc.ListApplicationsForInternship(context.Background(), internship.ID, 3)
	require.NoError(t, err)
	require.Len(t, applications, 1)

	_, err = svc.UpdateApplicationStatus(context.Background(), application.ID, 8, dto.ApplicationStatusUpdateRequest{Status: "shortlisted"})
	require.ErrorIs(t, err, ErrInternshipForbidden)

	updated, err := svc.UpdateApplicationStatus(context.Background(), application.ID, 3, dto.ApplicationStatusUpdateRequest{Status: "shortlisted"})
	require.NoError(t, err)
	require.Equal(t, "shortlisted", updated.Status)

	_, err = svc.UpdateApplicationStatus(context.Background(), application.ID, 3, dto.ApplicationStatusUpdateRequest{Status: "withdrawn"})
	require.Error(t, err)
}

func TestInternshipServiceListApplicationsForStudent(t *testing.T) {
	svc, _ := newInternshipService(t)
	internship := postInternship(t, svc, 3, nil)

	_, err := svc.Apply(context.Background(), internship.ID, 1, dto.ApplyRequest{})
	require.NoError(t, err)

	mine, err := svc.ListApplicationsForStudent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Backend Intern", mine[0].Internship.Title)

	none, err := svc.ListApplicationsForStudent(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, none)
}
