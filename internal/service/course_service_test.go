package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acharyaskillx/skillquestify-api/internal/dto"
	"github.com/acharyaskillx/skillquestify-api/internal/models"
	"github.com/acharyaskillx/skillquestify-api/internal/repository"
)

func newCourseService(t *testing.T) (CourseService, *recordingPublisher) {
	t.Helper()

	db := newTestDB(t)
	events := &recordingPublisher{}
	svc := NewCourseService(repository.NewCourseRepository(db), events, testValidator(), testLogger())
	return svc, events
}

func TestCourseServiceCreateSanitizesDescription(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.Create(context.Background(), 7, dto.CourseCreateRequest{
		Title:       "Distributed Systems",
		Description: `An intro course.<script>alert("x")</script>`,
		Level:       "intermediate",
	})
	require.NoError(t, err)
	require.Equal(t, uint(7), course.CreatedBy)
	require.NotContains(t, course.Description, "<script>")
	require.Contains(t, course.Description, "An intro course.")
	require.True(t, course.IsActive)
}

func TestCourseServiceEnrollOnce(t *testing.T) {
	svc, events := newCourseService(t)

	course, err := svc.Create(context.Background(), 7, dto.CourseCreateRequest{Title: "Distributed Systems"})
	require.NoError(t, err)

	enrollment, err := svc.Enroll(context.Background(), course.ID, 1)
	require.NoError(t, err)
	require.Equal(t, course.ID, enrollment.CourseID)
	require.Equal(t, uint(1), enrollment.StudentID)
	require.Zero(t, enrollment.Progress)
	require.Contains(t, events.subjects, "course.enrolled")

	_, err = svc.Enroll(context.Background(), course.ID, 1)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	_, err = svc.Enroll(context.Background(), 9999, 1)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseServiceUpdateProgress(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.Create(context.Background(), 7, dto.CourseCreateRequest{Title: "Distributed Systems"})
	require.NoError(t, err)
	enrollment, err := svc.Enroll(context.Background(), course.ID, 1)
	require.NoError(t, err)

	half := 50
	updated, err := svc.UpdateProgress(context.Background(), enrollment.ID, 1, dto.ProgressUpdateRequest{Progress: &half})
	require.NoError(t, err)
	require.Equal(t, 50, updated.Progress)
	require.Nil(t, updated.CompletedAt)

	full := 100
	updated, err = svc.UpdateProgress(context.Background(), enrollment.ID, 1, dto.ProgressUpdateRequest{Progress: &full})
	require.NoError(t, err)
	require.Equal(t, 100, updated.Progress)
	require.NotNil(t, updated.CompletedAt)

	_, err = svc.UpdateProgress(context.Background(), enrollment.ID, 99, dto.ProgressUpdateRequest{Progress: &half})
	require.ErrorIs(t, err, ErrEnrollmentForbidden)

	over := 150
	_, err = svc.UpdateProgress(context.Background(), enrollment.ID, 1, dto.ProgressUpdateRequest{Progress: &over})
	require.Error(t, err)
}

func TestCourseServiceListEnrollmentsIncludesCourse(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.Create(context.Background(), 7, dto.CourseCreateRequest{Title: "Distributed Systems", Category: "cs"})
	require.NoError(t, err)
	_, err = svc.Enroll(context.Background(), course.ID, 1)
	require.NoError(t, err)

	enrollments, err := svc.ListEnrollments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.Equal(t, "Distributed Systems", enrollments[0].Course.Title)

	none, err := svc.ListEnrollments(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestCourseServiceListSkipsInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(repository.NewCourseRepository(db), nil, testValidator(), testLogger())

	require.NoError(t, db.Create(&models.Course{Title: "Live", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Course{Title: "Retired", IsActive: false}).Error)

	courses, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Live", courses[0].Title)
}
