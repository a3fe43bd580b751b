package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	students       int64
	activeStudents int64
	courses        int64
	enrollments    int64
	internships    int64
	applications   int64
	err            error
}

func (f *fakeAnalyticsRepo) CountStudents(context.Context) (int64, error) {
	return f.students, f.err
}

func (f *fakeAnalyticsRepo) CountActiveStudents(context.Context) (int64, error) {
	return f.activeStudents, f.err
}

func (f *fakeAnalyticsRepo) CountCourses(context.Context) (int64, error) {
	return f.courses, f.err
}

func (f *fakeAnalyticsRepo) CountEnrollments(context.Context) (int64, error) {
	return f.enrollments, f.err
}

func (f *fakeAnalyticsRepo) CountInternships(context.Context) (int64, error) {
	return f.internships, f.err
}

func (f *fakeAnalyticsRepo) CountApplications(context.Context) (int64, error) {
	return f.applications, f.err
}

func TestAnalyticsServiceOverviewCaching(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	repo := &fakeAnalyticsRepo{students: 40, activeStudents: 12, courses: 6, enrollments: 25, internships: 4, applications: 9}
	svc := NewAnalyticsService(repo, client, time.Minute, testLogger())

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, int64(40), first.Students.Total)
	require.Equal(t, int64(12), first.Students.Active)
	require.Equal(t, int64(25), first.Courses.Enrollments)
	require.Equal(t, int64(9), first.Internships.Applications)

	repo.students = 99

	second, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, int64(40), second.Students.Total)

	server.FastForward(2 * time.Minute)

	third, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Equal(t, int64(99), third.Students.Total)
}

func TestAnalyticsServiceOverviewWithoutCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{students: 3, courses: 1}
	svc := NewAnalyticsService(repo, nil, time.Minute, testLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.False(t, overview.CacheHit)
	require.Equal(t, int64(3), overview.Students.Total)
	require.Equal(t, int64(1), overview.Courses.Total)
}

func TestAnalyticsServiceOverviewRepoError(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: context.DeadlineExceeded}
	svc := NewAnalyticsService(repo, nil, time.Minute, testLogger())

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}
