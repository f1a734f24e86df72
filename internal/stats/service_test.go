package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/event"
	"github.com/bioprephq/bioprep/internal/stats"
)

func TestService_RecordCreated(t *testing.T) {
	s := makeService(t)
	ctx := context.Background()

	require.NoError(t, s.RecordCreated(ctx, domain.Record{
		Kind: domain.KindCourse, ID: "hsc", Rating: 4.8,
	}))
	require.NoError(t, s.RecordCreated(ctx, domain.Record{
		Kind: domain.KindCourse, ID: "olympiad", Rating: 5.0,
	}))
	require.NoError(t, s.RecordCreated(ctx, domain.Record{
		Kind: domain.KindExam, ID: "mock", Enrolled: 180,
	}))

	overview, err := s.GetOverview(ctx)
	require.NoError(t, err)
	require.Equal(t, &stats.Overview{CoursesCreated: 2, ExamsCreated: 1}, overview)

	top, err := s.Top(ctx, domain.KindCourse, 10)
	require.NoError(t, err)
	require.Equal(t, []stats.Entry{
		{ID: "olympiad", Score: 5.0},
		{ID: "hsc", Score: 4.8},
	}, top, "courses rank by rating, best first")

	top, err = s.Top(ctx, domain.KindExam, 10)
	require.NoError(t, err)
	require.Equal(t, []stats.Entry{{ID: "mock", Score: 180}}, top,
		"exams rank by enrollment")
}

func TestService_EmptyOverview(t *testing.T) {
	s := makeService(t)

	overview, err := s.GetOverview(context.Background())
	require.NoError(t, err)
	require.Equal(t, &stats.Overview{}, overview)
}

func TestService_CountsCreatedEvents(t *testing.T) {
	eb := event.NewBus()
	s := makeService(t, withEventBus(eb))

	ctx := context.Background()
	eb.Publish(ctx, domain.EventCourseCreated{Course: domain.Record{
		Kind: domain.KindCourse, ID: "hsc", Rating: 4.8,
	}})
	eb.Publish(ctx, domain.EventExamCreated{Exam: domain.Record{
		Kind: domain.KindExam, ID: "mock", Enrolled: 50,
	}})

	eb.Stop()

	require.Eventually(t, func() bool {
		overview, err := s.GetOverview(ctx)
		if err != nil {
			return false
		}
		return overview.CoursesCreated == 1 && overview.ExamsCreated == 1
	}, time.Second, 10*time.Millisecond)
}

func makeService(t *testing.T, opts ...options) *stats.Service {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})
	require.NoError(t, rc.Ping(ctx).Err(), "should be able to ping redis")

	c := stats.Config{
		EventBus: event.NewBus(),
		Redis:    rc,
		Prefix:   "test",
	}

	for _, opt := range opts {
		opt(&c)
	}

	return stats.NewService(c)
}

type options func(c *stats.Config)

func withEventBus(eb *event.Bus) options {
	return func(c *stats.Config) {
		c.EventBus = eb
	}
}
