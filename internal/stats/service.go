// Package stats maintains the admin-dashboard counters and popularity
// rankings, fed by the created-record events.
package stats

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/event"
)

type Config struct {
	EventBus *event.Bus
	Redis    redis.UniversalClient
	Prefix   string
}

type Service struct {
	eb     *event.Bus
	redis  redis.UniversalClient
	prefix string
}

func NewService(c Config) *Service {
	s := &Service{
		eb:     c.EventBus,
		redis:  c.Redis,
		prefix: c.Prefix,
	}

	s.eb.Subscribe(domain.EventNameCourseCreated, func(ctx context.Context, e event.Event) error {
		return s.RecordCreated(ctx, e.(domain.EventCourseCreated).Course)
	})
	s.eb.Subscribe(domain.EventNameExamCreated, func(ctx context.Context, e event.Event) error {
		return s.RecordCreated(ctx, e.(domain.EventExamCreated).Exam)
	})

	return s
}

// RecordCreated bumps the per-kind total and inserts the record into the
// popularity ranking. Courses rank by rating, exams by enrollment.
func (s *Service) RecordCreated(ctx context.Context, r domain.Record) error {
	if err := s.redis.Incr(ctx, s.totalKey(r.Kind)).Err(); err != nil {
		return fmt.Errorf("incr total: %w", err)
	}

	score := r.Rating
	if r.Kind == domain.KindExam {
		score = float64(r.Enrolled)
	}

	if err := s.redis.ZAdd(ctx, s.rankingKey(r.Kind), redis.Z{
		Score:  score,
		Member: r.ID,
	}).Err(); err != nil {
		return fmt.Errorf("update ranking: %w", err)
	}

	return nil
}

type Entry struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Top returns the n highest-ranked records of a kind, best first.
func (s *Service) Top(ctx context.Context, kind domain.Kind, n int64) ([]Entry, error) {
	res, err := s.redis.ZRevRangeWithScores(ctx, s.rankingKey(kind), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("get ranking: %w", err)
	}

	entries := make([]Entry, 0, len(res))
	for _, z := range res {
		entries = append(entries, Entry{
			ID:    z.Member.(string),
			Score: z.Score,
		})
	}
	return entries, nil
}

type Overview struct {
	CoursesCreated int64 `json:"coursesCreated"`
	ExamsCreated   int64 `json:"examsCreated"`
}

// GetOverview returns the created-record totals since process start.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	courses, err := s.total(ctx, domain.KindCourse)
	if err != nil {
		return nil, err
	}
	exams, err := s.total(ctx, domain.KindExam)
	if err != nil {
		return nil, err
	}

	return &Overview{
		CoursesCreated: courses,
		ExamsCreated:   exams,
	}, nil
}

func (s *Service) total(ctx context.Context, kind domain.Kind) (int64, error) {
	n, err := s.redis.Get(ctx, s.totalKey(kind)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get total: %w", err)
	}
	return n, nil
}

func (s *Service) rankingKey(kind domain.Kind) string {
	return fmt.Sprintf("%s:%s:ranking", s.prefix, kind)
}

func (s *Service) totalKey(kind domain.Kind) string {
	return fmt.Sprintf("%s:%s:total", s.prefix, kind)
}
