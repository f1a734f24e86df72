package builder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
	"github.com/bioprephq/bioprep/internal/event"
	"github.com/bioprephq/bioprep/internal/source"
	"github.com/bioprephq/bioprep/internal/store"
	"github.com/bioprephq/bioprep/internal/telemetry"
)

type Config struct {
	Repo     store.Repository
	EventBus *event.Bus
	Metrics  *telemetry.Metrics
	NowFunc  func() time.Time
}

// Service owns the live drafts. Every mutation goes through the service
// lock, and callers only ever receive snapshots taken under that lock, so
// a draft handed to one request is never mutated by another.
type Service struct {
	repo    store.Repository
	eb      *event.Bus
	metrics *telemetry.Metrics
	now     func() time.Time

	mu      sync.Mutex
	exams   map[string]*ExamDraft
	courses map[string]*CourseDraft
}

func NewService(c Config) *Service {
	s := &Service{
		repo:    c.Repo,
		eb:      c.EventBus,
		metrics: c.Metrics,
		now:     c.NowFunc,
		exams:   make(map[string]*ExamDraft),
		courses: make(map[string]*CourseDraft),
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// NewExamDraft opens a fresh exam builder and returns its state.
func (s *Service) NewExamDraft() *ExamDraft {
	d := NewExamDraft(uuid.New().String(), WithNowFunc(s.now))

	s.mu.Lock()
	s.exams[d.ID] = d
	s.mu.Unlock()

	return d.snapshot()
}

// WithExamDraft runs fn against the draft under the service lock and
// returns a snapshot of the resulting state.
func (s *Service) WithExamDraft(id string, fn func(d *ExamDraft) error) (*ExamDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.exams[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("exam draft not found: %s", id))
	}

	if fn != nil {
		if err := fn(d); err != nil {
			return nil, err
		}
	}
	return d.snapshot(), nil
}

// SubmitExam finalizes the draft, hands the record to the repository,
// publishes exam.created and loops the machine back to its initial state.
func (s *Service) SubmitExam(ctx context.Context, id string) (string, domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.exams[id]
	if !ok {
		return "", domain.Record{}, errors.New(errors.CodeNotFound,
			errors.WithMessagef("exam draft not found: %s", id))
	}

	exam := source.Normalize(domain.KindExam, []domain.Record{d.Finalize()})[0]

	recordID, err := s.repo.Save(ctx, exam)
	if err != nil {
		return "", domain.Record{}, err
	}
	exam.ID = recordID

	d.reset()

	if s.metrics != nil {
		s.metrics.RecordsCreated.WithLabelValues(string(domain.KindExam)).Inc()
	}
	if s.eb != nil {
		s.eb.Publish(ctx, domain.EventExamCreated{Exam: exam})
	}

	return recordID, exam, nil
}

// ResetExam returns the draft to its initial state after an explicit user
// confirmation.
func (s *Service) ResetExam(id string) error {
	_, err := s.WithExamDraft(id, func(d *ExamDraft) error {
		d.reset()
		return nil
	})
	return err
}

// NewCourseDraft opens a fresh course form.
func (s *Service) NewCourseDraft() *CourseDraft {
	d := NewCourseDraft(uuid.New().String())

	s.mu.Lock()
	s.courses[d.ID] = d
	s.mu.Unlock()

	return d.snapshot()
}

// WithCourseDraft runs fn against the draft under the service lock and
// returns a snapshot of the resulting state.
func (s *Service) WithCourseDraft(id string, fn func(d *CourseDraft) error) (*CourseDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.courses[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("course draft not found: %s", id))
	}

	if fn != nil {
		if err := fn(d); err != nil {
			return nil, err
		}
	}
	return d.snapshot(), nil
}

// SubmitCourse finalizes the course form, saves the record and publishes
// course.created.
func (s *Service) SubmitCourse(ctx context.Context, id string) (string, domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.courses[id]
	if !ok {
		return "", domain.Record{}, errors.New(errors.CodeNotFound,
			errors.WithMessagef("course draft not found: %s", id))
	}

	course := source.Normalize(domain.KindCourse, []domain.Record{d.Finalize()})[0]

	recordID, err := s.repo.Save(ctx, course)
	if err != nil {
		return "", domain.Record{}, err
	}
	course.ID = recordID

	d.reset()

	if s.metrics != nil {
		s.metrics.RecordsCreated.WithLabelValues(string(domain.KindCourse)).Inc()
	}
	if s.eb != nil {
		s.eb.Publish(ctx, domain.EventCourseCreated{Course: course})
	}

	return recordID, course, nil
}
