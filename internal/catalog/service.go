package catalog

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
	"github.com/bioprephq/bioprep/internal/source"
	"github.com/bioprephq/bioprep/internal/store"
	"github.com/bioprephq/bioprep/internal/telemetry"
)

type Config struct {
	Source  source.Source
	Repo    store.Repository
	Metrics *telemetry.Metrics
	NowFunc func() time.Time
}

// Service answers the catalog list queries: source collection plus
// builder-created records, run through the filter pipeline and projected
// into a render plan.
type Service struct {
	src     source.Source
	repo    store.Repository
	metrics *telemetry.Metrics
	now     func() time.Time
}

func NewService(c Config) *Service {
	s := &Service{
		src:     c.Source,
		repo:    c.Repo,
		metrics: c.Metrics,
		now:     c.NowFunc,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type ListRequest struct {
	Kind  domain.Kind
	State FilterState
}

type ListResponse struct {
	Plan   RenderPlan
	Facets []FacetOption
	Total  int
}

// List computes the visible record set for one screen. A broken source
// degrades to an empty collection: the user sees "no records found", never
// an error page.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if s.metrics != nil {
		s.metrics.CatalogQueries.WithLabelValues(string(req.Kind)).Inc()
	}

	base := s.load(ctx, req.Kind)

	facets := CourseFacets()
	if req.Kind == domain.KindExam {
		facets = ExamFacets()
	}

	visible := ComputeVisible(base, req.State)

	return &ListResponse{
		Plan:   Project(visible, req.State.ViewMode, s.now()),
		Facets: FacetCounts(base, facets),
		Total:  len(visible),
	}, nil
}

// maxRelated caps the "you may also like" rail on the detail screen.
const maxRelated = 3

type Detail struct {
	Record  domain.Record   `json:"record"`
	Related []domain.Record `json:"related"`
}

// Get resolves one record by id from the merged collection, together with
// up to three related records sharing its grouping key, in collection
// order.
func (s *Service) Get(ctx context.Context, kind domain.Kind, id string) (*Detail, error) {
	if s.metrics != nil {
		s.metrics.CatalogQueries.WithLabelValues(string(kind)).Inc()
	}

	base := s.load(ctx, kind)

	i := slices.IndexFunc(base, func(r domain.Record) bool { return r.ID == id })
	if i < 0 {
		return nil, errors.New(errors.CodeNotFound,
			errors.WithMessagef("%s not found: %s", kind, id))
	}
	found := base[i]

	related := make([]domain.Record, 0, maxRelated)
	for _, r := range base {
		if len(related) == maxRelated {
			break
		}
		if r.ID != found.ID && relatedKey(r) == relatedKey(found) {
			related = append(related, r)
		}
	}

	return &Detail{Record: found, Related: related}, nil
}

// relatedKey groups records for the related rail: courses by level, exams
// by difficulty.
func relatedKey(r domain.Record) string {
	if r.Kind == domain.KindExam {
		return string(r.Difficulty)
	}
	return r.Level
}

func (s *Service) load(ctx context.Context, kind domain.Kind) []domain.Record {
	resource := source.ResourceCourses
	if kind == domain.KindExam {
		resource = source.ResourceExams
	}

	base, err := s.src.FetchCollection(ctx, resource)
	if err != nil {
		slog.ErrorContext(ctx, "catalog: fetch collection failed", "resource", resource, "error", err)
		base = nil
	}

	if s.repo != nil {
		created, err := s.repo.List(ctx, kind)
		if err != nil {
			slog.ErrorContext(ctx, "catalog: list created records failed", "kind", kind, "error", err)
		} else {
			base = append(base, created...)
		}
	}

	return base
}
