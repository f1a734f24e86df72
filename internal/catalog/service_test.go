package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bioprephq/bioprep/internal/catalog"
	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
	"github.com/bioprephq/bioprep/internal/source"
	"github.com/bioprephq/bioprep/internal/store"
)

type brokenSource struct{}

func (brokenSource) FetchCollection(context.Context, string) ([]domain.Record, error) {
	return nil, fmt.Errorf("collection endpoint down")
}

func TestService_List(t *testing.T) {
	s := catalog.NewService(catalog.Config{
		Source: source.Builtin(),
		Repo:   store.NewMemory(),
	})

	resp, err := s.List(context.Background(), catalog.ListRequest{
		Kind: domain.KindCourse,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Plan.Cards)
	require.Equal(t, len(resp.Plan.Cards), resp.Total)
	require.Equal(t, catalog.ViewGrid, resp.Plan.ViewMode)
	require.Len(t, resp.Facets, len(catalog.CourseFacets()))

	t.Run("exam screen gets the exam facet set", func(t *testing.T) {
		resp, err := s.List(context.Background(), catalog.ListRequest{
			Kind: domain.KindExam,
		})
		require.NoError(t, err)
		require.Len(t, resp.Facets, len(catalog.ExamFacets()))
	})
}

func TestService_List_MergesCreatedRecords(t *testing.T) {
	repo := store.NewMemory()
	s := catalog.NewService(catalog.Config{
		Source: source.NewStatic(map[string][]domain.Record{
			source.ResourceExams: {{Title: "Seeded Mock"}},
		}),
		Repo: repo,
	})

	_, err := repo.Save(context.Background(), domain.Record{
		Kind:   domain.KindExam,
		ID:     "fresh",
		Title:  "Freshly Built",
		Status: "upcoming",
	})
	require.NoError(t, err)

	resp, err := s.List(context.Background(), catalog.ListRequest{
		Kind: domain.KindExam,
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total, "created records appear alongside the seeded ones")

	t.Run("created records count in facets", func(t *testing.T) {
		var upcoming int
		for _, f := range resp.Facets {
			if f.ID == "upcoming" {
				upcoming = f.Count
			}
		}
		require.Equal(t, 2, upcoming)
	})
}

// A broken source is not an error page: the catalog degrades to whatever
// the repository holds, down to an empty list.
func TestService_List_SourceFailureDegrades(t *testing.T) {
	repo := store.NewMemory()
	s := catalog.NewService(catalog.Config{
		Source: brokenSource{},
		Repo:   repo,
	})

	resp, err := s.List(context.Background(), catalog.ListRequest{
		Kind: domain.KindCourse,
	})
	require.NoError(t, err)
	require.Zero(t, resp.Total)
	require.Empty(t, resp.Plan.Cards)

	_, err = repo.Save(context.Background(), domain.Record{
		Kind: domain.KindCourse, ID: "built", Title: "Built Anyway",
	})
	require.NoError(t, err)

	resp, err = s.List(context.Background(), catalog.ListRequest{
		Kind: domain.KindCourse,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
}

func TestService_Get(t *testing.T) {
	repo := store.NewMemory()
	s := catalog.NewService(catalog.Config{
		Source: source.NewStatic(map[string][]domain.Record{
			source.ResourceCourses: {
				{ID: "hsc", Title: "HSC Preparation", Level: "Intermediate"},
				{ID: "varsity", Title: "Varsity Admission", Level: "Advanced"},
				{ID: "board", Title: "Board Revision", Level: "Intermediate"},
				{ID: "model", Title: "Model Tests", Level: "Intermediate"},
				{ID: "retake", Title: "Retake Prep", Level: "Intermediate"},
				{ID: "extra", Title: "Extra Practice", Level: "Intermediate"},
			},
		}),
		Repo: repo,
	})

	detail, err := s.Get(context.Background(), domain.KindCourse, "hsc")
	require.NoError(t, err)
	require.Equal(t, "HSC Preparation", detail.Record.Title)

	ids := make([]string, 0, len(detail.Related))
	for _, r := range detail.Related {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"board", "model", "retake"}, ids,
		"same-level records in collection order, capped at three")

	t.Run("created records resolve and relate", func(t *testing.T) {
		_, err := repo.Save(context.Background(), domain.Record{
			Kind: domain.KindCourse, ID: "built", Title: "Built Course", Level: "Advanced",
		})
		require.NoError(t, err)

		detail, err := s.Get(context.Background(), domain.KindCourse, "built")
		require.NoError(t, err)
		require.Len(t, detail.Related, 1)
		require.Equal(t, "varsity", detail.Related[0].ID)
	})

	t.Run("exams relate by difficulty", func(t *testing.T) {
		s := catalog.NewService(catalog.Config{Source: source.Builtin()})

		detail, err := s.Get(context.Background(), domain.KindExam, "hsc-2024")
		require.NoError(t, err)
		require.Len(t, detail.Related, 3)
		for _, r := range detail.Related {
			require.Equal(t, detail.Record.Difficulty, r.Difficulty)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := s.Get(context.Background(), domain.KindCourse, "nope")
		require.Error(t, err)
		require.Equal(t, errors.CodeNotFound, errors.Convert(err).Code)
	})
}

func TestService_List_AppliesState(t *testing.T) {
	s := catalog.NewService(catalog.Config{
		Source: source.NewStatic(map[string][]domain.Record{
			source.ResourceCourses: {
				{ID: "hsc", Title: "HSC Preparation"},
				{ID: "varsity", Title: "Varsity Admission"},
			},
		}),
	})

	resp, err := s.List(context.Background(), catalog.ListRequest{
		Kind: domain.KindCourse,
		State: catalog.FilterState{
			SearchTerm: "varsity",
			ViewMode:   catalog.ViewList,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	require.Equal(t, catalog.ViewList, resp.Plan.ViewMode)
	require.Equal(t, "varsity", resp.Plan.Cards[0].Record.ID)

	t.Run("facet counts ignore the narrowing search", func(t *testing.T) {
		require.Equal(t, 2, resp.Facets[0].Count)
	})
}
