package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bioprephq/bioprep/internal/catalog"
	"github.com/bioprephq/bioprep/internal/domain"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 10, 10, 15, 30, 0, 0, time.UTC)

	tests := map[string]struct {
		date string
		want string
	}{
		"same day is today":         {date: "2024-10-10", want: "Today"},
		"next day is tomorrow":      {date: "2024-10-11", want: "Tomorrow"},
		"previous day is past":      {date: "2024-10-09", want: "Past"},
		"two days out":              {date: "2024-10-12", want: "2 days"},
		"a week out":                {date: "2024-10-17", want: "7 days"},
		"long past stays past":      {date: "2023-01-01", want: "Past"},
		"across a month boundary":   {date: "2024-11-01", want: "22 days"},
		"late evening now same day": {date: "2024-10-10", want: "Today"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)

			require.Equal(t, tt.want, catalog.DaysRemaining(now, d))
		})
	}
}

// Classification is calendar based: the same date pair must classify
// identically at one past midnight and one before the next.
func TestDaysRemaining_IgnoresTimeOfDay(t *testing.T) {
	date := time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)

	early := time.Date(2024, 10, 10, 0, 1, 0, 0, time.UTC)
	late := time.Date(2024, 10, 10, 23, 59, 0, 0, time.UTC)

	require.Equal(t, "Tomorrow", catalog.DaysRemaining(early, date))
	require.Equal(t, "Tomorrow", catalog.DaysRemaining(late, date))
}

func TestStarsFilled(t *testing.T) {
	tests := map[string]struct {
		rating float64
		want   int
	}{
		"whole rating":         {rating: 4.0, want: 4},
		"fraction rounds down": {rating: 4.9, want: 4},
		"just below whole":     {rating: 2.999, want: 2},
		"zero":                 {rating: 0, want: 0},
		"full five":            {rating: 5.0, want: 5},
		"above range clamps":   {rating: 7.3, want: 5},
		"negative clamps to 0": {rating: -1, want: 0},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, catalog.StarsFilled(tt.rating))
		})
	}
}

func TestEnrollmentPercent(t *testing.T) {
	tests := map[string]struct {
		enrolled int
		max      int
		want     int
	}{
		"half full":         {enrolled: 50, max: 100, want: 50},
		"rounds up":         {enrolled: 2, max: 3, want: 67},
		"rounds down":       {enrolled: 1, max: 3, want: 33},
		"zero capacity":     {enrolled: 10, max: 0, want: 0},
		"negative capacity": {enrolled: 10, max: -5, want: 0},
		"over capacity":     {enrolled: 120, max: 100, want: 120},
		"empty":             {enrolled: 0, max: 100, want: 0},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, catalog.EnrollmentPercent(tt.enrolled, tt.max))
		})
	}
}

func TestProject(t *testing.T) {
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	records := []domain.Record{
		{
			Kind:   domain.KindCourse,
			ID:     "hsc",
			Rating: 4.8,
			Tags:   []string{"Botany", "Zoology", "Genetics"},
		},
		{
			Kind:            domain.KindExam,
			ID:              "mock",
			Rating:          4.0,
			Date:            "2024-10-12",
			Enrolled:        180,
			MaxParticipants: 200,
		},
	}

	t.Run("grid cards carry a two-tag preview and derived fields", func(t *testing.T) {
		plan := catalog.Project(records, catalog.ViewGrid, now)

		require.Equal(t, catalog.ViewGrid, plan.ViewMode)
		require.Len(t, plan.Cards, 2)

		course := plan.Cards[0]
		require.Equal(t, []string{"Botany", "Zoology"}, course.TagsPreview)
		require.Equal(t, 4, course.StarsFilled)
		require.Empty(t, course.DaysRemaining)
		require.Zero(t, course.EnrollmentPercent)

		exam := plan.Cards[1]
		require.Equal(t, "2 days", exam.DaysRemaining)
		require.Equal(t, 90, exam.EnrollmentPercent)
	})

	t.Run("list cards show the full record without tag preview", func(t *testing.T) {
		plan := catalog.Project(records, catalog.ViewList, now)

		require.Equal(t, catalog.ViewList, plan.ViewMode)
		require.Empty(t, plan.Cards[0].TagsPreview)
	})

	t.Run("unknown view mode falls back to grid", func(t *testing.T) {
		plan := catalog.Project(records, catalog.ViewMode("mosaic"), now)
		require.Equal(t, catalog.ViewGrid, plan.ViewMode)
	})
}
