package catalog

import (
	"slices"
	"strings"

	"github.com/bioprephq/bioprep/internal/domain"
)

// FilterAll is the synthetic filter id matching every record.
const FilterAll = "all"

type SortKey string

const (
	// SortPopular orders by rating, highest first.
	SortPopular SortKey = "popular"
	// SortNewest orders by calendar date, most recent first.
	SortNewest SortKey = "newest"
	// SortRecent is the exam-screen alias of SortNewest.
	SortRecent SortKey = "date"
	// SortUpcoming orders by calendar date, soonest first.
	SortUpcoming SortKey = "upcoming"

	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"

	SortDifficultyLow  SortKey = "difficulty-low"
	SortDifficultyHigh SortKey = "difficulty-high"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// FilterState is the set of user-controlled view parameters. It is pure view
// state and never mutates the records it is applied to.
type FilterState struct {
	SearchTerm   string
	ActiveFilter string
	SortBy       SortKey
	ViewMode     ViewMode
}

// ComputeVisible maps a raw record collection and a filter state to the
// ordered visible subset. The pipeline is strictly category filter, then
// search filter, then a stable sort, so equal sort keys keep their input
// order and repeated calls with identical inputs yield identical output.
func ComputeVisible(records []domain.Record, state FilterState) []domain.Record {
	visible := make([]domain.Record, 0, len(records))

	for _, r := range records {
		if !matchFilter(r, state.ActiveFilter) {
			continue
		}
		if !matchSearch(r, state.SearchTerm) {
			continue
		}
		visible = append(visible, r)
	}

	if cmp := comparator(state.SortBy); cmp != nil {
		slices.SortStableFunc(visible, cmp)
	}

	return visible
}

func matchFilter(r domain.Record, filter string) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	return slices.Contains(r.FacetKeys(), filter)
}

func matchSearch(r domain.Record, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	if r.Kind == domain.KindExam && strings.Contains(strings.ToLower(r.Type), term) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func comparator(key SortKey) func(a, b domain.Record) int {
	switch key {
	case SortPopular:
		return func(a, b domain.Record) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		}
	case SortNewest, SortRecent:
		return func(a, b domain.Record) int {
			return -compareDates(a, b)
		}
	case SortUpcoming:
		return compareDates
	case SortPriceLow:
		return func(a, b domain.Record) int {
			return a.Price.Cmp(b.Price)
		}
	case SortPriceHigh:
		return func(a, b domain.Record) int {
			return b.Price.Cmp(a.Price)
		}
	case SortDifficultyLow:
		return func(a, b domain.Record) int {
			return a.Difficulty.Rank() - b.Difficulty.Rank()
		}
	case SortDifficultyHigh:
		return func(a, b domain.Record) int {
			return b.Difficulty.Rank() - a.Difficulty.Rank()
		}
	}
	return nil
}

// compareDates orders records by calendar date ascending. Records without a
// parseable date sort after dated ones, keeping their input order.
func compareDates(a, b domain.Record) int {
	at, aok := a.DateValue()
	bt, bok := b.DateValue()

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return at.Compare(bt)
}

// FacetOption is a labeled filter chip with its record count.
type FacetOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Count int    `json:"count"`
}

// FacetCounts fills the counts of the given options against the unfiltered
// base collection. The counts are independent of the current search term,
// sort order and active filter, so the user can see how many records exist
// in categories they are not viewing.
func FacetCounts(records []domain.Record, options []FacetOption) []FacetOption {
	out := make([]FacetOption, len(options))
	copy(out, options)

	for i := range out {
		if out[i].ID == FilterAll {
			out[i].Count = len(records)
			continue
		}

		n := 0
		for _, r := range records {
			if slices.Contains(r.FacetKeys(), out[i].ID) {
				n++
			}
		}
		out[i].Count = n
	}

	return out
}

// CourseFacets is the fixed filter-option set of the course catalog screen.
func CourseFacets() []FacetOption {
	return []FacetOption{
		{ID: FilterAll, Label: "All Courses"},
		{ID: "hsc", Label: "HSC"},
		{ID: "varsity", Label: "Varsity"},
		{ID: "crash", Label: "Crash Course"},
		{ID: "medical", Label: "Medical"},
		{ID: "olympiad", Label: "Olympiad"},
	}
}

// ExamFacets is the fixed filter-option set of the exam catalog screen.
func ExamFacets() []FacetOption {
	return []FacetOption{
		{ID: FilterAll, Label: "All Exams", Icon: "📋"},
		{ID: "upcoming", Label: "Upcoming", Icon: "📅"},
		{ID: "completed", Label: "Completed", Icon: "✅"},
		{ID: "board", Label: "Board Exams", Icon: "🎓"},
		{ID: "medical", Label: "Medical", Icon: "⚕️"},
		{ID: "quiz", Label: "Quizzes", Icon: "❓"},
	}
}
