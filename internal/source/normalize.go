package source

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bioprephq/bioprep/internal/domain"
)

var (
	defaultRating = 4.5
	defaultPrice  = decimal.NewFromFloat(49.99)
)

// Normalize applies all record defaults once, at the ingestion boundary.
// Records in the raw collections carry optional fields; after Normalize a
// record is fully populated and renderable without per-field fallbacks.
func Normalize(kind domain.Kind, records []domain.Record) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		out = append(out, normalize(kind, r))
	}
	return out
}

func normalize(kind domain.Kind, r domain.Record) domain.Record {
	r.Kind = kind

	if r.ID == "" {
		r.ID = Slug(r.Title)
	}
	if r.Rating == 0 {
		r.Rating = defaultRating
	}
	if r.Tags != nil {
		r.Tags = dedupTags(r.Tags)
	}

	switch kind {
	case domain.KindCourse:
		if r.Price.IsZero() {
			r.Price = defaultPrice
		}
		if r.Students == "" {
			r.Students = "100+ students"
		}
		if r.Icon == "" {
			r.Icon = "🎓"
		}
		if r.Path == "" {
			r.Path = "/courses/" + r.ID
		}

	case domain.KindExam:
		if r.Status == "" {
			r.Status = "upcoming"
		}
		if r.Icon == "" {
			r.Icon = "📝"
		}
		if r.Path == "" {
			r.Path = "/exams/" + r.ID
		}
	}

	return r
}

// Slug derives a URL-safe id from a title.
func Slug(title string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	return strings.Join(fields, "-")
}

// dedupTags drops repeated tags, exact match, keeping first occurrence
// order.
func dedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
