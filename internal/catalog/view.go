package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/bioprephq/bioprep/internal/domain"
)

const starSlots = 5

// Card is a single renderable catalog entry with its derived display fields.
type Card struct {
	Record domain.Record `json:"record"`

	// StarsFilled is the number of filled slots out of starSlots.
	// No half stars.
	StarsFilled int `json:"starsFilled"`

	// TagsPreview holds the tags shown on a grid card (at most two).
	TagsPreview []string `json:"tagsPreview,omitempty"`

	// DaysRemaining classifies the exam date relative to today.
	DaysRemaining string `json:"daysRemaining,omitempty"`

	// EnrollmentPercent is round(enrolled/max*100), 0 when max is 0.
	EnrollmentPercent int `json:"enrollmentPercent,omitempty"`
}

// RenderPlan selects one of the two layouts for a visible record set.
type RenderPlan struct {
	ViewMode ViewMode `json:"viewMode"`
	Cards    []Card   `json:"cards"`
}

// Project maps visible records to a render plan. It is a pure selection
// between the two layouts; the only data work is per-card derived fields.
func Project(records []domain.Record, mode ViewMode, now time.Time) RenderPlan {
	if mode != ViewList {
		mode = ViewGrid
	}

	plan := RenderPlan{
		ViewMode: mode,
		Cards:    make([]Card, 0, len(records)),
	}

	for _, r := range records {
		c := Card{
			Record:      r,
			StarsFilled: StarsFilled(r.Rating),
		}

		if mode == ViewGrid && len(r.Tags) > 0 {
			n := min(len(r.Tags), 2)
			c.TagsPreview = r.Tags[:n]
		}

		if r.Kind == domain.KindExam {
			if d, ok := r.DateValue(); ok {
				c.DaysRemaining = DaysRemaining(now, d)
			}
			c.EnrollmentPercent = EnrollmentPercent(r.Enrolled, r.MaxParticipants)
		}

		plan.Cards = append(plan.Cards, c)
	}

	return plan
}

// StarsFilled maps a rating in [0,5] to the filled star count.
func StarsFilled(rating float64) int {
	filled := int(math.Floor(rating))
	if filled < 0 {
		return 0
	}
	if filled > starSlots {
		return starSlots
	}
	return filled
}

// DaysRemaining classifies a calendar date relative to today. Both sides
// are truncated to calendar days first, so time-of-day never shifts the
// classification.
func DaysRemaining(now, date time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	days := int(day.Sub(today).Hours() / 24)
	switch {
	case days < 0:
		return "Past"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	}
	return fmt.Sprintf("%d days", days)
}

// EnrollmentPercent computes the rounded fill ratio of a capacity pair.
func EnrollmentPercent(enrolled, maxParticipants int) int {
	if maxParticipants <= 0 {
		return 0
	}
	return int(math.Round(float64(enrolled) / float64(maxParticipants) * 100))
}
