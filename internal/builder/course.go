package builder

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/source"
)

const (
	defaultCourseIcon   = "🎓"
	defaultCourseColor  = "from-emerald-500 to-teal-600"
	defaultCourseRating = 4.5
)

// CourseDraft is the flat course form. Unlike the exam builder it has no
// sections; everything lives on one page with the shared tag editor.
type CourseDraft struct {
	ID     string        `json:"id"`
	Course domain.Record `json:"course"`
	NewTag string        `json:"newTag"`
}

func NewCourseDraft(id string) *CourseDraft {
	d := &CourseDraft{ID: id}
	d.reset()
	return d
}

// snapshot returns a detached copy of the form state, safe to read after
// the service lock is released.
func (d *CourseDraft) snapshot() *CourseDraft {
	c := *d
	c.Course = d.Course.Clone()
	return &c
}

func (d *CourseDraft) reset() {
	d.Course = domain.Record{
		Kind:   domain.KindCourse,
		Rating: defaultCourseRating,
		Icon:   defaultCourseIcon,
		Color:  defaultCourseColor,
		Tags:   []string{},
	}
	d.NewTag = ""
}

func (d *CourseDraft) AddTag(tag string) {
	d.Course.Tags = addTag(d.Course.Tags, tag)
	d.NewTag = ""
}

func (d *CourseDraft) RemoveTag(tag string) {
	d.Course.Tags = removeTag(d.Course.Tags, tag)
}

// Finalize assembles the course record, defaulting the id to a slug of the
// title and the path to the course detail route.
func (d *CourseDraft) Finalize() domain.Record {
	course := d.Course

	if course.ID == "" {
		course.ID = source.Slug(course.Title)
	}
	if course.Path == "" {
		course.Path = "/courses/" + course.ID
	}
	if course.Price.IsZero() {
		course.Price = decimal.NewFromFloat(49.99)
	}

	return course
}

// addTag implements the shared tag-editor semantics: trim, skip empty,
// skip exact duplicates (case-sensitive), append in order.
func addTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// removeTag removes the first exact match.
func removeTag(tags []string, tag string) []string {
	for i, t := range tags {
		if t == tag {
			return append(tags[:i:i], tags[i+1:]...)
		}
	}
	return tags
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
