package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the two catalog collections.
type Kind string

const (
	KindCourse Kind = "course"
	KindExam   Kind = "exam"
)

// Difficulty is an ordered enumeration. Comparisons must go through Rank,
// not lexical order.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

var difficultyRank = map[Difficulty]int{
	DifficultyBeginner:     1,
	DifficultyIntermediate: 2,
	DifficultyAdvanced:     3,
	DifficultyExpert:       4,
}

// Rank returns the total-order position of a difficulty. Values outside the
// enumeration rank after every known value.
func (d Difficulty) Rank() int {
	if r, ok := difficultyRank[d]; ok {
		return r
	}
	return len(difficultyRank) + 1
}

// Record is a catalog entry, either a course or an exam. Collections are
// flat JSON arrays of this shape; optional fields are defaulted once at the
// ingestion boundary, never at render time.
type Record struct {
	Kind Kind `json:"-"`

	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`

	// Type is the exam type label ("Board", "Medical", ...). Courses carry
	// their discriminator in ID.
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`

	Difficulty Difficulty `json:"difficulty,omitempty"`
	Level      string     `json:"level,omitempty"`

	Rating        float64         `json:"rating,omitempty"`
	Price         decimal.Decimal `json:"price,omitempty"`
	OriginalPrice decimal.Decimal `json:"originalPrice,omitempty"`

	Duration string `json:"duration,omitempty"`
	Students string `json:"students,omitempty"`

	Enrolled        int `json:"enrolled,omitempty"`
	MaxParticipants int `json:"maxParticipants,omitempty"`

	// Date is the exam calendar date in ISO form (2006-01-02).
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	TotalQuestions int             `json:"totalQuestions,omitempty"`
	TotalMarks     decimal.Decimal `json:"totalMarks,omitempty"`
	PassingMarks   decimal.Decimal `json:"passingMarks,omitempty"`

	NegativeMarking   bool            `json:"negativeMarking,omitempty"`
	NegativeMarkValue decimal.Decimal `json:"negativeMarkValue,omitempty"`
	Instructions      string          `json:"instructions,omitempty"`

	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
	Path  string `json:"path,omitempty"`

	Questions []Question `json:"questions,omitempty"`
}

// Clone returns a copy with the tag slice, the question list and each
// question's options detached from the receiver.
func (r Record) Clone() Record {
	out := r
	out.Tags = slices.Clone(r.Tags)
	if r.Questions != nil {
		out.Questions = make([]Question, len(r.Questions))
		for i, q := range r.Questions {
			q.Options = slices.Clone(q.Options)
			out.Questions[i] = q
		}
	}
	return out
}

// DateValue parses the record's calendar date.
func (r Record) DateValue() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FacetKeys returns the filter ids this record matches. Courses are
// categorized by their ID and their category label; exams match their
// lifecycle status, their lowercased type label and their category.
func (r Record) FacetKeys() []string {
	keys := make([]string, 0, 3)

	if r.Kind == KindExam {
		if r.Status != "" {
			keys = append(keys, r.Status)
		}
		if r.Type != "" {
			keys = append(keys, strings.ToLower(r.Type))
		}
	} else {
		keys = append(keys, r.ID)
	}

	if r.Category != "" {
		keys = append(keys, strings.ToLower(r.Category))
	}
	return keys
}

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionTrueFalse QuestionType = "truefalse"
	QuestionShort     QuestionType = "short"
	QuestionEssay     QuestionType = "essay"
	QuestionMatching  QuestionType = "matching"
	QuestionNumerical QuestionType = "numerical"
)

// HasOptions reports whether the question type carries an option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionMCQ || t == QuestionMatching
}

// Question is a committed exam question. ID is a generation-order
// millisecond timestamp, unique within its exam.
type Question struct {
	ID            int64           `json:"id"`
	Text          string          `json:"text"`
	Type          QuestionType    `json:"type"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer string          `json:"correctAnswer,omitempty"`
	Marks         decimal.Decimal `json:"marks"`
	Difficulty    string          `json:"difficulty,omitempty"`
}

// User is the authenticated admin identity persisted as the session payload.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Avatar          string `json:"avatar,omitempty"`
	EnrolledCourses []int  `json:"enrolledCourses,omitempty"`
	Progress        int    `json:"progress,omitempty"`
}
