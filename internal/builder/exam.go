// Package builder holds the in-progress draft records behind the admin
// creation screens: the sectioned exam builder and the flat course form.
// Drafts are process-local and are discarded on submit or reset.
package builder

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
)

// Section names the ordered steps of the exam builder.
type Section string

const (
	SectionBasic        Section = "basic"
	SectionSchedule     Section = "schedule"
	SectionSettings     Section = "settings"
	SectionQuestions    Section = "questions"
	SectionInstructions Section = "instructions"
)

// ExamSections is the builder's step order.
func ExamSections() []Section {
	return []Section{
		SectionBasic,
		SectionSchedule,
		SectionSettings,
		SectionQuestions,
		SectionInstructions,
	}
}

const (
	minOptions      = 2
	defaultOptions  = 4
	defaultMarks    = "1"
	defaultQType    = domain.QuestionMCQ
	defaultQLevel   = "medium"
	defaultExamIcon = "📝"
)

// QuestionDraft is the in-progress question buffer. Marks is kept as the
// raw form input; invalid values default to 1 at commit time.
type QuestionDraft struct {
	Text       string              `json:"text"`
	Type       domain.QuestionType `json:"type"`
	Options    []string            `json:"options"`
	Marks      string              `json:"marks"`
	Difficulty string              `json:"difficulty"`

	// CorrectOption is the index of the marked correct option, -1 when
	// unset. Storing the position rather than the option text keeps the
	// marker attached when the option is edited afterwards.
	CorrectOption int `json:"correctOption"`

	// CorrectAnswer is the typed answer for question types without an
	// option list.
	CorrectAnswer string `json:"correctAnswer"`
}

func newQuestionDraft() QuestionDraft {
	return QuestionDraft{
		Type:          defaultQType,
		Options:       make([]string, defaultOptions),
		Marks:         defaultMarks,
		Difficulty:    defaultQLevel,
		CorrectOption: -1,
	}
}

// ExamDraft is the exam builder state: the assembled record, the active
// section, the tag input buffer and the question buffer.
type ExamDraft struct {
	ID      string        `json:"id"`
	Section Section       `json:"section"`
	Exam    domain.Record `json:"exam"`

	NewTag   string        `json:"newTag"`
	Question QuestionDraft `json:"question"`

	lastQuestionID int64
	now            func() time.Time
}

type ExamDraftOption func(*ExamDraft)

// WithNowFunc fixes the clock used for question id generation.
func WithNowFunc(now func() time.Time) ExamDraftOption {
	return func(d *ExamDraft) {
		d.now = now
	}
}

func NewExamDraft(id string, opts ...ExamDraftOption) *ExamDraft {
	d := &ExamDraft{
		ID:  id,
		now: time.Now,
	}
	d.reset()

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// snapshot returns a detached copy of the draft state, safe to read after
// the service lock is released.
func (d *ExamDraft) snapshot() *ExamDraft {
	c := *d
	c.Exam = d.Exam.Clone()
	c.Question.Options = slices.Clone(d.Question.Options)
	return &c
}

// reset returns the machine to its initial state: first section, empty
// defaulted draft, fresh question buffer.
func (d *ExamDraft) reset() {
	d.Section = SectionBasic
	d.Exam = domain.Record{
		Kind:              domain.KindExam,
		Status:            "upcoming",
		Icon:              defaultExamIcon,
		NegativeMarkValue: decimal.NewFromFloat(0.25),
		Tags:              []string{},
	}
	d.NewTag = ""
	d.Question = newQuestionDraft()
}

// Next moves to the following section; no-op at the last one.
func (d *ExamDraft) Next() {
	sections := ExamSections()
	i := slices.Index(sections, d.Section)
	if i >= 0 && i < len(sections)-1 {
		d.Section = sections[i+1]
	}
}

// Previous moves to the preceding section; no-op at the first one.
func (d *ExamDraft) Previous() {
	sections := ExamSections()
	i := slices.Index(sections, d.Section)
	if i > 0 {
		d.Section = sections[i-1]
	}
}

// JumpTo transitions directly to any section. Forward navigation is always
// permitted; completeness of earlier sections is advisory only.
func (d *ExamDraft) JumpTo(s Section) error {
	if !slices.Contains(ExamSections(), s) {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("unknown section %q", s))
	}
	d.Section = s
	return nil
}

// AddTag trims and appends the tag input. Empty input and exact duplicates
// (case-sensitive) are skipped without error.
func (d *ExamDraft) AddTag(tag string) {
	d.Exam.Tags = addTag(d.Exam.Tags, tag)
	d.NewTag = ""
}

// RemoveTag removes the first exact match.
func (d *ExamDraft) RemoveTag(tag string) {
	d.Exam.Tags = removeTag(d.Exam.Tags, tag)
}

// SetSchedule records the exam date and time window and derives the
// duration label when the window is well-formed.
func (d *ExamDraft) SetSchedule(date, startTime, endTime string) {
	d.Exam.Date = date
	if startTime == "" || endTime == "" {
		return
	}

	d.Exam.Time = fmt.Sprintf("%s - %s", startTime, endTime)

	start, err1 := time.Parse("15:04", startTime)
	end, err2 := time.Parse("15:04", endTime)
	if err1 != nil || err2 != nil {
		return
	}

	diff := end.Sub(start)
	if diff <= 0 {
		return
	}

	h := int(diff.Hours())
	m := int(diff.Minutes()) % 60
	switch {
	case h > 0 && m > 0:
		d.Exam.Duration = fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		d.Exam.Duration = fmt.Sprintf("%dh", h)
	default:
		d.Exam.Duration = fmt.Sprintf("%dm", m)
	}
}

// AddOption appends one empty option slot to the question buffer.
func (d *ExamDraft) AddOption() {
	d.Question.Options = append(d.Question.Options, "")
}

// RemoveOption removes the slot at index. Removal is refused once it would
// leave fewer than two slots, preserving a minimum viable choice set.
func (d *ExamDraft) RemoveOption(i int) error {
	opts := d.Question.Options
	if i < 0 || i >= len(opts) {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("option index %d out of range", i))
	}
	if len(opts) <= minOptions {
		return errors.New(errors.CodeFailedPrecondition,
			errors.WithMessagef("a question needs at least %d options", minOptions))
	}

	d.Question.Options = append(opts[:i:i], opts[i+1:]...)

	switch {
	case d.Question.CorrectOption == i:
		d.Question.CorrectOption = -1
	case d.Question.CorrectOption > i:
		d.Question.CorrectOption--
	}
	return nil
}

// SetOption updates the option text in place. The correct-answer marker is
// positional, so editing a marked option keeps it marked.
func (d *ExamDraft) SetOption(i int, text string) error {
	if i < 0 || i >= len(d.Question.Options) {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("option index %d out of range", i))
	}
	d.Question.Options[i] = text
	return nil
}

// MarkCorrect marks the option at index as the correct answer.
func (d *ExamDraft) MarkCorrect(i int) error {
	if i < 0 || i >= len(d.Question.Options) {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("option index %d out of range", i))
	}
	d.Question.CorrectOption = i
	return nil
}

// AddQuestion commits the question buffer to the draft's question list and
// resets the buffer. A buffer without question text is rejected with no
// state change. Choice-type questions keep only their non-empty options.
func (d *ExamDraft) AddQuestion() error {
	q := d.Question
	if trimmed(q.Text) == "" {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("question text is required"))
	}

	committed := domain.Question{
		ID:         d.nextQuestionID(),
		Text:       q.Text,
		Type:       q.Type,
		Marks:      parseMarks(q.Marks),
		Difficulty: q.Difficulty,
	}

	if q.Type.HasOptions() {
		if q.CorrectOption >= 0 && q.CorrectOption < len(q.Options) {
			committed.CorrectAnswer = trimmed(q.Options[q.CorrectOption])
		}
		for _, opt := range q.Options {
			if trimmed(opt) != "" {
				committed.Options = append(committed.Options, opt)
			}
		}
	} else {
		committed.CorrectAnswer = q.CorrectAnswer
	}

	d.Exam.Questions = append(d.Exam.Questions, committed)
	d.Question = newQuestionDraft()
	return nil
}

// RemoveQuestion removes a committed question by id.
func (d *ExamDraft) RemoveQuestion(id int64) {
	d.Exam.Questions = slices.DeleteFunc(d.Exam.Questions, func(q domain.Question) bool {
		return q.ID == id
	})
}

// nextQuestionID returns a millisecond timestamp, bumped when the clock has
// not advanced so ids stay unique within the draft.
func (d *ExamDraft) nextQuestionID() int64 {
	id := d.now().UnixMilli()
	if id <= d.lastQuestionID {
		id = d.lastQuestionID + 1
	}
	d.lastQuestionID = id
	return id
}

// Finalize recomputes the derived totals and returns the assembled record.
// The draft itself is untouched; Submit on the service resets it.
func (d *ExamDraft) Finalize() domain.Record {
	exam := d.Exam

	exam.TotalQuestions = len(exam.Questions)

	total := decimal.Zero
	for _, q := range exam.Questions {
		marks := q.Marks
		if marks.IsZero() {
			marks = decimal.NewFromInt(1)
		}
		total = total.Add(marks)
	}
	exam.TotalMarks = total

	return exam
}

// parseMarks parses a marks input, defaulting missing or invalid values
// to 1.
func parseMarks(s string) decimal.Decimal {
	v, err := decimal.NewFromString(trimmed(s))
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return v
}
