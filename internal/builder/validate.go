package builder

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
)

// Validation here is advisory: the UI disables its submit control while
// fields are missing, but the machine itself never blocks a transition or
// a submit on it.

var validate = validator.New(validator.WithRequiredStructEnabled())

type examRequirements struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	ExamType    string `validate:"required"`
	Difficulty  string `validate:"required"`
	Date        string `validate:"required"`
}

// MissingFields reports which required exam fields are still empty.
func (d *ExamDraft) MissingFields() []string {
	return missing(examRequirements{
		Title:       d.Exam.Title,
		Description: d.Exam.Description,
		ExamType:    d.Exam.Type,
		Difficulty:  string(d.Exam.Difficulty),
		Date:        d.Exam.Date,
	})
}

type courseRequirements struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Duration    string `validate:"required"`
	Level       string `validate:"required"`
}

// MissingFields reports which required course fields are still empty.
func (d *CourseDraft) MissingFields() []string {
	return missing(courseRequirements{
		Title:       d.Course.Title,
		Description: d.Course.Description,
		Duration:    d.Course.Duration,
		Level:       d.Course.Level,
	})
}

func missing(reqs any) []string {
	err := validate.Struct(reqs)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
