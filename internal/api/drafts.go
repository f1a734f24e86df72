package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bioprephq/bioprep/internal/builder"
	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
)

// ---- course form ----

func (a *API) handleNewCourseDraft(c *gin.Context) {
	c.JSON(http.StatusCreated, a.builder.NewCourseDraft())
}

func (a *API) handleGetCourseDraft(c *gin.Context) {
	d, err := a.builder.WithCourseDraft(c.Param("id"), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type updateCourseRequest struct {
	ID            *string  `json:"id"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Duration      *string  `json:"duration"`
	Level         *string  `json:"level"`
	Students      *string  `json:"students"`
	Color         *string  `json:"color"`
	Icon          *string  `json:"icon"`
	Path          *string  `json:"path"`
	Rating        *float64 `json:"rating"`
	Price         *string  `json:"price"`
	OriginalPrice *string  `json:"originalPrice"`
	NewTag        *string  `json:"newTag"`
}

func (a *API) handleUpdateCourseDraft(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	d, err := a.builder.WithCourseDraft(c.Param("id"), func(d *builder.CourseDraft) error {
		setString(&d.Course.ID, req.ID)
		setString(&d.Course.Title, req.Title)
		setString(&d.Course.Description, req.Description)
		setString(&d.Course.Duration, req.Duration)
		setString(&d.Course.Level, req.Level)
		setString(&d.Course.Students, req.Students)
		setString(&d.Course.Color, req.Color)
		setString(&d.Course.Icon, req.Icon)
		setString(&d.Course.Path, req.Path)
		setString(&d.NewTag, req.NewTag)
		if req.Rating != nil {
			d.Course.Rating = *req.Rating
		}
		if err := setDecimal(&d.Course.Price, req.Price); err != nil {
			return err
		}
		return setDecimal(&d.Course.OriginalPrice, req.OriginalPrice)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type tagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

func (a *API) handleAddCourseTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "tag is required"}})
		return
	}

	d, err := a.builder.WithCourseDraft(c.Param("id"), func(d *builder.CourseDraft) error {
		d.AddTag(req.Tag)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleRemoveCourseTag(c *gin.Context) {
	d, err := a.builder.WithCourseDraft(c.Param("id"), func(d *builder.CourseDraft) error {
		d.RemoveTag(c.Param("tag"))
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleCourseValidation(c *gin.Context) {
	d, err := a.builder.WithCourseDraft(c.Param("id"), nil)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := d.MissingFields()
	c.JSON(http.StatusOK, gin.H{
		"complete":      len(fields) == 0,
		"missingFields": fields,
	})
}

func (a *API) handleSubmitCourse(c *gin.Context) {
	id, course, err := a.builder.SubmitCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "course": course})
}

// ---- exam builder ----

func (a *API) handleNewExamDraft(c *gin.Context) {
	c.JSON(http.StatusCreated, a.builder.NewExamDraft())
}

func (a *API) handleGetExamDraft(c *gin.Context) {
	d, err := a.builder.WithExamDraft(c.Param("id"), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type updateExamRequest struct {
	ID                *string `json:"id"`
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	ExamType          *string `json:"examType"`
	Category          *string `json:"category"`
	Difficulty        *string `json:"difficulty"`
	Date              *string `json:"date"`
	StartTime         *string `json:"startTime"`
	EndTime           *string `json:"endTime"`
	MaxParticipants   *int    `json:"maxParticipants"`
	PassingMarks      *string `json:"passingMarks"`
	NegativeMarking   *bool   `json:"negativeMarking"`
	NegativeMarkValue *string `json:"negativeMarkValue"`
	Instructions      *string `json:"instructions"`
	Icon              *string `json:"icon"`
	Status            *string `json:"status"`
	NewTag            *string `json:"newTag"`
}

func (a *API) handleUpdateExamDraft(c *gin.Context) {
	var req updateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		setString(&d.Exam.ID, req.ID)
		setString(&d.Exam.Title, req.Title)
		setString(&d.Exam.Description, req.Description)
		setString(&d.Exam.Type, req.ExamType)
		setString(&d.Exam.Category, req.Category)
		setString(&d.Exam.Instructions, req.Instructions)
		setString(&d.Exam.Icon, req.Icon)
		setString(&d.Exam.Status, req.Status)
		setString(&d.NewTag, req.NewTag)
		if req.Difficulty != nil {
			d.Exam.Difficulty = domain.Difficulty(*req.Difficulty)
		}
		if req.MaxParticipants != nil {
			d.Exam.MaxParticipants = *req.MaxParticipants
		}
		if req.NegativeMarking != nil {
			d.Exam.NegativeMarking = *req.NegativeMarking
		}
		if err := setDecimal(&d.Exam.PassingMarks, req.PassingMarks); err != nil {
			return err
		}
		if err := setDecimal(&d.Exam.NegativeMarkValue, req.NegativeMarkValue); err != nil {
			return err
		}

		if req.Date != nil || req.StartTime != nil || req.EndTime != nil {
			date := d.Exam.Date
			if req.Date != nil {
				date = *req.Date
			}
			d.SetSchedule(date, deref(req.StartTime), deref(req.EndTime))
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type sectionRequest struct {
	Action  string `json:"action" binding:"required,oneof=next previous jump"`
	Section string `json:"section"`
}

func (a *API) handleExamSection(c *gin.Context) {
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "action must be next, previous or jump"}})
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		switch req.Action {
		case "next":
			d.Next()
		case "previous":
			d.Previous()
		case "jump":
			return d.JumpTo(builder.Section(req.Section))
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleAddExamTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "tag is required"}})
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		d.AddTag(req.Tag)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleRemoveExamTag(c *gin.Context) {
	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		d.RemoveTag(c.Param("tag"))
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type updateQuestionRequest struct {
	Text          *string `json:"text"`
	Type          *string `json:"type"`
	Marks         *string `json:"marks"`
	Difficulty    *string `json:"difficulty"`
	CorrectAnswer *string `json:"correctAnswer"`
}

func (a *API) handleUpdateQuestionBuffer(c *gin.Context) {
	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		setString(&d.Question.Text, req.Text)
		setString(&d.Question.Marks, req.Marks)
		setString(&d.Question.Difficulty, req.Difficulty)
		setString(&d.Question.CorrectAnswer, req.CorrectAnswer)
		if req.Type != nil {
			d.Question.Type = domain.QuestionType(*req.Type)
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleAddOption(c *gin.Context) {
	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		d.AddOption()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type optionRequest struct {
	Text string `json:"text"`
}

func (a *API) handleSetOption(c *gin.Context) {
	i, ok := optionIndex(c)
	if !ok {
		return
	}

	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		return d.SetOption(i, req.Text)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleRemoveOption(c *gin.Context) {
	i, ok := optionIndex(c)
	if !ok {
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		return d.RemoveOption(i)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleMarkCorrect(c *gin.Context) {
	i, ok := optionIndex(c)
	if !ok {
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		return d.MarkCorrect(i)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleAddQuestion(c *gin.Context) {
	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		return d.AddQuestion()
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleRemoveQuestion(c *gin.Context) {
	qid, err := strconv.ParseInt(c.Param("qid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "question id must be numeric"}})
		return
	}

	d, err := a.builder.WithExamDraft(c.Param("id"), func(d *builder.ExamDraft) error {
		d.RemoveQuestion(qid)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) handleExamValidation(c *gin.Context) {
	d, err := a.builder.WithExamDraft(c.Param("id"), nil)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := d.MissingFields()
	c.JSON(http.StatusOK, gin.H{
		"complete":      len(fields) == 0,
		"missingFields": fields,
	})
}

func (a *API) handleSubmitExam(c *gin.Context) {
	id, exam, err := a.builder.SubmitExam(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "exam": exam})
}

func (a *API) handleResetExamDraft(c *gin.Context) {
	if err := a.builder.ResetExam(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---- helpers ----

func optionIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "option index must be numeric"}})
		return 0, false
	}
	return i, true
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func setDecimal(dst *decimal.Decimal, src *string) error {
	if src == nil {
		return nil
	}
	v, err := decimal.NewFromString(*src)
	if err != nil {
		return errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("invalid number %q", *src),
			errors.WithCause(err),
		)
	}
	*dst = v
	return nil
}
