package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bioprephq/bioprep/internal/auth"
	"github.com/bioprephq/bioprep/internal/builder"
	"github.com/bioprephq/bioprep/internal/catalog"
	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
	"github.com/bioprephq/bioprep/internal/event"
	"github.com/bioprephq/bioprep/internal/stats"
)

type Config struct {
	Router       gin.IRouter
	EventBus     *event.Bus
	Auth         *auth.Service
	Catalog      *catalog.Service
	Builder      *builder.Service
	Stats        *stats.Service
	Redis        Redis
	PubsubPrefix string
}

type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type API struct {
	auth    *auth.Service
	catalog *catalog.Service
	builder *builder.Service
	stats   *stats.Service

	redis  Redis
	prefix string
}

func New(c Config) *API {
	a := &API{
		auth:    c.Auth,
		catalog: c.Catalog,
		builder: c.Builder,
		stats:   c.Stats,
		redis:   c.Redis,
		prefix:  c.PubsubPrefix,
	}

	a.registerRoutes(c.Router)

	// Notify subscribed dashboards about freshly created records.
	if a.redis != nil {
		c.EventBus.Subscribe(domain.EventNameCourseCreated, func(ctx context.Context, e event.Event) error {
			return a.PublishRecordCreated(ctx, e.Name(), e.(domain.EventCourseCreated).Course)
		})
		c.EventBus.Subscribe(domain.EventNameExamCreated, func(ctx context.Context, e event.Event) error {
			return a.PublishRecordCreated(ctx, e.Name(), e.(domain.EventExamCreated).Exam)
		})
	}

	return a
}

func (a *API) registerRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")

	// Public surface.
	v1.POST("/auth/login", a.handleLogin)
	v1.POST("/auth/register", a.handleRegister)
	v1.POST("/auth/logout", a.handleLogout)
	v1.GET("/courses", a.handleListCourses)
	v1.GET("/courses/:id", a.handleGetCourse)
	v1.GET("/exams", a.handleListExams)
	v1.GET("/exams/:id", a.handleGetExam)

	// Guarded admin subtree.
	admin := v1.Group("/admin", a.Guard())
	admin.GET("/me", a.handleMe)
	admin.GET("/stats", a.handleStats)

	admin.POST("/courses/drafts", a.handleNewCourseDraft)
	admin.GET("/courses/drafts/:id", a.handleGetCourseDraft)
	admin.PATCH("/courses/drafts/:id", a.handleUpdateCourseDraft)
	admin.POST("/courses/drafts/:id/tags", a.handleAddCourseTag)
	admin.DELETE("/courses/drafts/:id/tags/:tag", a.handleRemoveCourseTag)
	admin.GET("/courses/drafts/:id/validation", a.handleCourseValidation)
	admin.POST("/courses/drafts/:id/submit", a.handleSubmitCourse)

	admin.POST("/exams/drafts", a.handleNewExamDraft)
	admin.GET("/exams/drafts/:id", a.handleGetExamDraft)
	admin.PATCH("/exams/drafts/:id", a.handleUpdateExamDraft)
	admin.POST("/exams/drafts/:id/section", a.handleExamSection)
	admin.POST("/exams/drafts/:id/tags", a.handleAddExamTag)
	admin.DELETE("/exams/drafts/:id/tags/:tag", a.handleRemoveExamTag)
	admin.PATCH("/exams/drafts/:id/question", a.handleUpdateQuestionBuffer)
	admin.POST("/exams/drafts/:id/question/options", a.handleAddOption)
	admin.PUT("/exams/drafts/:id/question/options/:index", a.handleSetOption)
	admin.DELETE("/exams/drafts/:id/question/options/:index", a.handleRemoveOption)
	admin.POST("/exams/drafts/:id/question/options/:index/correct", a.handleMarkCorrect)
	admin.POST("/exams/drafts/:id/questions", a.handleAddQuestion)
	admin.DELETE("/exams/drafts/:id/questions/:qid", a.handleRemoveQuestion)
	admin.GET("/exams/drafts/:id/validation", a.handleExamValidation)
	admin.POST("/exams/drafts/:id/submit", a.handleSubmitExam)
	admin.DELETE("/exams/drafts/:id", a.handleResetExamDraft)
}

func respondError(c *gin.Context, err error) {
	e := errors.Convert(err)
	c.JSON(e.HTTPStatusCode(), gin.H{"error": e})
}
