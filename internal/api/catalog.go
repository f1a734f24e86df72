package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bioprephq/bioprep/internal/catalog"
	"github.com/bioprephq/bioprep/internal/domain"
)

type listQuery struct {
	Search string `form:"search"`
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
	View   string `form:"view"`
}

func (q listQuery) state() catalog.FilterState {
	state := catalog.FilterState{
		SearchTerm:   q.Search,
		ActiveFilter: q.Filter,
		SortBy:       catalog.SortKey(q.Sort),
		ViewMode:     catalog.ViewMode(q.View),
	}
	if state.ActiveFilter == "" {
		state.ActiveFilter = catalog.FilterAll
	}
	return state
}

func (a *API) handleListCourses(c *gin.Context) {
	a.handleList(c, domain.KindCourse)
}

func (a *API) handleListExams(c *gin.Context) {
	a.handleList(c, domain.KindExam)
}

func (a *API) handleList(c *gin.Context, kind domain.Kind) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid query"}})
		return
	}

	resp, err := a.catalog.List(c.Request.Context(), catalog.ListRequest{
		Kind:  kind,
		State: q.state(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":   resp.Plan,
		"facets": resp.Facets,
		"total":  resp.Total,
	})
}

func (a *API) handleGetCourse(c *gin.Context) {
	a.handleGet(c, domain.KindCourse)
}

func (a *API) handleGetExam(c *gin.Context) {
	a.handleGet(c, domain.KindExam)
}

func (a *API) handleGet(c *gin.Context, kind domain.Kind) {
	detail, err := a.catalog.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
