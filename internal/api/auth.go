package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bioprephq/bioprep/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin checks the fixed credential pair. Failures are part of the
// contract, not HTTP errors: the result object carries success and message.
func (a *API) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	result := a.auth.Login(c.Request.Context(), req.Email, req.Password)
	c.JSON(http.StatusOK, result)
}

func (a *API) handleRegister(c *gin.Context) {
	c.JSON(http.StatusOK, a.auth.Register(c.Request.Context()))
}

func (a *API) handleLogout(c *gin.Context) {
	if err := a.auth.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *API) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

func (a *API) handleStats(c *gin.Context) {
	if a.stats == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	ctx := c.Request.Context()

	overview, err := a.stats.GetOverview(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	topCourses, err := a.stats.Top(ctx, domain.KindCourse, 5)
	if err != nil {
		respondError(c, err)
		return
	}
	topExams, err := a.stats.Top(ctx, domain.KindExam, 5)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overview":   overview,
		"topCourses": topCourses,
		"topExams":   topExams,
	})
}
