package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edupath/edupath-backend/internal/api/middleware"
	"github.com/edupath/edupath-backend/internal/app"
)

// SetupRoutes registers the full HTTP surface on r: the health check plus
// the /api group holding the resource CRUD, the store-backed collections
// and the auth endpoints.
func SetupRoutes(r *gin.Engine, a *app.App) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Server is running",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.RequestTimeout(a.Config.Server.RequestTimeout))

	validate := validator.New()
	adminGuard := middleware.RequireAdmin(a.Auth)

	// Course/blog mutations stay open unless auth.required is set, keeping
	// the published CRUD contract intact by default.
	var mutationGuard gin.HandlerFunc
	if a.Config.Auth.Required {
		mutationGuard = adminGuard
	}

	NewCourseRouter(api, a, validate, mutationGuard)
	NewBlogPostRouter(api, a, validate, mutationGuard)
	NewEnquiryRouter(api, a, validate, adminGuard)
	NewAuthRouter(api, a)
}
