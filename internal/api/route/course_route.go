package route

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edupath/edupath-backend/internal/api/controller"
	"github.com/edupath/edupath-backend/internal/app"
	"github.com/edupath/edupath-backend/internal/model"
)

func NewCourseRouter(group *gin.RouterGroup, a *app.App, validate *validator.Validate, guard gin.HandlerFunc) {
	cc := &controller.ResourceController[*model.Course]{
		Name:     "Course",
		Store:    a.Courses,
		Factory:  func() *model.Course { return &model.Course{} },
		Validate: validate,
		Cache:    a.Cache,
		CacheKey: "courses",
		CacheTTL: a.Config.Cache.TTL,
	}
	cc.RegisterRoutes(group, "courses", guard)
}
