package route

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edupath/edupath-backend/internal/api/controller"
	"github.com/edupath/edupath-backend/internal/app"
	"github.com/edupath/edupath-backend/internal/model"
)

func NewBlogPostRouter(group *gin.RouterGroup, a *app.App, validate *validator.Validate, guard gin.HandlerFunc) {
	bc := &controller.BlogPostController{
		ResourceController: controller.ResourceController[*model.BlogPost]{
			Name:     "BlogPost",
			Store:    a.BlogPosts,
			Factory:  func() *model.BlogPost { return &model.BlogPost{} },
			Validate: validate,
			Cache:    a.Cache,
			CacheKey: "blogposts",
			CacheTTL: a.Config.Cache.TTL,
		},
	}
	bc.RegisterRoutes(group, "blogposts", guard)
}
