package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/markup"
	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/repository"
)

// BlogPostController adds public slug addressing on top of the generic CRUD
// handlers. The slug endpoint also carries the rendered article HTML so the
// public site does not reimplement the content convention.
type BlogPostController struct {
	ResourceController[*model.BlogPost]
}

// blogPostView is a BlogPost plus the rendered content.
type blogPostView struct {
	*model.BlogPost
	ContentHTML string `json:"contentHtml"`
}

// RegisterRoutes wires the CRUD endpoints plus GET /path/slug/:slug.
func (bc *BlogPostController) RegisterRoutes(rg *gin.RouterGroup, path string, guard gin.HandlerFunc) {
	// Static "slug" segment takes priority over the :id wildcard.
	rg.GET("/"+path+"/slug/:slug", bc.BySlug)
	bc.ResourceController.RegisterRoutes(rg, path, guard)
}

// BySlug handles GET /resource/slug/:slug for public article pages.
func (bc *BlogPostController) BySlug(c *gin.Context) {
	post, err := bc.Store.GetBy(c.Request.Context(), "slug", c.Param("slug"))
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "BlogPost not found"})
			return
		}
		logger.WithResource("controller", "blogpost").Errorf("fetch by slug failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching blogpost"})
		return
	}

	c.JSON(http.StatusOK, blogPostView{
		BlogPost:    post,
		ContentHTML: markup.Render(post.Content),
	})
}
