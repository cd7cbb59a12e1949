package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edupath/edupath-backend/internal/cache"
	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/repository"
)

// ResourceController provides the five CRUD handlers shared by both
// persisted resources. One instance per resource, parameterized by the
// store and a document factory.
type ResourceController[T repository.Document] struct {
	// Name is the display name used in response messages, e.g. "Course".
	Name     string
	Store    repository.Store[T]
	Factory  func() T
	Validate *validator.Validate

	// Cache, when set, serves the list endpoint read-through under CacheKey
	// and is invalidated by every mutation.
	Cache    cache.Cache
	CacheKey string
	CacheTTL time.Duration
}

// RegisterRoutes wires the CRUD endpoints onto rg. guard, when non-nil, is
// applied to the mutating routes only.
func (rc *ResourceController[T]) RegisterRoutes(rg *gin.RouterGroup, path string, guard gin.HandlerFunc) {
	rg.GET("/"+path, rc.List)
	rg.GET("/"+path+"/:id", rc.GetOne)

	mutating := rg.Group("")
	if guard != nil {
		mutating.Use(guard)
	}
	mutating.POST("/"+path, rc.Create)
	mutating.PUT("/"+path+"/:id", rc.Update)
	mutating.DELETE("/"+path+"/:id", rc.Delete)
}

// Create handles POST /resource: 201 with the stored record.
func (rc *ResourceController[T]) Create(c *gin.Context) {
	doc := rc.Factory()
	if err := c.ShouldBindJSON(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + rc.lower() + " payload"})
		return
	}

	doc.ApplyDefaults()
	if rc.Validate != nil {
		if err := rc.Validate.Struct(doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Invalid %s: %v", rc.lower(), err)})
			return
		}
	}

	created, err := rc.Store.Create(c.Request.Context(), doc)
	if err != nil {
		logger.WithResource("controller", rc.lower()).Errorf("create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating " + rc.lower()})
		return
	}

	rc.invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

// List handles GET /resource: 200 with the full collection.
func (rc *ResourceController[T]) List(c *gin.Context) {
	if body, ok := rc.cached(c.Request.Context()); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	docs, err := rc.Store.All(c.Request.Context())
	if err != nil {
		logger.WithResource("controller", rc.lower()).Errorf("list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching " + rc.lower() + "s"})
		return
	}

	rc.fill(c.Request.Context(), docs)
	c.JSON(http.StatusOK, docs)
}

// GetOne handles GET /resource/:id: 200, or 404 when the identifier is
// absent.
func (rc *ResourceController[T]) GetOne(c *gin.Context) {
	doc, err := rc.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		rc.renderError(c, err, "fetching")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Update handles PUT /resource/:id: merges the provided fields, 200 with
// the updated record.
func (rc *ResourceController[T]) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + rc.lower() + " payload"})
		return
	}

	updated, err := rc.Store.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		rc.renderError(c, err, "updating")
		return
	}

	rc.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /resource/:id: 200 with a confirmation message.
func (rc *ResourceController[T]) Delete(c *gin.Context) {
	if _, err := rc.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		rc.renderError(c, err, "deleting")
		return
	}

	rc.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": rc.Name + " deleted"})
}

func (rc *ResourceController[T]) renderError(c *gin.Context, err error, verb string) {
	if repository.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"message": rc.Name + " not found"})
		return
	}
	logger.WithResource("controller", rc.lower()).Errorf("%s failed: %v", verb, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Error " + verb + " " + rc.lower()})
}

func (rc *ResourceController[T]) lower() string {
	return strings.ToLower(rc.Name)
}

func (rc *ResourceController[T]) cached(ctx context.Context) ([]byte, bool) {
	if rc.Cache == nil {
		return nil, false
	}
	body, err := rc.Cache.Get(ctx, rc.CacheKey)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (rc *ResourceController[T]) fill(ctx context.Context, docs []T) {
	if rc.Cache == nil {
		return
	}
	body, err := json.Marshal(docs)
	if err != nil {
		return
	}
	if err := rc.Cache.Set(ctx, rc.CacheKey, body, rc.CacheTTL); err != nil {
		logger.WithResource("controller", rc.lower()).Warnf("cache set failed: %v", err)
	}
}

func (rc *ResourceController[T]) invalidate(ctx context.Context) {
	if rc.Cache == nil {
		return
	}
	if err := rc.Cache.Delete(ctx, rc.CacheKey); err != nil {
		logger.WithResource("controller", rc.lower()).Warnf("cache invalidation failed: %v", err)
	}
}
