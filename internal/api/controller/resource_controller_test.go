package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edupath-backend/internal/cache"
	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/repository"
)

func newCourseRouter(t *testing.T, c cache.Cache) (*gin.Engine, *repository.Memory[*model.Course]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemory("course", func() *model.Course { return &model.Course{} })
	rc := &ResourceController[*model.Course]{
		Name:     "Course",
		Store:    store,
		Factory:  func() *model.Course { return &model.Course{} },
		Validate: validator.New(),
		Cache:    c,
		CacheKey: "courses",
		CacheTTL: time.Minute,
	}

	r := gin.New()
	rc.RegisterRoutes(r.Group("/api"), "courses", nil)
	return r, store
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func courseBody() map[string]any {
	return map[string]any{
		"title":       "BBA",
		"category":    "UG",
		"duration":    "3 Years",
		"description": "Bachelor of Business Administration",
		"eligibility": "10+2 from recognized board",
		"featured":    false,
	}
}

func TestCourseLifecycle(t *testing.T) {
	r, _ := newCourseRouter(t, nil)

	// Create
	w := postJSON(r, "/api/courses", courseBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "BBA", created.Title)

	// Read back
	w = doJSON(r, http.MethodGet, "/api/courses/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)

	// Delete
	w = doJSON(r, http.MethodDelete, "/api/courses/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Course deleted")

	// Gone
	w = doJSON(r, http.MethodGet, "/api/courses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseList(t *testing.T) {
	r, _ := newCourseRouter(t, nil)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, postJSON(r, "/api/courses", courseBody()).Code)
	}

	w := doJSON(r, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var courses []model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &courses))
	assert.Len(t, courses, 3)
}

func TestCourseCreate_BadPayload(t *testing.T) {
	r, _ := newCourseRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/courses", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := courseBody()
	body["category"] = "Diploma"
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/courses", body).Code)

	delete(body, "category")
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/courses", body).Code)
}

func TestCourseUpdate_Partial(t *testing.T) {
	r, _ := newCourseRouter(t, nil)

	w := postJSON(r, "/api/courses", courseBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, "/api/courses/"+created.ID, map[string]any{"featured": true})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Featured)
	assert.Equal(t, created.Title, updated.Title, "unpatched fields must survive")
	assert.Equal(t, created.Eligibility, updated.Eligibility)
}

func TestCourseUpdateDelete_Missing(t *testing.T) {
	r, _ := newCourseRouter(t, nil)

	w := doJSON(r, http.MethodPut, "/api/courses/missing", map[string]any{"featured": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Course not found")

	w = doJSON(r, http.MethodDelete, "/api/courses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseList_CacheInvalidation(t *testing.T) {
	mem := cache.NewMemory(time.Minute, 0)
	defer mem.Close()
	r, _ := newCourseRouter(t, mem)

	require.Equal(t, http.StatusCreated, postJSON(r, "/api/courses", courseBody()).Code)

	// Prime the cache.
	w := doJSON(r, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Mutation must invalidate, so the next list sees the new course.
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/courses", courseBody()).Code)

	w = doJSON(r, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var courses []model.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &courses))
	assert.Len(t, courses, 2)
}

func TestGuardAppliesToMutationsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemory("course", func() *model.Course { return &model.Course{} })
	rc := &ResourceController[*model.Course]{
		Name:     "Course",
		Store:    store,
		Factory:  func() *model.Course { return &model.Course{} },
		Validate: validator.New(),
	}

	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "nope"})
	}

	r := gin.New()
	rc.RegisterRoutes(r.Group("/api"), "courses", deny)

	assert.Equal(t, http.StatusUnauthorized, postJSON(r, "/api/courses", courseBody()).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/courses", nil).Code)
}
