package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/store"
)

func newEnquiryRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	ec := &EnquiryController{Store: st, Validate: validator.New()}

	r := gin.New()
	r.POST("/api/enquiries", ec.Submit)
	r.GET("/api/enquiries", ec.List)
	r.PATCH("/api/enquiries/:id/status", ec.UpdateStatus)
	return r, st
}

func enquiryBody() map[string]any {
	return map[string]any{
		"name":    "Priya",
		"email":   "priya@example.com",
		"phone":   "9876543210",
		"service": "Study Abroad",
		"message": "Looking for MBA options in the UK.",
	}
}

func TestEnquirySubmit(t *testing.T) {
	r, _ := newEnquiryRouter(t)

	body := enquiryBody()
	body["status"] = "Resolved" // callers cannot pick their own status
	w := postJSON(r, "/api/enquiries", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Enquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.EnquiryStatusNew, created.Status)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestEnquirySubmit_Invalid(t *testing.T) {
	r, _ := newEnquiryRouter(t)

	body := enquiryBody()
	body["email"] = "not-an-email"
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/enquiries", body).Code)

	delete(body, "email")
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/enquiries", body).Code)
}

func TestEnquiryStatusFlow(t *testing.T) {
	r, _ := newEnquiryRouter(t)

	w := postJSON(r, "/api/enquiries", enquiryBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Enquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPatch, "/api/enquiries/"+created.ID+"/status", map[string]any{"status": "In Progress"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Enquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, created.Message, updated.Message)

	// List reflects the transition.
	w = doJSON(r, http.MethodGet, "/api/enquiries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []model.Enquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "In Progress", all[0].Status)
}

func TestEnquiryStatus_Rejections(t *testing.T) {
	r, _ := newEnquiryRouter(t)

	w := doJSON(r, http.MethodPatch, "/api/enquiries/missing/status", map[string]any{"status": "Resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := postJSON(r, "/api/enquiries", enquiryBody())
	require.Equal(t, http.StatusCreated, created.Code)
	var e model.Enquiry
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &e))

	w = doJSON(r, http.MethodPatch, "/api/enquiries/"+e.ID+"/status", map[string]any{"status": "Closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
