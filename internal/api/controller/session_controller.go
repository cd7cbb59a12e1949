package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/store"
)

// TestimonialController serves the session-only testimonial collection.
// Reads are public (the home page renders them); additions are admin-only.
type TestimonialController struct {
	Store    *store.Store
	Validate *validator.Validate
}

func (tc *TestimonialController) List(c *gin.Context) {
	state, err := tc.Store.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching testimonials"})
		return
	}
	c.JSON(http.StatusOK, state.Testimonials)
}

func (tc *TestimonialController) Add(c *gin.Context) {
	var t model.Testimonial
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid testimonial payload"})
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := tc.Validate.Struct(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid testimonial: " + err.Error()})
		return
	}

	if _, err := tc.Store.Dispatch(store.Action{Type: store.AddTestimonial, Testimonial: &t}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding testimonial"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// JobLeadController serves the admin placement pipeline, also session-only.
type JobLeadController struct {
	Store    *store.Store
	Validate *validator.Validate
}

func (jc *JobLeadController) List(c *gin.Context) {
	state, err := jc.Store.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching job leads"})
		return
	}
	c.JSON(http.StatusOK, state.JobLeads)
}

func (jc *JobLeadController) Add(c *gin.Context) {
	var lead model.JobLead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job lead payload"})
		return
	}
	lead.ID = uuid.NewString()
	if lead.Status == "" {
		lead.Status = model.JobLeadStatusApplied
	}
	if err := jc.Validate.Struct(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job lead: " + err.Error()})
		return
	}

	state, err := jc.Store.Dispatch(store.Action{Type: store.AddJobLead, JobLead: &lead})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding job lead"})
		return
	}
	for _, l := range state.JobLeads {
		if l.ID == lead.ID {
			c.JSON(http.StatusCreated, l)
			return
		}
	}
	c.JSON(http.StatusCreated, lead)
}

func (jc *JobLeadController) Update(c *gin.Context) {
	var lead model.JobLead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job lead payload"})
		return
	}
	lead.ID = c.Param("id")
	if err := jc.Validate.Struct(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job lead: " + err.Error()})
		return
	}

	state, err := jc.Store.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating job lead"})
		return
	}
	if !hasJobLead(state.JobLeads, lead.ID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Job lead not found"})
		return
	}

	if _, err := jc.Store.Dispatch(store.Action{Type: store.UpdateJobLead, JobLead: &lead}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating job lead"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func hasJobLead(leads []model.JobLead, id string) bool {
	for _, l := range leads {
		if l.ID == id {
			return true
		}
	}
	return false
}
