package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/store"
)

// EnquiryController serves the contact-form collections held by the
// application state store. Submissions are public; reading and triaging
// them is admin-only.
type EnquiryController struct {
	Store    *store.Store
	Validate *validator.Validate
}

// Submit handles POST /enquiries. Status is always forced to New.
func (ec *EnquiryController) Submit(c *gin.Context) {
	var enquiry model.Enquiry
	if err := c.ShouldBindJSON(&enquiry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid enquiry payload"})
		return
	}

	enquiry.ID = uuid.NewString()
	enquiry.Status = model.EnquiryStatusNew
	enquiry.CreatedAt = time.Now().Format("2006-01-02")

	if err := ec.Validate.Struct(&enquiry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid enquiry: " + err.Error()})
		return
	}

	if _, err := ec.Store.Dispatch(store.Action{Type: store.AddEnquiry, Enquiry: &enquiry}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error submitting enquiry"})
		return
	}
	c.JSON(http.StatusCreated, enquiry)
}

// List handles GET /enquiries (admin).
func (ec *EnquiryController) List(c *gin.Context) {
	state, err := ec.Store.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching enquiries"})
		return
	}
	c.JSON(http.StatusOK, state.Enquiries)
}

// UpdateStatus handles PATCH /enquiries/:id/status (admin).
func (ec *EnquiryController) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" validate:"required,oneof=New 'In Progress' Resolved"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status payload"})
		return
	}
	if err := ec.Validate.Struct(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status: " + err.Error()})
		return
	}

	id := c.Param("id")
	state, err := ec.Store.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating enquiry"})
		return
	}
	if !hasEnquiry(state.Enquiries, id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Enquiry not found"})
		return
	}

	state, err = ec.Store.Dispatch(store.Action{Type: store.UpdateEnquiryStatus, ID: id, Status: body.Status})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating enquiry"})
		return
	}

	for _, e := range state.Enquiries {
		if e.ID == id {
			c.JSON(http.StatusOK, e)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Enquiry not found"})
}

func hasEnquiry(enquiries []model.Enquiry, id string) bool {
	for _, e := range enquiries {
		if e.ID == id {
			return true
		}
	}
	return false
}
