package route

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/edupath/edupath-backend/internal/api/controller"
	"github.com/edupath/edupath-backend/internal/app"
)

// NewEnquiryRouter wires the store-backed collections: enquiries,
// testimonials and job leads. Public routes cover form submission and the
// testimonial wall; everything else sits behind the admin guard.
func NewEnquiryRouter(group *gin.RouterGroup, a *app.App, validate *validator.Validate, adminGuard gin.HandlerFunc) {
	ec := &controller.EnquiryController{Store: a.Store, Validate: validate}
	tc := &controller.TestimonialController{Store: a.Store, Validate: validate}
	jc := &controller.JobLeadController{Store: a.Store, Validate: validate}

	group.POST("/enquiries", ec.Submit)
	group.GET("/testimonials", tc.List)

	admin := group.Group("")
	admin.Use(adminGuard)
	admin.GET("/enquiries", ec.List)
	admin.PATCH("/enquiries/:id/status", ec.UpdateStatus)
	admin.POST("/testimonials", tc.Add)
	admin.GET("/jobleads", jc.List)
	admin.POST("/jobleads", jc.Add)
	admin.PUT("/jobleads/:id", jc.Update)
}
