// Package model defines the persisted resources (Course, BlogPost) and the
// session-only entities held by the application state store.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupath/edupath-backend/internal/slug"
)

// Course categories.
const (
	CategoryUG  = "UG"
	CategoryPG  = "PG"
	CategoryPhD = "PhD"
)

// BlogPost categories.
const (
	BlogCategoryCareer    = "Career"
	BlogCategoryFinance   = "Finance"
	BlogCategoryEducation = "Education"
	BlogCategoryJobTips   = "Job Tips"
)

// Enquiry statuses.
const (
	EnquiryStatusNew        = "New"
	EnquiryStatusInProgress = "In Progress"
	EnquiryStatusResolved   = "Resolved"
)

// Job lead statuses.
const (
	JobLeadStatusApplied   = "Applied"
	JobLeadStatusInterview = "Interview"
	JobLeadStatusPlaced    = "Placed"
	JobLeadStatusRejected  = "Rejected"
)

// Course is a persisted study programme offered through the consultancy.
// ID is application-generated and distinct from the store's native _id.
type Course struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `bson:"id" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required,oneof=UG PG PhD"`
	Duration    string             `bson:"duration" json:"duration" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Eligibility string             `bson:"eligibility" json:"eligibility" validate:"required"`
	Fees        string             `bson:"fees,omitempty" json:"fees,omitempty"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (c *Course) DocID() string      { return c.ID }
func (c *Course) SetDocID(id string) { c.ID = id }

func (c *Course) Touch(now time.Time, created bool) {
	if created {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c *Course) ApplyDefaults() {}

// BlogPost is a persisted article addressed publicly by slug.
type BlogPost struct {
	OID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID             string             `bson:"id" json:"id"`
	Title          string             `bson:"title" json:"title" validate:"required"`
	Slug           string             `bson:"slug" json:"slug"`
	Excerpt        string             `bson:"excerpt" json:"excerpt" validate:"required"`
	Content        string             `bson:"content" json:"content" validate:"required"`
	Category       string             `bson:"category" json:"category" validate:"required,oneof=Career Finance Education 'Job Tips'"`
	Author         string             `bson:"author" json:"author" validate:"required"`
	PublishedAt    string             `bson:"publishedAt" json:"publishedAt" validate:"required"`
	FeaturedImage  string             `bson:"featuredImage" json:"featuredImage" validate:"required"`
	SeoTitle       string             `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SeoDescription string             `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (b *BlogPost) DocID() string      { return b.ID }
func (b *BlogPost) SetDocID(id string) { b.ID = id }

func (b *BlogPost) Touch(now time.Time, created bool) {
	if created {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// ApplyDefaults derives the slug from the title when not explicitly set and
// falls back to title/excerpt for the SEO fields.
func (b *BlogPost) ApplyDefaults() {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Title)
	}
	if b.SeoTitle == "" {
		b.SeoTitle = b.Title
	}
	if b.SeoDescription == "" {
		b.SeoDescription = b.Excerpt
	}
}

// Enquiry is a contact-form submission. Session-only: held by the state
// store, never persisted, mutated only through status transitions.
type Enquiry struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Service   string `json:"service"`
	Message   string `json:"message" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=New 'In Progress' Resolved"`
	CreatedAt string `json:"createdAt"`
}

// Testimonial is session-only seed content shown on the public pages.
type Testimonial struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Course  string `json:"course" validate:"required"`
	Message string `json:"message" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Image   string `json:"image,omitempty"`
}

// JobLead tracks a placement candidate. Session-only, no transition
// constraints on Status.
type JobLead struct {
	ID            string `json:"id"`
	CandidateName string `json:"candidateName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Position      string `json:"position" validate:"required"`
	Experience    string `json:"experience"`
	Status        string `json:"status" validate:"omitempty,oneof=Applied Interview Placed Rejected"`
	Company       string `json:"company,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// AdminUser is a back-office account. The shipped table is placeholder seed
// data; passwords are stored as argon2id hashes and checked server-side.
type AdminUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	DisplayName  string `json:"name"`
}
