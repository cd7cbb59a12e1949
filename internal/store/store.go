// Package store holds the session-scoped application state: enquiries,
// testimonials and job leads plus the admin session flags. Nothing here ever
// reaches the persistence service; the state lives for the process lifetime
// and resets on restart.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/model"
)

// ActionType enumerates the fixed set of state transitions.
type ActionType string

const (
	AddEnquiry          ActionType = "ADD_ENQUIRY"
	UpdateEnquiryStatus ActionType = "UPDATE_ENQUIRY_STATUS"
	AddTestimonial      ActionType = "ADD_TESTIMONIAL"
	UpdateTestimonial   ActionType = "UPDATE_TESTIMONIAL"
	AddJobLead          ActionType = "ADD_JOB_LEAD"
	UpdateJobLead       ActionType = "UPDATE_JOB_LEAD"
	LoginAdmin          ActionType = "LOGIN_ADMIN"
	LogoutAdmin         ActionType = "LOGOUT_ADMIN"
)

// Action is one dispatched state transition. Only the payload fields
// relevant to the Type are read.
type Action struct {
	Type        ActionType
	Enquiry     *model.Enquiry
	Testimonial *model.Testimonial
	JobLead     *model.JobLead
	ID          string
	Status      string
	User        string
}

// State is the full application state snapshot.
type State struct {
	Enquiries    []model.Enquiry     `json:"enquiries"`
	Testimonials []model.Testimonial `json:"testimonials"`
	JobLeads     []model.JobLead     `json:"jobLeads"`
	IsAdmin      bool                `json:"isAdmin"`
	CurrentUser  string              `json:"currentUser"`
}

// Store is an injectable state container. Dispatch applies actions through a
// pure reducer under a mutex; Snapshot hands out deep copies so callers
// never share slices with the store.
type Store struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
	newID func() string
}

// New creates an empty store. Tests instantiate isolated instances.
func New() *Store {
	return &Store{
		state: State{
			Enquiries:    []model.Enquiry{},
			Testimonials: []model.Testimonial{},
			JobLeads:     []model.JobLead{},
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SeedTestimonials replaces the testimonial collection with seed data.
func (s *Store) SeedTestimonials(testimonials []model.Testimonial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Testimonials = append([]model.Testimonial{}, testimonials...)
}

// Dispatch applies one action and returns the resulting state snapshot.
// Unknown action types and unknown identifiers leave the state unchanged.
func (s *Store) Dispatch(action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = reduce(s.state, action, s.now, s.newID)
	logger.WithComponent("store").Debugf("dispatched %s", action.Type)
	return cloneState(s.state)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// reduce is the pure transformation from (state, action) to the next state.
// No side effects, no I/O: identifier and timestamp assignment come in as
// functions so the reducer itself stays deterministic under test.
func reduce(state State, action Action, now func() time.Time, newID func() string) State {
	switch action.Type {
	case AddEnquiry:
		if action.Enquiry == nil {
			return state
		}
		e := *action.Enquiry
		if e.ID == "" {
			e.ID = newID()
		}
		e.Status = model.EnquiryStatusNew
		if e.CreatedAt == "" {
			e.CreatedAt = now().Format("2006-01-02")
		}
		state.Enquiries = append(append([]model.Enquiry{}, state.Enquiries...), e)

	case UpdateEnquiryStatus:
		enquiries := append([]model.Enquiry{}, state.Enquiries...)
		for i := range enquiries {
			if enquiries[i].ID == action.ID {
				enquiries[i].Status = action.Status
			}
		}
		state.Enquiries = enquiries

	case AddTestimonial:
		if action.Testimonial == nil {
			return state
		}
		ts := *action.Testimonial
		if ts.ID == "" {
			ts.ID = newID()
		}
		state.Testimonials = append(append([]model.Testimonial{}, state.Testimonials...), ts)

	case UpdateTestimonial:
		if action.Testimonial == nil {
			return state
		}
		testimonials := append([]model.Testimonial{}, state.Testimonials...)
		for i := range testimonials {
			if testimonials[i].ID == action.Testimonial.ID {
				testimonials[i] = *action.Testimonial
			}
		}
		state.Testimonials = testimonials

	case AddJobLead:
		if action.JobLead == nil {
			return state
		}
		lead := *action.JobLead
		if lead.ID == "" {
			lead.ID = newID()
		}
		if lead.Status == "" {
			lead.Status = model.JobLeadStatusApplied
		}
		if lead.CreatedAt == "" {
			lead.CreatedAt = now().Format("2006-01-02")
		}
		state.JobLeads = append(append([]model.JobLead{}, state.JobLeads...), lead)

	case UpdateJobLead:
		if action.JobLead == nil {
			return state
		}
		leads := append([]model.JobLead{}, state.JobLeads...)
		for i := range leads {
			if leads[i].ID == action.JobLead.ID {
				leads[i] = *action.JobLead
			}
		}
		state.JobLeads = leads

	case LoginAdmin:
		state.IsAdmin = true
		state.CurrentUser = action.User

	case LogoutAdmin:
		state.IsAdmin = false
		state.CurrentUser = ""
	}

	return state
}

func cloneState(state State) (State, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return State{}, fmt.Errorf("clone state: %w", err)
	}
	var out State
	if err := json.Unmarshal(payload, &out); err != nil {
		return State{}, fmt.Errorf("clone state: %w", err)
	}
	return out, nil
}
