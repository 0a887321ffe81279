package api

import (
	"github.com/roboarchive/roboarchive-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	authHandler    authHandler
	memberHandler  memberHandler
	taskHandler    taskHandler
	articleHandler articleHandler
	robotHandler   robotHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
	Field  string `json:"field,omitempty"`
}

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	JoinYear       *int   `json:"join_year"`
	GraduationYear *int   `json:"graduation_year"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// memberSummary is the public shape of a member record, returned by
// registration and login. It never carries the password hash.
type memberSummary struct {
	MemberID       uint                  `json:"member_id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Role           string                `json:"role"`
	PrivilegeLevel models.PrivilegeLevel `json:"privilege_level"`
}

func summarize(m *models.Member) memberSummary {
	return memberSummary{
		MemberID:       m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Role:           m.Role,
		PrivilegeLevel: m.PrivilegeLevel,
	}
}

type loginResponse struct {
	Token  string        `json:"token"`
	Member memberSummary `json:"member"`
}

type memberUpdateRequest struct {
	Name           *string                `json:"name"`
	Role           *string                `json:"role"`
	GraduationYear *int                   `json:"graduation_year"`
	IsActive       *bool                  `json:"is_active"`
	PrivilegeLevel *models.PrivilegeLevel `json:"privilege_level"`
}

type taskCreateRequest struct {
	Title       string               `json:"title"`
	Description *string              `json:"description"`
	AssignedTo  *uint                `json:"assigned_to"`
	Deadline    *string              `json:"deadline"`
	Priority    *models.TaskPriority `json:"priority"`
}

type taskUpdateRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	AssignedTo  *uint                `json:"assigned_to"`
	Deadline    *string              `json:"deadline"`
	Priority    *models.TaskPriority `json:"priority"`
}

// articlePayload covers both create and update; on update every nil
// field leaves the column unchanged.
type articlePayload struct {
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	Type            *string `json:"type"`
	Category        *string `json:"category"`
	CompetitionYear *int    `json:"competition_year"`
}

type robotPayload struct {
	Name             *string     `json:"name"`
	CompetitionYear  *int        `json:"competition_year"`
	TeamLeadID       *uint       `json:"team_lead_id"`
	Specifications   interface{} `json:"specifications"`
	PerformanceNotes *string     `json:"performance_notes"`
	FinalRank        *int        `json:"final_rank"`
}
