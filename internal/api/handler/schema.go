package handler

import (
	"time"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

type registerRequest struct {
	Username            string `json:"username"              validate:"required,min=3,max=64"`
	Password            string `json:"password"              validate:"required,min=1"`
	Role                string `json:"role"                  validate:"required,oneof=RECRUITER CANDIDATE"`
	AssignedRecruiterID string `json:"assigned_recruiter_id" validate:"omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	User      *domain.User `json:"user,omitempty"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NONE SELECTED REJECTED INTERVIEWING"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type bulkMessageRequest struct {
	Status string `json:"status" validate:"required,oneof=NONE SELECTED REJECTED INTERVIEWING"`
	Text   string `json:"text"   validate:"required,max=4000"`
}

type bulkMessageResponse struct {
	Targeted int               `json:"targeted"`
	Sent     int               `json:"sent"`
	Complete bool              `json:"complete"`
	Error    string            `json:"error,omitempty"`
	Messages []*domain.Message `json:"messages"`
}

type bulkStatusRequest struct {
	Status       string   `json:"status"        validate:"required,oneof=NONE SELECTED REJECTED INTERVIEWING"`
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=1,dive,required"`
}

type bulkStatusResponse struct {
	Requested int `json:"requested"`
	Updated   int `json:"updated"`
}

type unreadResponse struct {
	ConversationID string `json:"conversation_id"`
	Unread         int    `json:"unread"`
}
