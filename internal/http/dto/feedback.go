package dto

import (
	"time"

	"github.com/mortyverse/Geurim-Lab/internal/canvas"
	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

type StepResponse struct {
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type SessionResponse struct {
	ID        int64          `json:"id,string"`
	StudentID string         `json:"student_id"`
	MentorID  string         `json:"mentor_id"`
	Status    string         `json:"status"`
	Steps     []StepResponse `json:"steps"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SessionDetailResponse bundles the record with the projection the UI gates
// on, so screens never re-derive roles from raw IDs.
type SessionDetailResponse struct {
	Session SessionResponse     `json:"session"`
	View    service.SessionView `json:"view"`
}

type SessionListResponse struct {
	Sessions []SessionDetailResponse `json:"sessions"`
}

func ToSessionResponse(sess *model.FeedbackSession) SessionResponse {
	steps := make([]StepResponse, 0, 4)
	for _, st := range sess.Steps() {
		steps = append(steps, StepResponse{Content: st.Content, ImageURL: st.ImageURL})
	}
	return SessionResponse{
		ID:        sess.ID,
		StudentID: sess.StudentID,
		MentorID:  sess.MentorID,
		Status:    string(sess.Status),
		Steps:     steps,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
}

func ToSessionDetailResponse(sess *model.FeedbackSession, viewerID string) SessionDetailResponse {
	return SessionDetailResponse{
		Session: ToSessionResponse(sess),
		View:    service.ProjectSession(sess, viewerID),
	}
}

type MentorResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsVerified   bool   `json:"is_verified"`
	OpenSessions int    `json:"open_sessions"`
}

type MentorListResponse struct {
	Mentors []MentorResponse `json:"mentors"`
}

func ToMentorListResponse(mentors []model.MentorSummary) MentorListResponse {
	resp := MentorListResponse{Mentors: make([]MentorResponse, len(mentors))}
	for i, m := range mentors {
		resp.Mentors[i] = MentorResponse{
			ID:           m.ID,
			Name:         m.Name,
			IsVerified:   m.IsVerified,
			OpenSessions: m.OpenSessions,
		}
	}
	return resp
}

// RenderAnnotationRequest is the vector-stroke render payload: a base image
// URL plus the strokes captured against the given display size.
type RenderAnnotationRequest struct {
	BaseImageURL  string          `json:"base_image_url" binding:"required,url"`
	DisplayWidth  float64         `json:"display_width" binding:"omitempty,gt=0"`
	DisplayHeight float64         `json:"display_height" binding:"omitempty,gt=0"`
	Strokes       []canvas.Stroke `json:"strokes" binding:"required"`
}
