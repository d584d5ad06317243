package service

import "github.com/mortyverse/Geurim-Lab/internal/model"

// StepView is one timeline entry of the detail screen.
type StepView struct {
	// Visible: the step has content, or it is the slot the current status is
	// waiting on (shown as a pending placeholder).
	Visible bool `json:"visible"`
	// Complete: the step's content exists.
	Complete bool `json:"complete"`
	// Pending: this is the step whose actor must act next.
	Pending bool `json:"pending"`
}

// SessionView is the single capability check the UI gates on, replacing
// scattered role comparisons.
type SessionView struct {
	Steps        [4]StepView `json:"steps"`
	ViewerRole   model.Role  `json:"viewer_role"`
	IsViewerTurn bool        `json:"is_viewer_turn"`
	StatusLabel  string      `json:"status_label"`
}

// ProjectSession derives the viewer-facing state of a session. Pure: no side
// effects, no mutation.
func ProjectSession(sess *model.FeedbackSession, viewerID string) SessionView {
	view := SessionView{
		ViewerRole:  sess.ParticipantRole(viewerID),
		StatusLabel: sess.Status.Label(),
	}

	pending := sess.Status.PendingStep()
	for i, step := range sess.Steps() {
		n := i + 1
		view.Steps[i] = StepView{
			Visible:  step.IsSet() || n == pending,
			Complete: step.IsSet(),
			Pending:  n == pending,
		}
	}

	view.IsViewerTurn = view.ViewerRole != model.RoleNone &&
		view.ViewerRole == sess.Status.NextActor()
	return view
}
