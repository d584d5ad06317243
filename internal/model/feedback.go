package model

import (
	"fmt"
	"time"
)

// FeedbackStatus drives the whole session: it is the tag of a four-variant
// progressive payload, always one ahead of the last completed step.
type FeedbackStatus string

const (
	StatusPending     FeedbackStatus = "pending"      // waiting for the mentor's first reply
	StatusReplied1    FeedbackStatus = "replied_1"    // waiting for the student's follow-up
	StatusQuestioned2 FeedbackStatus = "questioned_2" // waiting for the mentor's final reply
	StatusCompleted   FeedbackStatus = "completed"    // terminal
)

type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleNone    Role = "none"
)

// NextActor returns the role that must act in the given status, or RoleNone
// for the terminal state.
func (s FeedbackStatus) NextActor() Role {
	switch s {
	case StatusPending, StatusQuestioned2:
		return RoleMentor
	case StatusReplied1:
		return RoleStudent
	default:
		return RoleNone
	}
}

// Next returns the successor status. ok is false for completed (and for
// unknown values), which has no successor.
func (s FeedbackStatus) Next() (FeedbackStatus, bool) {
	switch s {
	case StatusPending:
		return StatusReplied1, true
	case StatusReplied1:
		return StatusQuestioned2, true
	case StatusQuestioned2:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// PendingStep returns the 1-based step number the current status is waiting
// on, or 0 when the session is completed.
func (s FeedbackStatus) PendingStep() int {
	switch s {
	case StatusPending:
		return 2
	case StatusReplied1:
		return 3
	case StatusQuestioned2:
		return 4
	default:
		return 0
	}
}

func (s FeedbackStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// Label is the human-readable badge text shown next to a session.
func (s FeedbackStatus) Label() string {
	switch s {
	case StatusPending:
		return "Awaiting reply"
	case StatusReplied1:
		return "First reply posted"
	case StatusQuestioned2:
		return "Follow-up asked"
	case StatusCompleted:
		return "Feedback complete"
	default:
		return string(s)
	}
}

// Step is one entry of the four-turn exchange. ImageURL is empty for the
// student's steps; for mentor steps content and image are set together.
type Step struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

func (st Step) IsSet() bool { return st.Content != "" }

// FeedbackSession is one 1:1 exchange between a student and a verified
// mentor. Step1 is fixed at creation; Step2..Step4 fill in as the status
// advances and are never touched again afterwards.
type FeedbackSession struct {
	ID        int64          `json:"id"`
	StudentID string         `json:"student_id"`
	MentorID  string         `json:"mentor_id"`
	Status    FeedbackStatus `json:"status"`
	Step1     Step           `json:"step1"`
	Step2     Step           `json:"step2"`
	Step3     Step           `json:"step3"`
	Step4     Step           `json:"step4"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Steps returns the four steps in order.
func (f *FeedbackSession) Steps() [4]Step {
	return [4]Step{f.Step1, f.Step2, f.Step3, f.Step4}
}

// ParticipantRole reports how userID relates to this session.
func (f *FeedbackSession) ParticipantRole(userID string) Role {
	switch userID {
	case f.StudentID:
		return RoleStudent
	case f.MentorID:
		return RoleMentor
	default:
		return RoleNone
	}
}

// ActorID returns the user who must submit next, or "" when completed.
func (f *FeedbackSession) ActorID() string {
	switch f.Status.NextActor() {
	case RoleStudent:
		return f.StudentID
	case RoleMentor:
		return f.MentorID
	default:
		return ""
	}
}

// Validate checks the status-implies-fields invariant: each step before the
// pending one is set, the pending one and everything after it is not, mentor
// steps carry both content and image, and step3 never carries an image.
func (f *FeedbackSession) Validate() error {
	if f.StudentID == f.MentorID {
		return fmt.Errorf("session %d: student and mentor are the same user", f.ID)
	}
	if !f.Step1.IsSet() || f.Step1.ImageURL == "" {
		return fmt.Errorf("session %d: step1 requires content and artwork", f.ID)
	}
	pending := f.Status.PendingStep()
	if pending == 0 && !f.Status.IsTerminal() {
		return fmt.Errorf("session %d: unknown status %q", f.ID, f.Status)
	}
	steps := f.Steps()
	for i := 1; i < len(steps); i++ {
		n := i + 1
		set := steps[i].IsSet()
		switch {
		case pending != 0 && n >= pending && set:
			return fmt.Errorf("session %d: step%d set while status is %s", f.ID, n, f.Status)
		case (pending == 0 || n < pending) && !set:
			return fmt.Errorf("session %d: step%d missing for status %s", f.ID, n, f.Status)
		}
	}
	if f.Step2.IsSet() && f.Step2.ImageURL == "" {
		return fmt.Errorf("session %d: step2 is missing its annotation", f.ID)
	}
	if f.Step4.IsSet() && f.Step4.ImageURL == "" {
		return fmt.Errorf("session %d: step4 is missing its annotation", f.ID)
	}
	if f.Step3.ImageURL != "" {
		return fmt.Errorf("session %d: step3 must not carry an image", f.ID)
	}
	return nil
}
