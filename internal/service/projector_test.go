package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

var _ = Describe("ProjectSession", func() {
	It("shows only step1 plus the pending placeholder on a fresh session", func() {
		view := service.ProjectSession(pendingSession(1), studentID)

		Expect(view.Steps[0]).To(Equal(service.StepView{Visible: true, Complete: true}))
		Expect(view.Steps[1]).To(Equal(service.StepView{Visible: true, Pending: true}))
		Expect(view.Steps[2]).To(Equal(service.StepView{}))
		Expect(view.Steps[3]).To(Equal(service.StepView{}))
	})

	It("answers the turn question for both participants", func() {
		sess := pendingSession(1)

		student := service.ProjectSession(sess, studentID)
		Expect(student.ViewerRole).To(Equal(model.RoleStudent))
		Expect(student.IsViewerTurn).To(BeFalse())

		mentor := service.ProjectSession(sess, mentorID)
		Expect(mentor.ViewerRole).To(Equal(model.RoleMentor))
		Expect(mentor.IsViewerTurn).To(BeTrue())
	})

	It("treats everyone else as a spectator with no turn", func() {
		view := service.ProjectSession(pendingSession(1), "someone-else")
		Expect(view.ViewerRole).To(Equal(model.RoleNone))
		Expect(view.IsViewerTurn).To(BeFalse())
	})

	It("marks the follow-up slot pending after the first reply", func() {
		sess := pendingSession(1)
		sess.Status = model.StatusReplied1
		sess.Step2 = model.Step{Content: "reply", ImageURL: "u"}

		view := service.ProjectSession(sess, studentID)
		Expect(view.Steps[1]).To(Equal(service.StepView{Visible: true, Complete: true}))
		Expect(view.Steps[2]).To(Equal(service.StepView{Visible: true, Pending: true}))
		Expect(view.IsViewerTurn).To(BeTrue())
	})

	It("has no pending slot and no turn once completed", func() {
		sess := pendingSession(1)
		sess.Status = model.StatusCompleted
		sess.Step2 = model.Step{Content: "a", ImageURL: "u"}
		sess.Step3 = model.Step{Content: "b"}
		sess.Step4 = model.Step{Content: "c", ImageURL: "u"}

		for _, viewer := range []string{studentID, mentorID} {
			view := service.ProjectSession(sess, viewer)
			Expect(view.IsViewerTurn).To(BeFalse())
			for i, stepView := range view.Steps {
				Expect(stepView.Pending).To(BeFalse(), "step %d", i+1)
				Expect(stepView.Visible).To(BeTrue(), "step %d", i+1)
				Expect(stepView.Complete).To(BeTrue(), "step %d", i+1)
			}
		}
	})

	It("labels the status for the badge", func() {
		Expect(service.ProjectSession(pendingSession(1), studentID).StatusLabel).
			To(Equal("Awaiting reply"))
	})
})
