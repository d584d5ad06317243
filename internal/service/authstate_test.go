package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

var _ = Describe("AuthState", func() {
	var auth *service.AuthState

	BeforeEach(func() {
		auth = service.NewAuthState()
	})

	It("starts signed out", func() {
		Expect(auth.Current()).To(BeNil())
	})

	It("delivers the current value on subscribe and updates afterwards", func() {
		var seen []*model.User
		unsubscribe := auth.Subscribe(func(u *model.User) {
			seen = append(seen, u)
		})
		defer unsubscribe()

		u := &model.User{ID: studentID, Role: model.RoleStudent}
		auth.Set(u)
		auth.Set(nil) // sign out

		Expect(seen).To(HaveLen(3))
		Expect(seen[0]).To(BeNil())
		Expect(seen[1]).To(Equal(u))
		Expect(seen[2]).To(BeNil())
	})

	It("stops delivering after unsubscribe", func() {
		count := 0
		unsubscribe := auth.Subscribe(func(*model.User) { count++ })
		unsubscribe()

		auth.Set(&model.User{ID: mentorID})
		Expect(count).To(Equal(1)) // only the initial delivery
	})

	It("keeps independent subscribers independent", func() {
		a, b := 0, 0
		unsubA := auth.Subscribe(func(*model.User) { a++ })
		unsubB := auth.Subscribe(func(*model.User) { b++ })
		defer unsubB()

		unsubA()
		auth.Set(&model.User{ID: mentorID})

		Expect(a).To(Equal(1))
		Expect(b).To(Equal(2))
	})
})
