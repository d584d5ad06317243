package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mortyverse/Geurim-Lab/internal/http/handler"
	"github.com/mortyverse/Geurim-Lab/internal/http/middleware"
	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

const (
	studentID = "6a7b8c9d-0e1f-4a2b-8c3d-4e5f6a7b8c9d"
	mentorID  = "1f2e3d4c-5b6a-4978-8756-3412f0e1d2c3"
)

func testPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.RGBA{R: 0x80, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func multipartBody(fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			panic(err)
		}
	}
	for k, v := range files {
		fw, err := w.CreateFormFile(k, k+".png")
		if err != nil {
			panic(err)
		}
		if _, err := fw.Write(v); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return &buf, w.FormDataContentType()
}

func pendingSession() *model.FeedbackSession {
	now := time.Now()
	return &model.FeedbackSession{
		ID:        42,
		StudentID: studentID,
		MentorID:  mentorID,
		Status:    model.StatusPending,
		Step1:     model.Step{Content: "Please critique my linework"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var _ = Describe("FeedbackHandler", func() {
	var (
		router *gin.Engine
		svc    *mockFeedbackService
		users  *mockUserStore
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockFeedbackService{}
		users = &mockUserStore{
			getByIDFn: func(_ context.Context, id string) (*model.User, error) {
				return &model.User{ID: id, Name: "Tester", Role: model.RoleStudent}, nil
			},
		}

		h := handler.NewFeedbackHandler(svc)
		v1 := router.Group("/api/v1")
		v1.Use(middleware.Identity(users, service.NewAuthState()))
		{
			sessions := v1.Group("/sessions")
			sessions.POST("", h.Create)
			sessions.GET("", h.List)
			sessions.GET("/:id", h.Get)
			sessions.POST("/:id/steps", h.Submit)
			v1.GET("/mentors", h.ListMentors)
		}
	})

	do := func(method, path string, body *bytes.Buffer, contentType, userID string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, path, body)
			req.Header.Set("Content-Type", contentType)
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if userID != "" {
			req.Header.Set("X-User-ID", userID)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("identity", func() {
		It("rejects requests without a user header", func() {
			w := do(http.MethodGet, "/api/v1/sessions", nil, "", "")
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects malformed user IDs", func() {
			w := do(http.MethodGet, "/api/v1/sessions", nil, "", "not-a-uuid")
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects unknown users", func() {
			users.getByIDFn = func(context.Context, string) (*model.User, error) {
				return nil, errors.New("no row")
			}
			w := do(http.MethodGet, "/api/v1/sessions", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Create", func() {
		It("returns 201 and takes the student from the identity header", func() {
			var got service.CreateSessionInput
			svc.createFn = func(_ context.Context, input service.CreateSessionInput) (*model.FeedbackSession, error) {
				got = input
				return pendingSession(), nil
			}

			body, ct := multipartBody(
				map[string]string{"mentor_id": mentorID, "content": "first ask"},
				map[string][]byte{"artwork": testPNG()},
			)
			w := do(http.MethodPost, "/api/v1/sessions", body, ct, studentID)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.StudentID).To(Equal(studentID))
			Expect(got.MentorID).To(Equal(mentorID))
			Expect(got.Content).To(Equal("first ask"))
			Expect(got.Artwork).NotTo(BeEmpty())

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			session := resp["session"].(map[string]any)
			Expect(session["id"]).To(Equal("42"))
			Expect(session["status"]).To(Equal("pending"))
		})

		It("returns 400 when the artwork file is missing", func() {
			body, ct := multipartBody(map[string]string{"mentor_id": mentorID, "content": "x"}, nil)
			w := do(http.MethodPost, "/api/v1/sessions", body, ct, studentID)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps a rejected mentor to 400", func() {
			svc.createFn = func(context.Context, service.CreateSessionInput) (*model.FeedbackSession, error) {
				return nil, service.ErrMissingMentor
			}
			body, ct := multipartBody(
				map[string]string{"mentor_id": mentorID, "content": "x"},
				map[string][]byte{"artwork": testPNG()},
			)
			w := do(http.MethodPost, "/api/v1/sessions", body, ct, studentID)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Get", func() {
		It("returns the session with the viewer's projection", func() {
			svc.getFn = func(_ context.Context, id int64) (*model.FeedbackSession, error) {
				Expect(id).To(Equal(int64(42)))
				return pendingSession(), nil
			}

			w := do(http.MethodGet, "/api/v1/sessions/42", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			view := resp["view"].(map[string]any)
			Expect(view["viewer_role"]).To(Equal("student"))
			Expect(view["is_viewer_turn"]).To(BeFalse())
		})

		It("returns 400 on a non-numeric id", func() {
			w := do(http.MethodGet, "/api/v1/sessions/forty-two", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 when the session does not exist", func() {
			svc.getFn = func(context.Context, int64) (*model.FeedbackSession, error) {
				return nil, service.ErrSessionNotFound
			}
			w := do(http.MethodGet, "/api/v1/sessions/7", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("List", func() {
		It("returns the caller's sessions", func() {
			svc.listByParticipantFn = func(_ context.Context, userID string) ([]model.FeedbackSession, error) {
				Expect(userID).To(Equal(studentID))
				return []model.FeedbackSession{*pendingSession()}, nil
			}

			w := do(http.MethodGet, "/api/v1/sessions", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["sessions"]).To(HaveLen(1))
		})
	})

	Describe("Submit", func() {
		It("forwards content and the annotation file", func() {
			var gotContent string
			var gotImage []byte
			svc.submitFn = func(_ context.Context, sessionID int64, actorID, content string, image []byte) (*model.FeedbackSession, error) {
				Expect(sessionID).To(Equal(int64(42)))
				Expect(actorID).To(Equal(mentorID))
				gotContent = content
				gotImage = image
				sess := pendingSession()
				sess.Status = model.StatusReplied1
				sess.Step2 = model.Step{Content: content, ImageURL: "https://blob/step2.png"}
				return sess, nil
			}

			body, ct := multipartBody(
				map[string]string{"content": "look at the shoulder"},
				map[string][]byte{"annotation": testPNG()},
			)
			w := do(http.MethodPost, "/api/v1/sessions/42/steps", body, ct, mentorID)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotContent).To(Equal("look at the shoulder"))
			Expect(gotImage).NotTo(BeEmpty())
		})

		It("accepts a text-only submission", func() {
			svc.submitFn = func(_ context.Context, _ int64, _, content string, image []byte) (*model.FeedbackSession, error) {
				Expect(image).To(BeNil())
				sess := pendingSession()
				sess.Status = model.StatusQuestioned2
				sess.Step2 = model.Step{Content: "reply", ImageURL: "u"}
				sess.Step3 = model.Step{Content: content}
				return sess, nil
			}

			body, ct := multipartBody(map[string]string{"content": "why there?"}, nil)
			w := do(http.MethodPost, "/api/v1/sessions/42/steps", body, ct, studentID)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("maps out-of-turn submissions to 403", func() {
			svc.submitFn = func(context.Context, int64, string, string, []byte) (*model.FeedbackSession, error) {
				return nil, service.ErrNotYourTurn
			}
			body, ct := multipartBody(map[string]string{"content": "x"}, nil)
			w := do(http.MethodPost, "/api/v1/sessions/42/steps", body, ct, studentID)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("maps completed sessions to 409", func() {
			svc.submitFn = func(context.Context, int64, string, string, []byte) (*model.FeedbackSession, error) {
				return nil, service.ErrSessionClosed
			}
			body, ct := multipartBody(map[string]string{"content": "x"}, nil)
			w := do(http.MethodPost, "/api/v1/sessions/42/steps", body, ct, studentID)
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("maps a lost submission race to 409", func() {
			svc.submitFn = func(context.Context, int64, string, string, []byte) (*model.FeedbackSession, error) {
				return nil, service.ErrStaleTransition
			}
			body, ct := multipartBody(map[string]string{"content": "x"}, nil)
			w := do(http.MethodPost, "/api/v1/sessions/42/steps", body, ct, studentID)
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("ListMentors", func() {
		It("returns the verified roster with open-session counts", func() {
			svc.listVerifiedMentorsFn = func(context.Context) ([]model.MentorSummary, error) {
				return []model.MentorSummary{
					{User: model.User{ID: mentorID, Name: "Sora", Role: model.RoleMentor, IsVerified: true}, OpenSessions: 3},
				}, nil
			}

			w := do(http.MethodGet, "/api/v1/mentors", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			mentors := resp["mentors"].([]any)
			Expect(mentors).To(HaveLen(1))
			first := mentors[0].(map[string]any)
			Expect(first["name"]).To(Equal("Sora"))
			Expect(first["open_sessions"]).To(BeNumerically("==", 3))
		})

		It("returns 500 when the roster query fails", func() {
			svc.listVerifiedMentorsFn = func(context.Context) ([]model.MentorSummary, error) {
				return nil, errors.New("pg down")
			}
			w := do(http.MethodGet, "/api/v1/mentors", nil, "", studentID)
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
