package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mortyverse/Geurim-Lab/internal/http/dto"
	"github.com/mortyverse/Geurim-Lab/internal/http/middleware"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

// maxImageBytes bounds uploaded artwork and annotation files.
const maxImageBytes = 10 << 20

type FeedbackHandler struct {
	feedback service.FeedbackService
}

func NewFeedbackHandler(feedback service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Create opens a new session. Multipart form: mentor_id, content, artwork.
func (h *FeedbackHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	artwork, err := readFormImage(c, "artwork")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artwork image is required"})
		return
	}

	sess, err := h.feedback.Create(ctx, service.CreateSessionInput{
		StudentID: user.ID,
		MentorID:  c.PostForm("mentor_id"),
		Content:   c.PostForm("content"),
		Artwork:   artwork,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionDetailResponse(sess, user.ID))
}

// Get returns one session with the viewer's projection.
func (h *FeedbackHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	sess, err := h.feedback.Get(ctx, sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionDetailResponse(sess, user.ID))
}

// List returns the viewer's sessions, most recently updated first.
func (h *FeedbackHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	sessions, err := h.feedback.ListByParticipant(ctx, user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.SessionListResponse{
		Sessions: make([]dto.SessionDetailResponse, len(sessions)),
	}
	for i := range sessions {
		resp.Sessions[i] = dto.ToSessionDetailResponse(&sessions[i], user.ID)
	}
	c.JSON(http.StatusOK, resp)
}

// Submit applies the viewer's step. Multipart form: content, and for mentor
// turns an annotation file.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	// Absent on student turns; the service ignores it there anyway.
	annotation, err := readFormImage(c, "annotation")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "annotation could not be read"})
		return
	}

	sess, err := h.feedback.Submit(ctx, sessionID, user.ID, c.PostForm("content"), annotation)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionDetailResponse(sess, user.ID))
}

// ListMentors returns the verified mentor roster for the session-creation
// picker.
func (h *FeedbackHandler) ListMentors(c *gin.Context) {
	ctx := c.Request.Context()

	mentors, err := h.feedback.ListVerifiedMentors(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMentorListResponse(mentors))
}

func (h *FeedbackHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrNotYourTurn):
		c.JSON(http.StatusForbidden, gin.H{"error": "it is not your turn"})
	case errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "this session is completed"})
	case errors.Is(err, service.ErrStaleTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "the session advanced elsewhere, reload and retry"})
	case errors.Is(err, service.ErrMissingContent),
		errors.Is(err, service.ErrMissingAnnotation),
		errors.Is(err, service.ErrMissingMentor),
		errors.Is(err, service.ErrMissingArtwork),
		errors.Is(err, service.ErrSelfFeedback):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), "feedback request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func readFormImage(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	if fh.Size > maxImageBytes {
		return nil, errors.New("image too large")
	}
	return readAll(fh)
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageBytes))
}
