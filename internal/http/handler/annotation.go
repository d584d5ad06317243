package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mortyverse/Geurim-Lab/internal/canvas"
	"github.com/mortyverse/Geurim-Lab/internal/http/dto"
)

type AnnotationHandler struct {
	client *http.Client
}

func NewAnnotationHandler() *AnnotationHandler {
	return &AnnotationHandler{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Render replays a recorded stroke set over the base artwork and returns the
// flattened annotation as PNG. Stroke coordinates are in display space; the
// output is always native resolution.
func (h *AnnotationHandler) Render(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RenderAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid render request"})
		return
	}

	base, err := h.fetchBase(c, req.BaseImageURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "base image could not be fetched"})
		return
	}
	defer base.Close()

	png, err := canvas.Render(base, req.DisplayWidth, req.DisplayHeight, req.Strokes)
	if err != nil {
		if errors.Is(err, canvas.ErrImageLoad) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "base image is not a decodable image"})
			return
		}
		slog.ErrorContext(ctx, "annotation render failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *AnnotationHandler) fetchBase(c *gin.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d fetching base image", resp.StatusCode)
	}
	return resp.Body, nil
}
