package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mortyverse/Geurim-Lab/internal/http/handler"
)

func MentorRouter(rg *gin.RouterGroup, h *handler.FeedbackHandler) {
	rg.GET("", h.ListMentors)
}
