package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mortyverse/Geurim-Lab/internal/http/handler"
)

func SessionRouter(rg *gin.RouterGroup, h *handler.FeedbackHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/steps", h.Submit)
}
