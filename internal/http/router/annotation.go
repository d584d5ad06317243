package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mortyverse/Geurim-Lab/internal/http/handler"
)

func AnnotationRouter(rg *gin.RouterGroup, h *handler.AnnotationHandler) {
	rg.POST("", h.Render)
}
