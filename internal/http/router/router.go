package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mortyverse/Geurim-Lab/internal/http/handler"
	"github.com/mortyverse/Geurim-Lab/internal/http/middleware"
	"github.com/mortyverse/Geurim-Lab/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(services.Users(), services.AuthState()))
	{
		feedbackHandler := handler.NewFeedbackHandler(services.Feedback())
		SessionRouter(v1.Group("/sessions"), feedbackHandler)
		MentorRouter(v1.Group("/mentors"), feedbackHandler)

		annotationHandler := handler.NewAnnotationHandler()
		AnnotationRouter(v1.Group("/annotations"), annotationHandler)
	}
}
