package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/classtrack/roster/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	sectionController *controllers.SectionController,
	studentController *controllers.StudentController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	sections := v1.Group("/sections")
	{
		sections.GET("", sectionController.ListSections)
		sections.POST("", sectionController.CreateSection)
		sections.GET("/:id", sectionController.GetSectionByID)
		sections.PUT("/:id", sectionController.UpdateSection)
		sections.DELETE("/:id", sectionController.DeleteSection)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
