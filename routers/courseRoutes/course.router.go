package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseController "upskill/controllers/course"
	"upskill/middleware"
	courseValidator "upskill/validators/course"
)

// SetupCourseRoutes sets up course management, enrollment reads and progress
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Instructor surface
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Patch("/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidator.CourseID(), courseController.PublishCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidator.CourseID(), courseController.DeleteCourse)

	// Learner surface
	courseGroup.Get("/list", middleware.JWTMiddleware, courseController.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetCourseDetails)
	courseGroup.Post("/:courseId/lecture/:subSectionId/complete", middleware.JWTMiddleware, middleware.RequireRole("USER"), courseValidator.MarkLectureComplete(), courseController.MarkLectureAsComplete)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, courseValidator.CourseProgress(), courseController.GetProgressPercentage)
}
