package courseController

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"upskill/database"
	"upskill/middleware"
	"upskill/models"
)

// MarkLectureAsComplete records one finished lecture on the learner's
// progress record, creating the record lazily if settlement never ran for
// this pair. The same lecture cannot be completed twice.
func MarkLectureAsComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	subSectionID := c.Locals("subSectionID").(int)
	db := database.Database.Db

	// The lecture must belong to the course it is being completed against
	var subSection models.SubSection
	if err := db.Joins("JOIN sections ON sections.id = sub_sections.section_id").
		Where("sub_sections.id = ? AND sections.course_id = ? AND sub_sections.is_deleted = ?", subSectionID, courseID, false).
		First(&subSection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	var progress models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error; err != nil {
		progress = models.CourseProgress{UserID: userID, CourseID: uint(courseID)}
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create progress record!", nil)
		}
	}

	var existing models.CompletedLecture
	if err := db.Where("course_progress_id = ? AND sub_section_id = ?", progress.ID, subSectionID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lecture already marked as complete!", nil)
	}

	completed := models.CompletedLecture{CourseProgressID: progress.ID, SubSectionID: uint(subSectionID)}
	if err := db.Create(&completed).Error; err != nil {
		// The unique index catches a concurrent duplicate completion
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lecture already marked as complete!", nil)
	}

	var completedCount int64
	db.Model(&models.CompletedLecture{}).Where("course_progress_id = ?", progress.ID).Count(&completedCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as complete!", fiber.Map{
		"progress_id":     progress.ID,
		"completed_count": completedCount,
	})
}

// GetProgressPercentage reports how much of a course the learner has finished
func GetProgressPercentage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var total int64
	db.Model(&models.SubSection{}).
		Joins("JOIN sections ON sections.id = sub_sections.section_id").
		Where("sections.course_id = ? AND sub_sections.is_deleted = ?", courseID, false).
		Count(&total)

	var completedCount int64
	var progress models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&progress).Error; err == nil {
		db.Model(&models.CompletedLecture{}).Where("course_progress_id = ?", progress.ID).Count(&completedCount)
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(completedCount)/float64(total)*10000) / 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", fiber.Map{
		"completed":  completedCount,
		"total":      total,
		"percentage": percentage,
	})
}
