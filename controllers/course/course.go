package courseController

import (
	"github.com/gofiber/fiber/v2"

	"upskill/database"
	"upskill/middleware"
	"upskill/models"
	courseValidator "upskill/validators/course"
)

// CreateCourse creates a draft course owned by the calling instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	course := models.Course{
		Name:             reqData.Name,
		Description:      reqData.Description,
		WhatYouWillLearn: reqData.WhatYouWillLearn,
		Price:            *reqData.Price,
		Tag:              reqData.Tag,
		ThumbnailURL:     reqData.ThumbnailURL,
		Status:           "DRAFT",
		InstructorID:     userID,
		CategoryID:       category.ID,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

// PublishCourse flips a draft course to ACTIVE so it can be purchased
func PublishCourse(c *fiber.Ctx) error {
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

	role, _ := c.Locals("role").(string)
	if course.InstructorID != userID && role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if err := db.Model(&course).Update("status", "ACTIVE").Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// GetAllCourses lists purchasable courses
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.
		Where("is_deleted = ? AND status = ?", false, "ACTIVE").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All courses fetched successfully!", courses)
}

// GetCourseDetails returns a course with its sections, lectures and the
// caller's enrollment state
func GetCourseDetails(c *fiber.Ctx) error {
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

	var sections []models.Section
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections)

	type SectionWithLectures struct {
		models.Section
		SubSections []models.SubSection `json:"sub_sections"`
	}

	content := make([]SectionWithLectures, len(sections))
	for i, section := range sections {
		content[i] = SectionWithLectures{Section: section}
		db.Where("section_id = ? AND is_deleted = ?", section.ID, false).
			Order("order_index asc").Find(&content[i].SubSections)
	}

	var enrollment models.Enrollment
	isEnrolled := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"sections":    content,
		"is_enrolled": isEnrolled,
	})
}

// DeleteCourse removes a course and everything hanging off it: enrollments
// first, then sub-sections per section, then sections, then the course row.
// No step is rolled back when a later one fails; the caller retries the whole
// deletion and every step is a no-op on already-deleted rows.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		// Repeat deletions of an already-deleted course land here; callers
		// treat it as settled, not as a failure to escalate
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	role, _ := c.Locals("role").(string)
	if course.InstructorID != userID && role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	// Unenroll every listed learner
	if err := db.Model(&models.Enrollment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll students!", nil)
	}

	// Delete sections and their sub-sections
	var sections []models.Section
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course sections!", nil)
	}

	for _, section := range sections {
		if err := db.Model(&models.SubSection{}).
			Where("section_id = ? AND is_deleted = ?", section.ID, false).
			Update("is_deleted", true).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course content!", nil)
		}
		if err := db.Model(&models.Section{}).
			Where("id = ?", section.ID).
			Update("is_deleted", true).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course sections!", nil)
		}
	}

	// Delete the course itself
	if err := db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
