package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"upskill/middleware"
)

// CreateCourseRequest is the instructor-facing course payload
type CreateCourseRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	WhatYouWillLearn string `json:"what_you_will_learn"`
	Price            *uint  `json:"price"`
	Tag              string `json:"tag"`
	CategoryID       uint   `json:"category_id"`
	ThumbnailURL     string `json:"thumbnail_url"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Course name is required!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Course description is required!"
		}
		if reqData.Price == nil {
			errors["price"] = "Course price is required!"
		}
		if reqData.CategoryID == 0 {
			errors["category_id"] = "Category is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// MarkLectureComplete validates the :courseId and :subSectionId parameters
func MarkLectureComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("courseId")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		subSectionID, err := strconv.Atoi(strings.TrimSpace(c.Params("subSectionId")))
		if err != nil || subSectionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("subSectionID", subSectionID)
		return c.Next()
	}
}

// CourseProgress validates the :courseId parameter for progress reads
func CourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("courseId")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
