package courseController

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"upskill/models"
)

func seedLecture(t *testing.T, db *gorm.DB, courseID uint, title string) models.SubSection {
	t.Helper()

	section := models.Section{CourseID: courseID, Name: title + " section"}
	require.NoError(t, db.Create(&section).Error)

	subSection := models.SubSection{SectionID: section.ID, Title: title}
	require.NoError(t, db.Create(&subSection).Error)
	return subSection
}

func TestMarkLectureAsCompleteCreatesProgressLazily(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "teach@upskill.io", "INSTRUCTOR")
	learner := seedUser(t, db, "learner@upskill.io", "USER")
	course := seedCourse(t, db, "Go Basics", instructor.ID)
	lecture := seedLecture(t, db, course.ID, "Welcome")

	app := newCourseApp()
	resp, _ := doJSON(t, app, "POST",
		fmt.Sprintf("/course/%d/lecture/%d/complete", course.ID, lecture.ID),
		authHeader(t, learner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var progress models.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", learner.ID, course.ID).First(&progress).Error)

	var completed int64
	db.Model(&models.CompletedLecture{}).Where("course_progress_id = ?", progress.ID).Count(&completed)
	assert.EqualValues(t, 1, completed)
}

func TestMarkLectureAsCompleteRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "teach@upskill.io", "INSTRUCTOR")
	learner := seedUser(t, db, "learner@upskill.io", "USER")
	course := seedCourse(t, db, "Go Basics", instructor.ID)
	lecture := seedLecture(t, db, course.ID, "Welcome")

	app := newCourseApp()
	path := fmt.Sprintf("/course/%d/lecture/%d/complete", course.ID, lecture.ID)

	resp, _ := doJSON(t, app, "POST", path, authHeader(t, learner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", path, authHeader(t, learner), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var progress models.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", learner.ID, course.ID).First(&progress).Error)

	var completed int64
	db.Model(&models.CompletedLecture{}).Where("course_progress_id = ?", progress.ID).Count(&completed)
	assert.EqualValues(t, 1, completed, "the completed set size must be unchanged by the duplicate")
}

func TestMarkLectureAsCompleteRejectsForeignLecture(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "teach@upskill.io", "INSTRUCTOR")
	learner := seedUser(t, db, "learner@upskill.io", "USER")
	course := seedCourse(t, db, "Go Basics", instructor.ID)
	otherCourse := seedCourse(t, db, "Rust Basics", instructor.ID)
	foreignLecture := seedLecture(t, db, otherCourse.ID, "Ownership")

	app := newCourseApp()
	resp, _ := doJSON(t, app, "POST",
		fmt.Sprintf("/course/%d/lecture/%d/complete", course.ID, foreignLecture.ID),
		authHeader(t, learner), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProgressPercentage(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "teach@upskill.io", "INSTRUCTOR")
	learner := seedUser(t, db, "learner@upskill.io", "USER")
	course := seedCourse(t, db, "Go Basics", instructor.ID)
	lectureA := seedLecture(t, db, course.ID, "Welcome")
	seedLecture(t, db, course.ID, "Types")

	app := newCourseApp()
	resp, _ := doJSON(t, app, "POST",
		fmt.Sprintf("/course/%d/lecture/%d/complete", course.ID, lectureA.ID),
		authHeader(t, learner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, parsed := doJSON(t, app, "GET", fmt.Sprintf("/course/%d/progress", course.ID), authHeader(t, learner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["completed"])
	assert.EqualValues(t, 2, data["total"])
	assert.EqualValues(t, 50, data["percentage"])
}
