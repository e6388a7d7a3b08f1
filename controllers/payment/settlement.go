package paymentController

import (
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"upskill/models"
)

// Notifier sends the enrollment confirmation for one settled course.
// Failures are surfaced so the attempt can record them, but they never
// unwind enrollment state that is already committed.
type Notifier func(email, firstName, courseName string) error

// Per-course settlement outcomes
const (
	StatusSettled         = "SETTLED"
	StatusAlreadySettled  = "ALREADY_SETTLED"
	StatusAlreadyEnrolled = "ALREADY_ENROLLED"
	StatusFailed          = "FAILED"
)

// CourseSettlement is the per-course result of a settlement call
type CourseSettlement struct {
	CourseID uint   `json:"course_id"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// Settled reports whether the course ended up durably enrolled
func (s CourseSettlement) Settled() bool {
	return s.Status == StatusSettled || s.Status == StatusAlreadySettled
}

// SettleCourses credits enrollment for every course of a verified payment.
// Courses are settled independently; one failing course does not roll back
// the others, and the caller gets one result per course so it can tell a
// full settlement from a partial one.
func SettleCourses(db *gorm.DB, orderID, paymentID string, rawPayload []byte, courseIDs []uint, userID uint, notify Notifier) []CourseSettlement {
	results := make([]CourseSettlement, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		results = append(results, settleCourse(db, orderID, paymentID, rawPayload, courseID, userID, notify))
	}
	return results
}

func settleCourse(db *gorm.DB, orderID, paymentID string, rawPayload []byte, courseID, userID uint, notify Notifier) CourseSettlement {
	// Load or create the attempt row. The unique (order_id, course_id) index
	// makes a duplicate delivery of the same confirmation land here instead
	// of starting a second settlement.
	var attempt models.SettlementAttempt
	err := db.Where("order_id = ? AND course_id = ?", orderID, courseID).First(&attempt).Error
	if err == gorm.ErrRecordNotFound {
		attempt = models.SettlementAttempt{
			OrderID:    orderID,
			PaymentID:  paymentID,
			CourseID:   courseID,
			UserID:     userID,
			State:      models.SettlementPending,
			RawPayload: datatypes.JSON(rawPayload),
		}
		if err := db.Create(&attempt).Error; err != nil {
			// Lost a race against a concurrent delivery; pick up its row
			if err2 := db.Where("order_id = ? AND course_id = ?", orderID, courseID).First(&attempt).Error; err2 != nil {
				return CourseSettlement{CourseID: courseID, Status: StatusFailed, Message: "Could not record settlement attempt"}
			}
		}
	} else if err != nil {
		return CourseSettlement{CourseID: courseID, Status: StatusFailed, Message: "Could not look up settlement attempt"}
	}

	if attempt.State == models.SettlementNotified {
		return CourseSettlement{CourseID: courseID, Status: StatusAlreadySettled, Message: "Course already settled for this payment"}
	}

	// An explicit re-delivery of a failed attempt starts the steps over.
	// Conflicts fail again at the pre-check; transient failures get retried.
	if attempt.State == models.SettlementFailed {
		attempt.State = models.SettlementPending
		attempt.LastError = ""
		db.Save(&attempt)
	}

	return runSettlementSteps(db, &attempt, notify)
}

// runSettlementSteps advances an attempt from its current state to NOTIFIED.
// It is called both inline after verification and by the reconciler when it
// resumes an interrupted attempt, so every step must tolerate finding the
// work of a previous crashed run already in place.
func runSettlementSteps(db *gorm.DB, attempt *models.SettlementAttempt, notify Notifier) CourseSettlement {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", attempt.UserID).First(&user).Error; err != nil {
		return failAttempt(db, attempt, "User not found")
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", attempt.CourseID).First(&course).Error; err != nil {
		// The course vanished between verification and settlement
		return failAttempt(db, attempt, "Course not found")
	}

	// Step 1: credit the roster. The enrollment write and the state advance
	// commit in one transaction, so a crash can never leave a roster row this
	// attempt wrote without the state recording it. An enrollment found while
	// the attempt is still PENDING therefore belongs to someone else, either
	// an earlier purchase or a concurrent order for the same course.
	if attempt.State == models.SettlementPending {
		var existing models.Enrollment
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", attempt.UserID, attempt.CourseID).First(&existing).Error; err == nil {
			res := failAttempt(db, attempt, "User already enrolled in this course")
			res.Status = StatusAlreadyEnrolled
			return res
		}

		enrollment := models.Enrollment{UserID: attempt.UserID, CourseID: attempt.CourseID}
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
			return tx.Model(&models.SettlementAttempt{}).Where("id = ?", attempt.ID).
				Updates(map[string]interface{}{
					"state":         models.SettlementRosterCredited,
					"enrollment_id": enrollment.ID,
					"last_error":    "",
				}).Error
		})
		if txErr != nil {
			// The unique index catches a concurrent settlement racing past
			// the pre-check for the same (user, course) pair
			if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", attempt.UserID, attempt.CourseID).First(&existing).Error; err == nil {
				res := failAttempt(db, attempt, "User already enrolled in this course")
				res.Status = StatusAlreadyEnrolled
				return res
			}
			return deferAttempt(db, attempt, "Could not credit the roster")
		}
		attempt.State = models.SettlementRosterCredited
		attempt.EnrollmentID = enrollment.ID
		attempt.LastError = ""
	}

	// Step 2: create the progress record with an empty completed set
	if attempt.State == models.SettlementRosterCredited {
		progress := models.CourseProgress{UserID: attempt.UserID, CourseID: attempt.CourseID}
		if err := db.Create(&progress).Error; err != nil {
			// A crashed run may already have created it; the unique index
			// guarantees there is at most one to find
			if err2 := db.Where("user_id = ? AND course_id = ?", attempt.UserID, attempt.CourseID).First(&progress).Error; err2 != nil {
				return deferAttempt(db, attempt, "Could not create progress record")
			}
		}
		advanceAttempt(db, attempt, models.SettlementProgressCreated)
	}

	// Step 3: link the progress record into the enrollment this attempt owns
	if attempt.State == models.SettlementProgressCreated {
		var progress models.CourseProgress
		if err := db.Where("user_id = ? AND course_id = ?", attempt.UserID, attempt.CourseID).First(&progress).Error; err != nil {
			return deferAttempt(db, attempt, "Progress record missing")
		}
		if err := db.Model(&models.Enrollment{}).
			Where("id = ?", attempt.EnrollmentID).
			Update("progress_id", progress.ID).Error; err != nil {
			return deferAttempt(db, attempt, "Could not credit learner record")
		}
		advanceAttempt(db, attempt, models.SettlementLearnerCredited)
	}

	// Step 4: best-effort notification. Enrollment is authoritative from
	// here on; a failed email leaves the attempt in LEARNER_CREDITED so the
	// reconciler retries the send later.
	if attempt.State == models.SettlementLearnerCredited {
		if notify != nil {
			if err := notify(user.Email, user.FirstName, course.Name); err != nil {
				log.Printf("Enrollment email failed for user %d course %d: %v", user.ID, course.ID, err)
				attempt.LastError = "Enrollment email failed: " + err.Error()
				db.Save(attempt)
				return CourseSettlement{CourseID: attempt.CourseID, Status: StatusSettled, Message: "Enrolled; confirmation email pending"}
			}
		}
		advanceAttempt(db, attempt, models.SettlementNotified)
	}

	return CourseSettlement{CourseID: attempt.CourseID, Status: StatusSettled}
}

// advanceAttempt records a completed step
func advanceAttempt(db *gorm.DB, attempt *models.SettlementAttempt, state string) {
	attempt.State = state
	attempt.LastError = ""
	if err := db.Save(attempt).Error; err != nil {
		log.Printf("Failed to persist settlement state %s for order %s course %d: %v", state, attempt.OrderID, attempt.CourseID, err)
	}
}

// failAttempt marks an attempt terminally failed
func failAttempt(db *gorm.DB, attempt *models.SettlementAttempt, message string) CourseSettlement {
	attempt.State = models.SettlementFailed
	attempt.LastError = message
	db.Save(attempt)
	return CourseSettlement{CourseID: attempt.CourseID, Status: StatusFailed, Message: message}
}

// deferAttempt records a transient failure without changing state, so the
// reconciler retries the same step later
func deferAttempt(db *gorm.DB, attempt *models.SettlementAttempt, message string) CourseSettlement {
	attempt.LastError = message
	db.Save(attempt)
	return CourseSettlement{CourseID: attempt.CourseID, Status: StatusFailed, Message: message}
}
