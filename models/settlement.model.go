package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Settlement states, in the order the steps run.
const (
	SettlementPending         = "PENDING"
	SettlementRosterCredited  = "ROSTER_CREDITED"
	SettlementProgressCreated = "PROGRESS_CREATED"
	SettlementLearnerCredited = "LEARNER_CREDITED"
	SettlementNotified        = "NOTIFIED"
	SettlementFailed          = "FAILED"
)

// SettlementAttempt tracks one course of one verified payment through the
// enrollment steps. An interrupted attempt is resumed from its recorded state
// by the reconciler instead of guessing which writes already happened.
// The unique (order_id, course_id) index makes duplicate deliveries of the
// same confirmation land on the same row. EnrollmentID records the roster row
// this attempt created, so ownership of an enrollment is never inferred.
type SettlementAttempt struct {
	gorm.Model
	OrderID      string         `json:"order_id" gorm:"not null;uniqueIndex:idx_settlement_order_course"`
	CourseID     uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_settlement_order_course"`
	PaymentID    string         `json:"payment_id" gorm:"index;not null"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	State        string         `json:"state" gorm:"default:'PENDING'"`
	EnrollmentID uint           `json:"enrollment_id"`
	LastError    string         `json:"last_error"`
	RawPayload   datatypes.JSON `json:"raw_payload"`
}
