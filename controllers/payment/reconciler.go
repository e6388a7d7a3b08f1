package paymentController

import (
	"fmt"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"upskill/config"
	"upskill/database"
	"upskill/models"
)

// StartSettlementReconciler schedules the sweep that resumes settlement
// attempts interrupted by a crash or a failed notification. Settlement is
// durable once a signature has been verified; the original request's
// lifetime does not matter to it. The sweep interval doubles as the grace
// period before an attempt counts as stuck.
func StartSettlementReconciler(notify Notifier) *cron.Cron {
	minutes := config.AppConfig.ReconcileMinutes
	interval := time.Duration(minutes) * time.Minute

	c := cron.New()
	c.AddFunc(fmt.Sprintf("@every %dm", minutes), func() {
		ReconcileSettlements(notify, interval)
	})
	c.Start()
	log.Printf("[SETTLEMENT-RECONCILER] Started, sweeping every %d minutes.", minutes)
	return c
}

// ReconcileSettlements resumes every attempt that has been stuck short of
// NOTIFIED for longer than the grace period. Attempts are advanced from their
// recorded state, never restarted from scratch.
func ReconcileSettlements(notify Notifier, olderThan time.Duration) {
	db := database.Database.Db
	cutoff := time.Now().Add(-olderThan)

	var attempts []models.SettlementAttempt
	if err := db.Where("state NOT IN ? AND updated_at < ?",
		[]string{models.SettlementNotified, models.SettlementFailed}, cutoff).
		Find(&attempts).Error; err != nil {
		log.Printf("[SETTLEMENT-RECONCILER] Failed to fetch stuck attempts: %v", err)
		return
	}

	resumed := 0
	for i := range attempts {
		result := runSettlementSteps(db, &attempts[i], notify)
		if result.Settled() {
			resumed++
		} else {
			log.Printf("[SETTLEMENT-RECONCILER] Attempt order=%s course=%d still %s: %s",
				attempts[i].OrderID, attempts[i].CourseID, attempts[i].State, result.Message)
		}
	}

	var settledToday int64
	db.Model(&models.SettlementAttempt{}).
		Where("state = ? AND updated_at >= ?", models.SettlementNotified, now.BeginningOfDay()).
		Count(&settledToday)

	if len(attempts) > 0 {
		log.Printf("[SETTLEMENT-RECONCILER] Resumed %d/%d stuck attempts. %d settlements completed today.",
			resumed, len(attempts), settledToday)
	}
}
