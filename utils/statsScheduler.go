package utils

import (
	"log"
	"time"

	"edhub/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STATS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileCourseStats recomputes each live course's denormalized student
// count and average rating from the enrollment and review tables. The enroll
// flow keeps the counter in step transactionally; this job repairs any drift.
func ReconcileCourseStats(db *gorm.DB) {
	var courses []models.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		logScheduler("Error fetching courses: " + err.Error())
		return
	}

	for _, course := range courses {
		var studentCount int64
		db.Model(&models.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&studentCount)

		var avgRating float64
		db.Model(&models.Review{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avgRating)

		if course.StudentCount != studentCount || course.Rating != avgRating {
			db.Model(&models.Course{}).Where("id = ?", course.ID).
				Updates(map[string]interface{}{
					"student_count": studentCount,
					"rating":        avgRating,
				})
		}
	}

	logScheduler("Course stats reconciled")
}

// StartStatsScheduler runs the reconciliation hourly
func StartStatsScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 * * * *", func() {
		ReconcileCourseStats(db)
	})

	c.Start()
	logScheduler("Stats scheduler started - runs hourly")
	return c
}
