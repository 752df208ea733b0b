package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/utils/auth"
)

// RefreshEnrollmentCounts recomputes courses.enrollment_count from the
// active enrollment rows. The column is a denormalized aggregate read by
// the public course listing, so it only needs to be eventually consistent.
func (m *CronManager) RefreshEnrollmentCounts() {
	jobName := "refresh_enrollment_counts"

	result := m.db.Exec(`
		UPDATE courses c SET enrollment_count = sub.cnt
		FROM (
			SELECT course_id, COUNT(*) AS cnt
			FROM user_course_enrollments
			WHERE status = 'active' AND deleted_at IS NULL
			GROUP BY course_id
		) sub
		WHERE c.id = sub.course_id AND c.enrollment_count <> sub.cnt
	`)
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	// Courses that lost their last active enrollment fall out of the join
	// above, so zero them separately.
	zeroed := m.db.Exec(`
		UPDATE courses c SET enrollment_count = 0
		WHERE c.enrollment_count <> 0
		AND NOT EXISTS (
			SELECT 1 FROM user_course_enrollments e
			WHERE e.course_id = c.id AND e.status = 'active' AND e.deleted_at IS NULL
		)
	`)
	if zeroed.Error != nil {
		m.logJobError(jobName, zeroed.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Updated %d courses, zeroed %d",
		result.RowsAffected, zeroed.RowsAffected))
}

// CleanupExpiredTokens removes blacklist entries whose tokens have expired.
// An expired token fails validation on its own, so keeping the entry only
// bloats the table.
func (m *CronManager) CleanupExpiredTokens() {
	jobName := "cleanup_expired_tokens"

	blacklist := auth.NewBlacklistService(m.db)
	deleted, err := blacklist.CleanupExpiredTokens(context.Background())
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired blacklist entries", deleted))
}

// CleanupCronLogs prunes cron job logs older than 30 days.
func (m *CronManager) CleanupCronLogs() {
	jobName := "cleanup_cron_logs"

	cutoff := time.Now().AddDate(0, 0, -30)
	result := m.db.Unscoped().
		Where("started_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Deleted %d old cron logs", result.RowsAffected))
}
