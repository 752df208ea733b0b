package model

import "testing"

func TestEnrollmentTableName(t *testing.T) {
	if got := (Enrollment{}).TableName(); got != "user_course_enrollments" {
		t.Errorf("TableName() = %q, want user_course_enrollments", got)
	}
}

func TestEnrollmentIsActive(t *testing.T) {
	e := Enrollment{Status: EnrollmentStatusActive}
	if !e.IsActive() {
		t.Error("active enrollment reported as not active")
	}

	for _, status := range []EnrollmentStatus{
		EnrollmentStatusCompleted,
		EnrollmentStatusDropped,
		EnrollmentStatusPaused,
	} {
		e.Status = status
		if e.IsActive() {
			t.Errorf("status %q reported as active", status)
		}
	}
}

func TestValidStatus(t *testing.T) {
	valid := []EnrollmentStatus{
		EnrollmentStatusActive,
		EnrollmentStatusCompleted,
		EnrollmentStatusDropped,
		EnrollmentStatusPaused,
	}
	for _, s := range valid {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}

	invalid := []EnrollmentStatus{"", "expelled", "Active", "ACTIVE"}
	for _, s := range invalid {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
