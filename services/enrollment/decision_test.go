package enrollment

import (
	"errors"
	"testing"

	"github.com/courseportal/api/model"
)

func TestDecideEnroll(t *testing.T) {
	cases := []struct {
		name     string
		existing *model.Enrollment
		want     Action
	}{
		{"no row creates", nil, ActionCreate},
		{"dropped reactivates", &model.Enrollment{Status: model.EnrollmentStatusDropped}, ActionReactivate},
		{"completed reactivates", &model.Enrollment{Status: model.EnrollmentStatusCompleted}, ActionReactivate},
		{"paused reactivates", &model.Enrollment{Status: model.EnrollmentStatusPaused}, ActionReactivate},
		{"active conflicts", &model.Enrollment{Status: model.EnrollmentStatusActive}, ActionConflict},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DecideEnroll(c.existing); got != c.want {
				t.Errorf("DecideEnroll = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDecideUnenroll(t *testing.T) {
	if err := DecideUnenroll(&model.Enrollment{Status: model.EnrollmentStatusActive}); err != nil {
		t.Errorf("active enrollment should be droppable, got %v", err)
	}

	if err := DecideUnenroll(nil); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}

	for _, status := range []model.EnrollmentStatus{
		model.EnrollmentStatusDropped,
		model.EnrollmentStatusCompleted,
		model.EnrollmentStatusPaused,
	} {
		err := DecideUnenroll(&model.Enrollment{Status: status})
		if !errors.Is(err, ErrEnrollmentNotActive) {
			t.Errorf("status %q: expected ErrEnrollmentNotActive, got %v", status, err)
		}
	}
}
