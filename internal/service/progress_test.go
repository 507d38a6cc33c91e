package service

import (
	"testing"

	"github.com/dentaltrack/student-progress/internal/models"
)

func testCatalog() []models.Badge {
	return []models.Badge{
		{ID: "cavity_king", Name: "Cavity King", Requirement: 10, Type: "cavity"},
		{ID: "scaling_star", Name: "Scaling Star", Requirement: 15, Type: "scaling"},
		{ID: "streak_master", Name: "Streak Master", Requirement: 7, Type: models.BadgeTypeStreak},
	}
}

func newStudent(completed, streaks int, badges ...string) *models.User {
	if badges == nil {
		badges = []string{}
	}
	return &models.User{
		ID:   "s1",
		Role: models.RoleStudent,
		Name: "Student One",
		StudentProfile: &models.StudentProfile{
			Quota:   models.Quota{Target: 50, Completed: completed},
			Streaks: streaks,
			Badges:  badges,
		},
	}
}

func TestEvaluateBadges(t *testing.T) {
	tests := []struct {
		name      string
		user      *models.User
		procedure models.Procedure
		expected  []string
	}{
		{
			name:      "below every threshold",
			user:      newStudent(3, 3),
			procedure: models.ProcedureCavity,
			expected:  nil,
		},
		{
			name:      "procedure badge at threshold",
			user:      newStudent(10, 1),
			procedure: models.ProcedureCavity,
			expected:  []string{"cavity_king"},
		},
		{
			name:      "streak badge at threshold",
			user:      newStudent(1, 7),
			procedure: models.ProcedureExtraction,
			expected:  []string{"streak_master"},
		},
		{
			name:      "procedure must match the badge type",
			user:      newStudent(12, 1),
			procedure: models.ProcedureScaling,
			expected:  nil,
		},
		{
			name:      "already held badges are not re-earned",
			user:      newStudent(10, 9, "cavity_king", "streak_master"),
			procedure: models.ProcedureCavity,
			expected:  nil,
		},
		{
			name:      "multiple badges in catalog order",
			user:      newStudent(10, 7),
			procedure: models.ProcedureCavity,
			expected:  []string{"cavity_king", "streak_master"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earned := EvaluateBadges(tt.user, tt.procedure, testCatalog())

			if len(earned) != len(tt.expected) {
				t.Fatalf("expected %d badges, got %d: %v", len(tt.expected), len(earned), earned)
			}
			for i, badge := range earned {
				if badge.ID != tt.expected[i] {
					t.Errorf("badge %d: expected %s, got %s", i, tt.expected[i], badge.ID)
				}
			}
		})
	}
}

func TestApplyCaseCreated(t *testing.T) {
	user := newStudent(9, 2)

	earned := ApplyCaseCreated(user, models.ProcedureCavity, testCatalog())

	if user.Quota.Completed != 10 {
		t.Errorf("expected completed 10, got %d", user.Quota.Completed)
	}
	if user.Streaks != 3 {
		t.Errorf("expected streak 3, got %d", user.Streaks)
	}
	if len(earned) != 1 || earned[0].ID != "cavity_king" {
		t.Fatalf("expected cavity_king earned, got %v", earned)
	}
	if !user.HasBadge("cavity_king") {
		t.Error("earned badge not appended to user")
	}
}

func TestApplyCaseCreated_TeacherIgnored(t *testing.T) {
	teacher := &models.User{
		ID: "t1", Role: models.RoleTeacher,
		TeacherProfile: &models.TeacherProfile{Students: []string{"s1"}},
	}

	if earned := ApplyCaseCreated(teacher, models.ProcedureCavity, testCatalog()); earned != nil {
		t.Fatalf("expected no badges for teacher, got %v", earned)
	}
}

func TestApplyCaseDeleted(t *testing.T) {
	user := newStudent(1, 5, "streak_master")

	ApplyCaseDeleted(user)
	if user.Quota.Completed != 0 {
		t.Errorf("expected completed 0, got %d", user.Quota.Completed)
	}
	if user.Streaks != 5 {
		t.Errorf("streak must survive deletion, got %d", user.Streaks)
	}

	// Floor at zero.
	ApplyCaseDeleted(user)
	if user.Quota.Completed != 0 {
		t.Errorf("completed went negative: %d", user.Quota.Completed)
	}
	if !user.HasBadge("streak_master") {
		t.Error("badge revoked by deletion")
	}
}

// Badge sets only grow: across an arbitrary mix of creations and
// deletions, nothing earned is ever lost.
func TestBadgeSetMonotonic(t *testing.T) {
	user := newStudent(0, 0)
	catalog := testCatalog()

	seen := map[string]bool{}
	checkMonotonic := func() {
		t.Helper()
		current := map[string]bool{}
		for _, id := range user.Badges {
			current[id] = true
		}
		for id := range seen {
			if !current[id] {
				t.Fatalf("badge %s disappeared", id)
			}
		}
		seen = current
	}

	for i := 0; i < 12; i++ {
		ApplyCaseCreated(user, models.ProcedureCavity, catalog)
		checkMonotonic()
		if i%3 == 0 {
			ApplyCaseDeleted(user)
			checkMonotonic()
		}
	}

	if user.Streaks != 12 {
		t.Errorf("expected streak 12 after 12 creations, got %d", user.Streaks)
	}
	if !user.HasBadge("streak_master") {
		t.Error("expected streak_master after 12 consecutive submissions")
	}
}
