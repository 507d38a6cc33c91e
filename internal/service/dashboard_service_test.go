package service

import (
	"testing"

	"github.com/dentaltrack/student-progress/internal/models"
)

func studentNamed(name string, completed int) models.User {
	return models.User{
		ID:   name,
		Role: models.RoleStudent,
		Name: name,
		StudentProfile: &models.StudentProfile{
			Quota:  models.Quota{Target: 50, Completed: completed},
			Badges: []string{},
		},
	}
}

func TestLeaderboard_StableDescending(t *testing.T) {
	students := []models.User{
		studentNamed("A", 5),
		studentNamed("B", 8),
		studentNamed("C", 5),
	}

	entries := Leaderboard(students)

	expected := []string{"B", "A", "C"}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, name := range expected {
		if entries[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, entries[i].Name)
		}
	}
}

func TestLeaderboard_SkipsUsersWithoutProfile(t *testing.T) {
	students := []models.User{
		studentNamed("A", 1),
		{ID: "broken", Role: models.RoleStudent, Name: "broken"},
	}

	if entries := Leaderboard(students); len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestQuotaProgress(t *testing.T) {
	tests := []struct {
		name     string
		quota    models.Quota
		expected int
	}{
		{"empty", models.Quota{Target: 50, Completed: 0}, 0},
		{"partial", models.Quota{Target: 50, Completed: 5}, 10},
		{"rounded", models.Quota{Target: 3, Completed: 1}, 33},
		{"rounded up", models.Quota{Target: 3, Completed: 2}, 67},
		{"complete", models.Quota{Target: 50, Completed: 50}, 100},
		{"over target", models.Quota{Target: 50, Completed: 60}, 120},
		{"zero target", models.Quota{Target: 0, Completed: 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuotaProgress(tt.quota); got != tt.expected {
				t.Errorf("expected %d%%, got %d%%", tt.expected, got)
			}
		})
	}
}
