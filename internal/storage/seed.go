package storage

import "github.com/dentaltrack/student-progress/internal/models"

// seedData is the initial document for a fresh deployment: two demo
// students under one teacher, plus the badge catalog.
func seedData() *models.Database {
	return &models.Database{
		Cases: []models.Case{},
		Users: []models.User{
			{
				ID: "s1", Role: models.RoleStudent, Name: "Student One", Email: "student@example.com",
				StudentProfile: &models.StudentProfile{
					TeacherID: "t1",
					Quota:     models.Quota{Target: 50},
					Badges:    []string{},
					Avatar:    "basic",
					Research:  []models.Research{},
				},
			},
			{
				ID: "s2", Role: models.RoleStudent, Name: "Student Two", Email: "student2@example.com",
				StudentProfile: &models.StudentProfile{
					TeacherID: "t1",
					Quota:     models.Quota{Target: 50},
					Badges:    []string{},
					Avatar:    "basic",
					Research:  []models.Research{},
				},
			},
			{
				ID: "t1", Role: models.RoleTeacher, Name: "Teacher One", Email: "teacher@example.com",
				TeacherProfile: &models.TeacherProfile{Students: []string{"s1", "s2"}},
			},
		},
		Badges: []models.Badge{
			{ID: "cavity_king", Name: "Cavity King", Description: "Complete 10 cavity procedures", Requirement: 10, Type: "cavity"},
			{ID: "scaling_star", Name: "Scaling Star", Description: "Complete 15 scaling procedures", Requirement: 15, Type: "scaling"},
			{ID: "streak_master", Name: "Streak Master", Description: "Maintain 7-day streak", Requirement: 7, Type: models.BadgeTypeStreak},
		},
	}
}
