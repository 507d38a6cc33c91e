package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/dentaltrack/student-progress/internal/repository"
	"github.com/rs/zerolog"
)

// DashboardService computes the role-shaped read-only projections. It
// never mutates the store.
type DashboardService interface {
	ForStudent(ctx context.Context, user *models.User) (*models.StudentDashboard, error)
	ForTeacher(ctx context.Context, user *models.User) (*models.TeacherDashboard, error)
	Get(ctx context.Context, userID string) (any, error)
}

type dashboardService struct {
	caseRepo  repository.CaseRepository
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
	logger    zerolog.Logger
}

func NewDashboardService(
	caseRepo repository.CaseRepository,
	userRepo repository.UserRepository,
	badgeRepo repository.BadgeRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		caseRepo:  caseRepo,
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		logger:    logger,
	}
}

// Get dispatches on the user's role.
func (s *dashboardService) Get(ctx context.Context, userID string) (any, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.IsTeacher() {
		return s.ForTeacher(ctx, user)
	}
	return s.ForStudent(ctx, user)
}

func (s *dashboardService) ForStudent(ctx context.Context, user *models.User) (*models.StudentDashboard, error) {
	cases, err := s.caseRepo.ListByStudent(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	students, err := s.userRepo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	leaderboard := Leaderboard(students)

	badges, err := s.badgeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	return &models.StudentDashboard{
		User:        user,
		Cases:       cases,
		Leaderboard: leaderboard,
		Badges:      badges,
	}, nil
}

func (s *dashboardService) ForTeacher(ctx context.Context, user *models.User) (*models.TeacherDashboard, error) {
	students, err := s.userRepo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	summaries := make([]models.StudentSummary, 0, len(students))
	for _, student := range students {
		if !user.Supervises(student.ID) {
			continue
		}
		count, err := s.caseRepo.CountByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count cases: %w", err)
		}
		summaries = append(summaries, models.StudentSummary{
			User:     student,
			Cases:    count,
			Progress: QuotaProgress(student.Quota),
		})
	}

	return &models.TeacherDashboard{User: user, Students: summaries}, nil
}

// Leaderboard sorts every student descending by completed cases. Ties
// keep the original user order (stable sort).
func Leaderboard(students []models.User) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(students))
	for _, u := range students {
		if u.StudentProfile == nil {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			Name:      u.Name,
			Completed: u.Quota.Completed,
			Streaks:   u.Streaks,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Completed > entries[j].Completed
	})
	return entries
}

// QuotaProgress is the rounded completion percentage. It can exceed 100
// when completed overshoots the target. A zero target reads as 0%.
func QuotaProgress(quota models.Quota) int {
	if quota.Target == 0 {
		return 0
	}
	return int(math.Round(float64(quota.Completed) / float64(quota.Target) * 100))
}
