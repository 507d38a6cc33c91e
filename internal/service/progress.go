package service

import "github.com/dentaltrack/student-progress/internal/models"

// EvaluateBadges returns the catalog badges newly earned by the student
// after submitting a case of the given procedure, in catalog order.
// Already-held badges are never returned, so the badge set only grows.
// A "streak" badge is earned once streaks reaches its requirement; a
// procedure badge once the completed count does.
func EvaluateBadges(user *models.User, procedure models.Procedure, catalog []models.Badge) []models.Badge {
	if user.StudentProfile == nil {
		return nil
	}

	var earned []models.Badge
	for _, badge := range catalog {
		if user.HasBadge(badge.ID) {
			continue
		}
		switch {
		case badge.Type == models.BadgeTypeStreak && user.Streaks >= badge.Requirement:
			earned = append(earned, badge)
		case badge.Type == procedure.String() && user.Quota.Completed >= badge.Requirement:
			earned = append(earned, badge)
		}
	}
	return earned
}

// ApplyCaseCreated mutates the owner's derived state for a fresh case
// submission: completed and streak counters go up by one, then the
// catalog is evaluated and newly earned badge ids are appended. Returns
// the earned badges.
func ApplyCaseCreated(owner *models.User, procedure models.Procedure, catalog []models.Badge) []models.Badge {
	if owner.StudentProfile == nil {
		return nil
	}

	owner.Quota.Completed++
	owner.Streaks++

	earned := EvaluateBadges(owner, procedure, catalog)
	for _, badge := range earned {
		owner.Badges = append(owner.Badges, badge.ID)
	}
	return earned
}

// ApplyCaseDeleted reverses the quota effect of one case with a floor
// of zero. Streaks and already granted badges are left untouched.
func ApplyCaseDeleted(owner *models.User) {
	if owner.StudentProfile == nil {
		return
	}
	if owner.Quota.Completed > 0 {
		owner.Quota.Completed--
	}
}
