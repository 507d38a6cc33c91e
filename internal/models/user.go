package models

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Quota tracks a student's target case count against completed cases.
// Completed only grows through case creation and only shrinks (floor 0)
// through case deletion.
type Quota struct {
	Target    int `json:"target"`
	Completed int `json:"completed"`
}

// StudentProfile holds the fields that only exist on student users.
type StudentProfile struct {
	TeacherID string     `json:"teacherId,omitempty"`
	Quota     Quota      `json:"quota"`
	Streaks   int        `json:"streaks"`
	Badges    []string   `json:"badges"`
	Avatar    string     `json:"avatar,omitempty"`
	Research  []Research `json:"research"`
}

// TeacherProfile holds the fields that only exist on teacher users.
type TeacherProfile struct {
	Students []string `json:"students"`
}

// User is the polymorphic user record. Exactly one of the embedded
// profiles is non-nil, matching the role discriminator.
type User struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`

	*StudentProfile
	*TeacherProfile
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent && u.StudentProfile != nil
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher && u.TeacherProfile != nil
}

// HasBadge reports whether the student already holds the given badge.
func (u *User) HasBadge(badgeID string) bool {
	if u.StudentProfile == nil {
		return false
	}
	for _, id := range u.Badges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// Supervises reports whether a teacher supervises the given student.
func (u *User) Supervises(studentID string) bool {
	if u.TeacherProfile == nil {
		return false
	}
	for _, id := range u.Students {
		if id == studentID {
			return true
		}
	}
	return false
}
