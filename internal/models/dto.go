package models

// Data Transfer Objects

type LoginRequest struct {
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateCaseRequest struct {
	Procedure  string `json:"procedure"`
	PatientAge int    `json:"patientAge,omitempty"`
	Notes      string `json:"notes,omitempty"`
	ClientRef  string `json:"clientRef,omitempty"`
}

type CreateCaseResponse struct {
	Success   bool     `json:"success"`
	Case      *Case    `json:"case"`
	NewBadges []string `json:"newBadges"`
}

type CreateResearchRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	ClientRef   string `json:"clientRef,omitempty"`
}

type CreateResearchResponse struct {
	Success  bool      `json:"success"`
	Research *Research `json:"research"`
}

type LeaderboardEntry struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Streaks   int    `json:"streaks"`
}

// StudentDashboard is the role-shaped projection for students.
type StudentDashboard struct {
	User        *User              `json:"user"`
	Cases       []Case             `json:"cases"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Badges      []Badge            `json:"badges"`
}

// StudentSummary is a teacher's per-student projection: the student
// record plus case count and quota progress percentage.
type StudentSummary struct {
	User
	Cases    int `json:"cases"`
	Progress int `json:"progress"`
}

// TeacherDashboard is the role-shaped projection for teachers.
type TeacherDashboard struct {
	User     *User            `json:"user"`
	Students []StudentSummary `json:"students"`
}

// Dashboard is the union shape a client decodes either projection into.
type Dashboard struct {
	User        *User              `json:"user"`
	Cases       []Case             `json:"cases"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Badges      []Badge            `json:"badges"`
	Students    []StudentSummary   `json:"students"`
}
