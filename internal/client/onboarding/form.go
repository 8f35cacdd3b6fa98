package onboarding

import (
	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

// Source is how the user chooses to fill in their background.
type Source string

const (
	SourceResume Source = "resume"
	SourceManual Source = "manual"
)

// Current status values offered at the Geography step. Only StatusStudent
// changes the flow.
const (
	StatusStudent       = "Student"
	StatusEmployed      = "Employed"
	StatusUnemployed    = "Unemployed"
	StatusCareerChanger = "Career Changer"
)

var Statuses = []string{StatusStudent, StatusEmployed, StatusUnemployed, StatusCareerChanger}

// Form holds everything entered across the wizard. Fields are grouped by the
// step that collects them.
type Form struct {
	// Account
	Email           string
	Password        string
	ConfirmPassword string

	// Identity
	FullName string
	Username string

	// Source and ResumeUpload
	Source          Source
	ResumeFileName  string
	ResumeParsed    bool
	ExtractionError string

	// ProfileDetail
	Skills     []string
	Education  []models.Education
	Experience []models.Experience
	Projects   []models.Project

	// Geography
	Location      string
	CurrentStatus string

	// Academic
	Institution        string
	Program            string
	ExpectedGraduation string

	// Schedule
	WeeklyHours   int
	PreferredDays []string
	PreferredTime string

	// Goals
	TargetRole string
	Timeline   string
	Vision     string
}

// IsStudent reports whether the Academic step applies.
func (f *Form) IsStudent() bool {
	return f.CurrentStatus == StatusStudent
}
