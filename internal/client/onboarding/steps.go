package onboarding

import (
	"net/mail"
	"regexp"
	"slices"
	"strings"
)

// Step is a named wizard state.
type Step int

const (
	StepAccount Step = iota + 1
	StepIdentity
	StepSource
	StepResumeUpload
	StepProfileDetail
	StepGeography
	StepAcademic
	StepSchedule
	StepGoals
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepAccount:
		return "Account"
	case StepIdentity:
		return "Identity"
	case StepSource:
		return "Source"
	case StepResumeUpload:
		return "Resume upload"
	case StepProfileDetail:
		return "Profile details"
	case StepGeography:
		return "Location and status"
	case StepAcademic:
		return "Academic details"
	case StepSchedule:
		return "Schedule"
	case StepGoals:
		return "Goals"
	case StepReview:
		return "Review"
	default:
		return "Unknown"
	}
}

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

const (
	MinPasswordLen = 8
	MinWeeklyHours = 1
	MaxWeeklyHours = 80
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)

// stepDef is one row of the flow: when the step applies, what it must hold
// before moving on, and the number shown to the user.
type stepDef struct {
	step     Step
	number   int
	enabled  func(*Form) bool
	validate func(*Form) FieldErrors
}

func always(*Form) bool { return true }

func noErrors(*Form) FieldErrors { return nil }

// flow is the only place the branching is declared. ResumeUpload shares its
// number with Source; the branch is shown as a sub-step.
var flow = []stepDef{
	{step: StepAccount, number: 1, enabled: always, validate: validateAccount},
	{step: StepIdentity, number: 2, enabled: always, validate: validateIdentity},
	{step: StepSource, number: 3, enabled: always, validate: validateSource},
	{step: StepResumeUpload, number: 3, enabled: func(f *Form) bool { return f.Source == SourceResume }, validate: noErrors},
	{step: StepProfileDetail, number: 4, enabled: always, validate: noErrors},
	{step: StepGeography, number: 5, enabled: always, validate: validateGeography},
	{step: StepAcademic, number: 6, enabled: (*Form).IsStudent, validate: validateAcademic},
	{step: StepSchedule, number: 7, enabled: always, validate: validateSchedule},
	{step: StepGoals, number: 8, enabled: always, validate: validateGoals},
	{step: StepReview, number: 9, enabled: always, validate: noErrors},
}

func indexOf(s Step) int {
	for i, d := range flow {
		if d.step == s {
			return i
		}
	}
	return -1
}

// Number is the step number shown in the progress indicator.
func (s Step) Number() int {
	if i := indexOf(s); i >= 0 {
		return flow[i].number
	}
	return 0
}

// TotalSteps is the highest step number.
const TotalSteps = 9

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateAccount(f *Form) FieldErrors {
	errs := FieldErrors{}
	email := strings.TrimSpace(f.Email)
	if addr, err := mail.ParseAddress(email); email == "" || err != nil || addr.Address != email {
		errs["email"] = "Enter a valid email address"
	}
	if len(f.Password) < MinPasswordLen {
		errs["password"] = "Password must be at least 8 characters"
	} else if f.Password != f.ConfirmPassword {
		errs["confirm_password"] = "Passwords do not match"
	}
	return errs
}

func validateIdentity(f *Form) FieldErrors {
	errs := FieldErrors{}
	if blank(f.FullName) {
		errs["full_name"] = "Full name is required"
	}
	switch u := strings.TrimSpace(f.Username); {
	case u == "":
		errs["username"] = "Username is required"
	case !usernameRe.MatchString(u):
		errs["username"] = "Username must be 3-30 letters, digits, '.', '_' or '-'"
	}
	return errs
}

func validateSource(f *Form) FieldErrors {
	if f.Source != SourceResume && f.Source != SourceManual {
		return FieldErrors{"source": "Choose resume or manual"}
	}
	return nil
}

func validateGeography(f *Form) FieldErrors {
	errs := FieldErrors{}
	if blank(f.Location) {
		errs["location"] = "Location is required"
	}
	switch {
	case blank(f.CurrentStatus):
		errs["current_status"] = "Current status is required"
	case !slices.Contains(Statuses, f.CurrentStatus):
		errs["current_status"] = "Unknown status"
	}
	return errs
}

func validateAcademic(f *Form) FieldErrors {
	if blank(f.Institution) {
		return FieldErrors{"institution": "Institution is required"}
	}
	return nil
}

func validateSchedule(f *Form) FieldErrors {
	if f.WeeklyHours < MinWeeklyHours || f.WeeklyHours > MaxWeeklyHours {
		return FieldErrors{"weekly_hours": "Weekly hours must be between 1 and 80"}
	}
	return nil
}

func validateGoals(f *Form) FieldErrors {
	errs := FieldErrors{}
	if blank(f.TargetRole) {
		errs["target_role"] = "Target role is required"
	}
	if blank(f.Timeline) {
		errs["timeline"] = "Timeline is required"
	}
	return errs
}
