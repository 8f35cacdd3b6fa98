package models

import "strings"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// RegistrationRequest is the body of POST /auth/register.
type RegistrationRequest struct {
	Email              string       `json:"email"`
	Password           string       `json:"password"`
	Username           string       `json:"username"`
	FullName           string       `json:"full_name"`
	Location           string       `json:"location"`
	CurrentStatus      string       `json:"current_status"`
	Institution        string       `json:"institution,omitempty"`
	Program            string       `json:"program,omitempty"`
	ExpectedGraduation string       `json:"expected_graduation,omitempty"`
	WeeklyHours        int          `json:"weekly_hours"`
	PreferredDays      []string     `json:"preferred_days,omitempty"`
	PreferredTime      string       `json:"preferred_time,omitempty"`
	TargetRole         string       `json:"target_role"`
	Timeline           string       `json:"timeline"`
	Vision             string       `json:"vision,omitempty"`
	Skills             []string     `json:"skills"`
	Education          []Education  `json:"education"`
	Experience         []Experience `json:"experience"`
	Projects           []Project    `json:"projects"`
	ResumeParsed       bool         `json:"resume_parsed"`
}

// RegistrationResponse carries the new user and, when the backend signs the
// user in right away, an access token.
type RegistrationResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	User        *User  `json:"user"`
}

// ResumeExtraction is what POST /resume/parse returns. Any field may be
// missing; callers must treat it as a best-effort hint.
type ResumeExtraction struct {
	FullName   string       `json:"full_name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Location   string       `json:"location,omitempty"`
	TargetRole string       `json:"target_role,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
